package config

import (
	"io"
	"io/ioutil"
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/barnybug/greenhouse/util"
)

type Duration struct {
	Duration time.Duration
}

func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var value string
	if err := unmarshal(&value); err != nil {
		return err
	}
	val, err := time.ParseDuration(value)
	if err != nil {
		return err
	}
	d.Duration = val
	return nil
}

type EndpointsConf struct {
	Mqtt struct {
		Broker   string
		User     string
		Token    string
		ClientId string
	}
	Api string
}

type SensorsConf struct {
	// Backend selects the sensor driver: "serial", "miflora" or "mock".
	Backend string
	Serial  struct {
		Device string
		Baud   int
	}
	Miflora struct {
		Mac     string
		Adapter string
	}
	MaxAge *Duration
}

type HardwareConf struct {
	// gpio character device, eg gpiochip0
	Chip string
	Pins struct {
		Pump       int
		Fan        int
		Lights     int
		Humidifier int
	}
}

type ThresholdsConf struct {
	Path string
}

// Configuration structure
type Config struct {
	// yaml fields
	Endpoints  EndpointsConf
	Sensors    SensorsConf
	Hardware   HardwareConf
	Thresholds ThresholdsConf
}

// Open configuration from disk.
func Open() (*Config, error) {
	file, err := os.Open(ConfigPath("greenhouse.yml"))
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return OpenReader(file)
}

// Open configuration from a reader.
func OpenReader(r io.Reader) (*Config, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return OpenRaw(data)
}

// Open configuration from []byte.
func OpenRaw(data []byte) (*Config, error) {
	self := &Config{}
	err := yaml.Unmarshal(data, self)
	if err != nil {
		return nil, err
	}
	if self.Sensors.Backend == "" {
		self.Sensors.Backend = "serial"
	}
	if self.Sensors.Serial.Baud == 0 {
		self.Sensors.Serial.Baud = 9600
	}
	if self.Thresholds.Path == "" {
		self.Thresholds.Path = ConfigPath("thresholds.yml")
	} else {
		self.Thresholds.Path = util.ExpandUser(self.Thresholds.Path)
	}
	return self, nil
}

// SensorMaxAge is the window within which a cached sensor value still counts
// as a reading, after which the channel faults.
func (self *Config) SensorMaxAge() time.Duration {
	if self.Sensors.MaxAge != nil {
		return self.Sensors.MaxAge.Duration
	}
	return 10 * time.Second
}

// helpers

// Resolve a configuration file under .config/greenhouse
func ConfigPath(p string) string {
	config := os.Getenv("XDG_CONFIG_HOME")
	if config == "" {
		config = path.Join(os.Getenv("HOME"), ".config")
	}
	return path.Join(config, "greenhouse", p)
}
