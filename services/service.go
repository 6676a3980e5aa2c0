package services

import (
	"log"
	"os"

	"github.com/pkg/errors"

	"github.com/barnybug/greenhouse/config"
	"github.com/barnybug/greenhouse/hardware"
	"github.com/barnybug/greenhouse/remote"
	"github.com/barnybug/greenhouse/remote/mqtt"
	"github.com/barnybug/greenhouse/sensors"
	"github.com/barnybug/greenhouse/state"
)

// Service interface
type Service interface {
	ID() string
	Run() error
}

// ServiceInit interface
type ServiceInit interface {
	Service
	Init() error
}

var serviceMap map[string]Service = map[string]Service{}
var enabled []Service

// Shared collaborators, wired once by Setup. Services read these rather than
// owning their own copies - State is the single point of truth, Store the
// only durable config.
var Config *config.Config
var Store *config.Store
var State *state.State
var Remote remote.Client
var Outputs hardware.OutputBank
var TempHum sensors.TempHumiditySensor
var SoilADC sensors.ADC
var SoilProbe sensors.MoistureProbe

func SetupLogging() {
	log.SetFlags(log.Ltime | log.Lmicroseconds)
	log.SetOutput(os.Stdout)
}

// Setup wires the shared collaborators from configuration.
func Setup(conf *config.Config) error {
	Config = conf
	State = state.New()
	Store = config.NewStore(conf.Thresholds.Path)
	Store.Load()
	Remote = mqtt.New(conf.Endpoints.Mqtt.Broker, conf.Endpoints.Mqtt.User,
		conf.Endpoints.Mqtt.Token, conf.Endpoints.Mqtt.ClientId)

	switch conf.Sensors.Backend {
	case "serial":
		bridge, err := sensors.NewBridge(conf.Sensors.Serial.Device,
			conf.Sensors.Serial.Baud, conf.SensorMaxAge())
		if err != nil {
			return err
		}
		TempHum = bridge
		SoilADC = bridge
	case "miflora":
		probe := sensors.NewMiflora(conf.Sensors.Miflora.Mac, conf.Sensors.Miflora.Adapter)
		TempHum = probe
		SoilProbe = probe
	case "mock":
		mock := &sensors.Mock{Temp: 21, Hum: 48, Raw: 2500}
		TempHum = mock
		SoilADC = mock
	default:
		return errors.Errorf("unknown sensor backend: %s", conf.Sensors.Backend)
	}

	if conf.Sensors.Backend == "mock" {
		Outputs = &hardware.MockBank{}
	} else {
		bank, err := hardware.NewGPIO(conf.Hardware.Chip, hardware.Pins{
			Pump:       conf.Hardware.Pins.Pump,
			Fan:        conf.Hardware.Pins.Fan,
			Lights:     conf.Hardware.Pins.Lights,
			Humidifier: conf.Hardware.Pins.Humidifier,
		})
		if err != nil {
			return err
		}
		Outputs = bank
	}
	return nil
}

// Launch runs the named services, each on its own goroutine, forever. None
// of them is expected to return - the controller runs unattended for the
// lifetime of the process.
func Launch(ss []string) {
	enabled = []Service{}
	for _, name := range ss {
		if service, ok := serviceMap[name]; ok {
			enabled = append(enabled, service)
		} else {
			log.Fatalf("Service %s does not exist", name)
		}
	}

	for _, service := range enabled {
		if service, ok := service.(ServiceInit); ok {
			err := service.Init()
			if err != nil {
				log.Fatalf("Error init service %s: %s", service.ID(), err.Error())
			}
			log.Printf("Initialized %s\n", service.ID())
		}
	}

	for _, service := range enabled {
		log.Printf("Starting %s\n", service.ID())
		go func(service Service) {
			err := service.Run()
			if err != nil {
				log.Fatalf("Error running service %s: %s", service.ID(), err.Error())
			}
		}(service)
	}
	select {}
}

func Register(service Service) {
	if _, exists := serviceMap[service.ID()]; exists {
		log.Fatalf("Duplicate service registered: %s", service.ID())
	}
	serviceMap[service.ID()] = service
}

// Registered returns the names of all registered services.
func Registered() []string {
	var names []string
	for name := range serviceMap {
		names = append(names, name)
	}
	return names
}

func Shutdown() {
	if Remote != nil {
		Remote.Close()
	}
	if Outputs != nil {
		Outputs.Close()
	}
}
