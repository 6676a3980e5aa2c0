package config

var ExampleYaml = `
endpoints:
  mqtt:
    broker: tcp://127.0.0.1:1883
    user: greenhouse
    token: secret
  api: :8723
sensors:
  backend: serial
  serial:
    device: /dev/ttyUSB0
    baud: 9600
  maxage: 10s
hardware:
  chip: gpiochip0
  pins:
    pump: 17
    fan: 27
    lights: 22
    humidifier: 23
thresholds:
  path: /var/lib/greenhouse/thresholds.yml
`

var ExampleConfig *Config

func init() {
	ExampleConfig, _ = OpenRaw([]byte(ExampleYaml))
}
