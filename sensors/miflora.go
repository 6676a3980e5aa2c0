package sensors

import (
	"math"

	"github.com/barnybug/miflora"
	"github.com/pkg/errors"
)

const mifloraRetries = 5

// Miflora adapts a Mi Flora bluetooth plant sensor. It provides temperature
// and a pre-calibrated moisture percentage; the probe has no humidity
// channel, which is reported as NaN and faults downstream.
type Miflora struct {
	dev *miflora.Miflora
}

func NewMiflora(mac, adapter string) *Miflora {
	if adapter == "" {
		adapter = "hci0"
	}
	return &Miflora{dev: miflora.NewMiflora(mac, adapter)}
}

func (self *Miflora) read() (miflora.Sensors, error) {
	var err error
	for i := 0; i < mifloraRetries; i++ {
		var sensors miflora.Sensors
		sensors, err = self.dev.ReadSensors()
		if err == nil {
			return sensors, nil
		}
	}
	return miflora.Sensors{}, errors.Wrap(err, "reading miflora")
}

func (self *Miflora) TempHumidity() (float64, float64, error) {
	sensors, err := self.read()
	if err != nil {
		return 0, 0, err
	}
	return float64(sensors.Temperature), math.NaN(), nil
}

func (self *Miflora) Moisture() (float64, error) {
	sensors, err := self.read()
	if err != nil {
		return 0, err
	}
	return float64(sensors.Moisture), nil
}
