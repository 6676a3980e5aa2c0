package config

import "github.com/pkg/errors"

// Thresholds is the comfort band configuration the control loop works to.
// Temperatures in °C, humidity and moisture in percent, adc values in raw
// converter counts.
//
// Calibration convention: AdcDry is the raw count with the probe in dry air,
// AdcWet the count submerged in water. Capacitive probes count down as
// moisture rises, so AdcDry > AdcWet and the linear map gives 0% dry, 100%
// wet.
type Thresholds struct {
	TempHigh       float64 `yaml:"temp_high" json:"temp_high"`
	TempLow        float64 `yaml:"temp_low" json:"temp_low"`
	HumLow         float64 `yaml:"hum_low" json:"hum_low"`
	HumHigh        float64 `yaml:"hum_high" json:"hum_high"`
	MoistureDry    float64 `yaml:"moisture_dry" json:"moisture_dry"`
	MoistureTarget float64 `yaml:"moisture_target" json:"moisture_target"`
	AdcWet         int     `yaml:"adc_wet" json:"adc_wet"`
	AdcDry         int     `yaml:"adc_dry" json:"adc_dry"`
}

// DefaultThresholds used on first boot or when the stored file is unreadable.
var DefaultThresholds = Thresholds{
	TempHigh:       22.0,
	TempLow:        20.0,
	HumLow:         45.0,
	HumHigh:        50.0,
	MoistureDry:    45.0,
	MoistureTarget: 60.0,
	AdcWet:         1500,
	AdcDry:         4095,
}

// Validate checks the band orderings and the division-by-zero guard on the
// adc calibration.
func (t Thresholds) Validate() error {
	if t.TempLow >= t.TempHigh {
		return errors.Errorf("temp_low (%v) must be below temp_high (%v)", t.TempLow, t.TempHigh)
	}
	if t.HumLow >= t.HumHigh {
		return errors.Errorf("hum_low (%v) must be below hum_high (%v)", t.HumLow, t.HumHigh)
	}
	if t.MoistureDry >= t.MoistureTarget {
		return errors.Errorf("moisture_dry (%v) must be below moisture_target (%v)", t.MoistureDry, t.MoistureTarget)
	}
	if t.AdcWet == t.AdcDry {
		return errors.New("adc_wet and adc_dry must differ")
	}
	return nil
}

// Delta is a partial remote update - nil fields were absent. Only the comfort
// bands are remotely settable; adc calibration stays local to the device.
type Delta struct {
	TempHigh       *float64
	TempLow        *float64
	HumLow         *float64
	HumHigh        *float64
	MoistureDry    *float64
	MoistureTarget *float64
}

// Empty reports whether the delta carries no fields at all.
func (d Delta) Empty() bool {
	return d.TempHigh == nil && d.TempLow == nil &&
		d.HumLow == nil && d.HumHigh == nil &&
		d.MoistureDry == nil && d.MoistureTarget == nil
}
