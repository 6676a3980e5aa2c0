// Service to sample the environment sensors on a fixed period and publish
// the readings to the shared state. A channel that cannot be read is
// reported as the fault sentinel rather than dropped, so downstream always
// sees a complete reading.
package sampler

import (
	"log"
	"math"
	"time"

	"github.com/barnybug/greenhouse/config"
	"github.com/barnybug/greenhouse/sensors"
	"github.com/barnybug/greenhouse/services"
	"github.com/barnybug/greenhouse/state"
	"github.com/barnybug/greenhouse/util"
)

const (
	Period = 2 * time.Second

	// oversampling to reduce adc noise
	adcSamples   = 10
	adcSampleGap = 5 * time.Millisecond
)

// Service sampler
type Service struct {
	TempHum sensors.TempHumiditySensor
	ADC     sensors.ADC
	Probe   sensors.MoistureProbe

	sleep func(time.Duration)
}

func (self *Service) ID() string {
	return "sampler"
}

func (self *Service) Init() error {
	self.TempHum = services.TempHum
	self.ADC = services.SoilADC
	self.Probe = services.SoilProbe
	return nil
}

// MapMoisture converts a raw adc average to a percentage with the linear
// calibration map, clamped to 0-100. adc_dry is the count in dry air,
// adc_wet in water (capacitive probes count down as moisture rises).
func MapMoisture(raw float64, t config.Thresholds) float64 {
	pct := (raw - float64(t.AdcDry)) * 100 / float64(t.AdcWet-t.AdcDry)
	return math.Max(math.Min(pct, 100), 0)
}

// oversample averages adcSamples raw reads spaced adcSampleGap apart.
// Failed reads count as zero, dragging a flaky probe towards the fault
// average.
func (self *Service) oversample() float64 {
	sum := 0
	for i := 0; i < adcSamples; i++ {
		if i > 0 {
			self.sleep(adcSampleGap)
		}
		raw, err := self.ADC.ReadRaw()
		if err != nil {
			continue
		}
		sum += raw
	}
	return float64(sum) / adcSamples
}

func (self *Service) moisture(t config.Thresholds) float64 {
	if self.ADC != nil {
		avg := self.oversample()
		if avg <= 0 {
			return state.Faulted
		}
		return MapMoisture(avg, t)
	}
	if self.Probe != nil {
		pct, err := self.Probe.Moisture()
		if err != nil {
			log.Println("Moisture probe read failed:", err)
			return state.Faulted
		}
		return math.Max(math.Min(pct, 100), 0)
	}
	return state.Faulted
}

// Sample composes one reading. Temperature and humidity fault independently:
// a driver error faults both, NaN faults just that channel.
func (self *Service) Sample(t config.Thresholds) state.SensorReading {
	reading := state.SensorReading{
		Temperature: state.Faulted,
		Humidity:    state.Faulted,
	}
	temp, hum, err := self.TempHum.TempHumidity()
	if err != nil {
		log.Println("Sensor read failed:", err)
	} else {
		if !math.IsNaN(temp) {
			reading.Temperature = temp
		}
		if !math.IsNaN(hum) {
			reading.Humidity = hum
		}
	}
	reading.Moisture = self.moisture(t)
	return reading
}

// Run the service
func (self *Service) Run() error {
	if self.sleep == nil {
		self.sleep = time.Sleep
	}
	ticker := util.NewScheduler(0, Period)
	for range ticker.C {
		reading := self.Sample(services.Store.Thresholds())
		services.State.UpdateReading(reading)
	}
	return nil
}
