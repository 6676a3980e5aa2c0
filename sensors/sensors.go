// Package sensors provides the drivers the sampler reads from. The sampler
// owns fault handling and the moisture mapping; drivers just produce raw
// values or NaN for a channel they could not read.
package sensors

// TempHumiditySensor reads the combined temperature/humidity sensor.
// A channel that could not be read is NaN; err means the whole driver failed.
type TempHumiditySensor interface {
	TempHumidity() (temp, humidity float64, err error)
}

// ADC reads the raw soil moisture converter counts.
type ADC interface {
	ReadRaw() (int, error)
}

// MoistureProbe reports soil moisture directly as a percentage, for probes
// that calibrate internally (eg miflora).
type MoistureProbe interface {
	Moisture() (float64, error)
}
