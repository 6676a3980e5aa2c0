// Package hardware drives the relay outputs. The relay board is active-low:
// the electrical inversion is handled here (via the gpio active-low flag),
// never in the logical actuator state.
package hardware

import (
	"github.com/pkg/errors"
	"github.com/warthog618/go-gpiocdev"

	"github.com/barnybug/greenhouse/state"
)

// OutputBank applies a logical actuator state to the physical outputs.
type OutputBank interface {
	Apply(state.ActuatorState) error
	Close() error
}

// Pins are the gpio line offsets for each output.
type Pins struct {
	Pump       int
	Fan        int
	Lights     int
	Humidifier int
}

type gpioBank struct {
	lines *gpiocdev.Lines
}

// NewGPIO requests the four relay lines as active-low outputs, all off.
func NewGPIO(chip string, pins Pins) (OutputBank, error) {
	offsets := []int{pins.Pump, pins.Fan, pins.Lights, pins.Humidifier}
	lines, err := gpiocdev.RequestLines(chip, offsets,
		gpiocdev.AsOutput(0, 0, 0, 0),
		gpiocdev.AsActiveLow,
		gpiocdev.WithConsumer("greenhouse"))
	if err != nil {
		return nil, errors.Wrap(err, "requesting gpio lines")
	}
	return &gpioBank{lines: lines}, nil
}

func level(on bool) int {
	if on {
		return 1
	}
	return 0
}

func (self *gpioBank) Apply(a state.ActuatorState) error {
	values := []int{
		level(a.Pump),
		level(a.Fan),
		level(a.Lights),
		level(a.Humidifier),
	}
	return self.lines.SetValues(values)
}

func (self *gpioBank) Close() error {
	return self.lines.Close()
}
