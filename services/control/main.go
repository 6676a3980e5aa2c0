// Service to hold the greenhouse inside its comfort bands. Every second it
// evaluates the latest reading against the thresholds, publishes the next
// actuator state and drives the relay outputs.
//
// Temperature uses a reset-to-off band: heating and cooling are mutually
// exclusive and both safe to drop inside the band. Humidity and moisture use
// schmitt-trigger hysteresis to stop the relays chattering while the value
// drifts near a boundary. A faulted channel holds its previous outputs -
// a broken sensor must not flap actuators.
package control

import (
	"log"
	"time"

	"github.com/barnybug/greenhouse/config"
	"github.com/barnybug/greenhouse/hardware"
	"github.com/barnybug/greenhouse/services"
	"github.com/barnybug/greenhouse/state"
	"github.com/barnybug/greenhouse/util"
)

const Period = time.Second

// Evaluate computes the next actuator state from the previous state, the
// latest reading and the thresholds.
func Evaluate(prev state.ActuatorState, r state.SensorReading, t config.Thresholds) state.ActuatorState {
	next := prev

	// temperature: reset-to-off band
	switch {
	case r.Temperature == state.Faulted:
		// hold
	case r.Temperature > t.TempHigh:
		next.Fan = true
		next.Lights = false
	case r.Temperature < t.TempLow:
		next.Lights = true
		next.Fan = false
	default:
		next.Fan = false
		next.Lights = false
	}

	// humidity: hold inside the band
	switch {
	case r.Humidity == state.Faulted:
	case r.Humidity < t.HumLow:
		next.Humidifier = true
	case r.Humidity > t.HumHigh:
		next.Humidifier = false
	}

	// moisture: hold inside the band
	switch {
	case r.Moisture == state.Faulted:
	case r.Moisture < t.MoistureDry:
		next.Pump = true
	case r.Moisture > t.MoistureTarget:
		next.Pump = false
	}

	return next
}

// Service control
type Service struct {
	Outputs hardware.OutputBank
}

func (self *Service) ID() string {
	return "control"
}

func (self *Service) Init() error {
	self.Outputs = services.Outputs
	return nil
}

func logChange(name string, prev, next bool) {
	if prev == next {
		return
	}
	if next {
		log.Println("Turning on", name)
	} else {
		log.Println("Turning off", name)
	}
}

func (self *Service) tick() {
	reading, prev := services.State.Snapshot()
	next := Evaluate(prev, reading, services.Store.Thresholds())

	logChange("fan", prev.Fan, next.Fan)
	logChange("heat lamp", prev.Lights, next.Lights)
	logChange("humidifier", prev.Humidifier, next.Humidifier)
	logChange("pump", prev.Pump, next.Pump)

	services.State.UpdateActuators(next)
	// drive the hardware outside the state lock
	if err := self.Outputs.Apply(next); err != nil {
		log.Println("Applying outputs:", err)
	}
}

// Run the service
func (self *Service) Run() error {
	ticker := util.NewScheduler(0, Period)
	for range ticker.C {
		self.tick()
	}
	return nil
}
