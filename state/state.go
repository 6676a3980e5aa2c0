// Package state holds the shared record of the latest sensor readings and
// actuator outputs. The sampler writes readings, the control loop writes
// actuator states, and every other service reads a consistent copy of both.
package state

import "sync"

// Faulted is the sentinel reported for a sensor channel that could not be
// read. It is never a real measurement.
const Faulted = -999

// SensorReading is the latest value of each sensor channel. Each channel is
// independently either a measurement or Faulted.
type SensorReading struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Moisture    float64 `json:"moisture"`
}

// ActuatorState is the logical on/off state of each output. Fan and Lights
// are mutually exclusive - heating and cooling are never driven together.
type ActuatorState struct {
	Pump       bool `json:"pump"`
	Fan        bool `json:"fan"`
	Lights     bool `json:"lights"`
	Humidifier bool `json:"humidifier"`
}

// State is the single synchronized record shared between the services.
// The lock is coarse over both structs; holders only copy in or out, never
// perform I/O, so the critical section is bounded.
type State struct {
	mu        sync.Mutex
	reading   SensorReading
	actuators ActuatorState
}

func New() *State {
	return &State{
		reading: SensorReading{
			Temperature: Faulted,
			Humidity:    Faulted,
			Moisture:    Faulted,
		},
	}
}

// Snapshot returns a copy of both records taken under the lock, so no reader
// ever observes a half-updated struct.
func (s *State) Snapshot() (SensorReading, ActuatorState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reading, s.actuators
}

func (s *State) UpdateReading(r SensorReading) {
	s.mu.Lock()
	s.reading = r
	s.mu.Unlock()
}

func (s *State) UpdateActuators(a ActuatorState) {
	s.mu.Lock()
	s.actuators = a
	s.mu.Unlock()
}
