package hardware

import "github.com/barnybug/greenhouse/state"

// MockBank records applied states for testing, and substitutes for real
// outputs when running without hardware.
type MockBank struct {
	Applied []state.ActuatorState
	Err     error
}

func (self *MockBank) Apply(a state.ActuatorState) error {
	if self.Err != nil {
		return self.Err
	}
	self.Applied = append(self.Applied, a)
	return nil
}

func (self *MockBank) Last() state.ActuatorState {
	if len(self.Applied) == 0 {
		return state.ActuatorState{}
	}
	return self.Applied[len(self.Applied)-1]
}

func (self *MockBank) Close() error {
	return nil
}
