package control

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/barnybug/greenhouse/config"
	"github.com/barnybug/greenhouse/hardware"
	"github.com/barnybug/greenhouse/services"
	"github.com/barnybug/greenhouse/state"
)

var thresholds = config.DefaultThresholds

func reading(temp, hum, moist float64) state.SensorReading {
	return state.SensorReading{Temperature: temp, Humidity: hum, Moisture: moist}
}

// comfortable mid-band values for the channels not under test
const (
	midHum   = 47.5
	midMoist = 50.0
	midTemp  = 21.0
)

func TestTempHot(t *testing.T) {
	next := Evaluate(state.ActuatorState{}, reading(23, midHum, midMoist), thresholds)
	assert.True(t, next.Fan)
	assert.False(t, next.Lights)
}

func TestTempCold(t *testing.T) {
	next := Evaluate(state.ActuatorState{}, reading(19, midHum, midMoist), thresholds)
	assert.True(t, next.Lights)
	assert.False(t, next.Fan)
}

func TestTempInBandResets(t *testing.T) {
	// in-band drops both outputs regardless of prior state
	prev := state.ActuatorState{Fan: true}
	next := Evaluate(prev, reading(21, midHum, midMoist), thresholds)
	assert.False(t, next.Fan)
	assert.False(t, next.Lights)

	prev = state.ActuatorState{Lights: true}
	next = Evaluate(prev, reading(21, midHum, midMoist), thresholds)
	assert.False(t, next.Fan)
	assert.False(t, next.Lights)
}

func TestTempBoundaries(t *testing.T) {
	// boundaries are in-band: only strict crossings actuate
	next := Evaluate(state.ActuatorState{Fan: true}, reading(thresholds.TempHigh, midHum, midMoist), thresholds)
	assert.False(t, next.Fan)
	next = Evaluate(state.ActuatorState{Lights: true}, reading(thresholds.TempLow, midHum, midMoist), thresholds)
	assert.False(t, next.Lights)
}

func TestHumidityLow(t *testing.T) {
	next := Evaluate(state.ActuatorState{}, reading(midTemp, 40, midMoist), thresholds)
	assert.True(t, next.Humidifier)
}

func TestHumidityHigh(t *testing.T) {
	prev := state.ActuatorState{Humidifier: true}
	next := Evaluate(prev, reading(midTemp, 55, midMoist), thresholds)
	assert.False(t, next.Humidifier)
}

func TestHumidityHolds(t *testing.T) {
	// inside [hum_low, hum_high] the humidifier keeps its previous state
	for _, prior := range []bool{false, true} {
		prev := state.ActuatorState{Humidifier: prior}
		next := Evaluate(prev, reading(midTemp, 50, midMoist), thresholds)
		assert.Equal(t, prior, next.Humidifier)
	}
}

func TestMoistureDry(t *testing.T) {
	next := Evaluate(state.ActuatorState{}, reading(midTemp, midHum, 30), thresholds)
	assert.True(t, next.Pump)
}

func TestMoistureWet(t *testing.T) {
	prev := state.ActuatorState{Pump: true}
	next := Evaluate(prev, reading(midTemp, midHum, 70), thresholds)
	assert.False(t, next.Pump)
}

func TestMoistureHolds(t *testing.T) {
	for _, prior := range []bool{false, true} {
		prev := state.ActuatorState{Pump: prior}
		next := Evaluate(prev, reading(midTemp, midHum, 50), thresholds)
		assert.Equal(t, prior, next.Pump)
	}
}

func TestFaultedChannelsHold(t *testing.T) {
	// a broken sensor holds that channel rather than actuating on the
	// sentinel - -999 would otherwise read as "freezing" and "bone dry"
	prev := state.ActuatorState{Fan: true, Humidifier: true, Pump: true}
	next := Evaluate(prev, reading(state.Faulted, state.Faulted, state.Faulted), thresholds)
	assert.Equal(t, prev, next)

	prev = state.ActuatorState{}
	next = Evaluate(prev, reading(state.Faulted, state.Faulted, state.Faulted), thresholds)
	assert.Equal(t, prev, next)
}

func TestFaultsAreIndependent(t *testing.T) {
	// a faulted temperature doesn't stop humidity control
	next := Evaluate(state.ActuatorState{}, reading(state.Faulted, 40, midMoist), thresholds)
	assert.True(t, next.Humidifier)
	assert.False(t, next.Fan)
	assert.False(t, next.Lights)
}

// Fan and lights must never drive together, whatever sequence of readings
// arrives.
func TestFanLightsExclusive(t *testing.T) {
	temps := []float64{23, 19, 21, state.Faulted, 25, 18, state.Faulted, 20.5}
	prev := state.ActuatorState{}
	for _, temp := range temps {
		prev = Evaluate(prev, reading(temp, midHum, midMoist), thresholds)
		assert.False(t, prev.Fan && prev.Lights, "fan and lights both on at temp %v", temp)
	}
}

func TestTickDrivesOutputs(t *testing.T) {
	services.State = state.New()
	services.Store = config.NewStore(t.TempDir() + "/thresholds.yml")
	services.State.UpdateReading(reading(25, midHum, midMoist))

	bank := &hardware.MockBank{}
	service := &Service{Outputs: bank}
	service.tick()

	assert.Len(t, bank.Applied, 1)
	assert.True(t, bank.Last().Fan)

	// published state matches what was driven
	_, actuators := services.State.Snapshot()
	assert.Equal(t, bank.Last(), actuators)
}
