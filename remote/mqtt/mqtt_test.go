package mqtt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeltaFromValues(t *testing.T) {
	delta := deltaFromValues(map[string]string{
		"temp_high":    "25.5",
		"hum_low":      "40",
		"moisture_dry": "junk",
		"unknown_key":  "1",
	})

	if assert.NotNil(t, delta.TempHigh) {
		assert.Equal(t, 25.5, *delta.TempHigh)
	}
	if assert.NotNil(t, delta.HumLow) {
		assert.Equal(t, 40.0, *delta.HumLow)
	}
	// junk values and unknown keys are skipped
	assert.Nil(t, delta.MoistureDry)
	assert.Nil(t, delta.TempLow)
}

func TestDeltaFromValuesEmpty(t *testing.T) {
	delta := deltaFromValues(map[string]string{})
	assert.True(t, delta.Empty())
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "21.5", formatFloat(21.5))
	assert.Equal(t, "-999", formatFloat(-999))
}
