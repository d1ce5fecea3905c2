package serviceImp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	fields := Extract("Temp: 24.5 Humidity: 55 Soil: 40 Distance: 30")
	assert.Equal(t, map[string]string{
		"Temp": "24.5", "Humidity": "55", "Soil": "40", "Distance": "30",
	}, fields)
}

func TestExtractPartialLine(t *testing.T) {
	fields := Extract("noise Temp: 21 more noise Soil: 38")
	assert.Equal(t, map[string]string{"Temp": "21", "Soil": "38"}, fields)
}

func TestExtractRepeatedLabelKeepsLast(t *testing.T) {
	fields := Extract("Temp: 20 Temp: 25")
	assert.Equal(t, map[string]string{"Temp": "25"}, fields)
}

func TestExtractNothing(t *testing.T) {
	assert.Empty(t, Extract("hello world"))
	assert.Empty(t, Extract("Temp: abc"))
	// Negative readings do not match the device format.
	assert.Empty(t, Extract("Temp: -5"))
}
