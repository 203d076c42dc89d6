package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSampleScale verifies the full-scale value per bit depth, with
// 16-bit as the fallback.
func TestSampleScale(t *testing.T) {
	assert.Equal(t, maxInt16, sampleScale(16))
	assert.Equal(t, maxInt24, sampleScale(24))
	assert.Equal(t, maxInt32, sampleScale(32))
	assert.Equal(t, maxInt16, sampleScale(8))
}

// TestClampSample verifies rounding and clipping at full scale.
func TestClampSample(t *testing.T) {
	assert.Equal(t, 0, clampSample(0.4, maxInt16))
	assert.Equal(t, 1, clampSample(0.6, maxInt16))
	assert.Equal(t, 32767, clampSample(40000, maxInt16))
	assert.Equal(t, -32768, clampSample(-40000, maxInt16))
}

// TestDBToLinear verifies common gain conversions.
func TestDBToLinear(t *testing.T) {
	assert.InDelta(t, 1.0, dbToLinear(0), 1e-12)
	assert.InDelta(t, 0.5011872, dbToLinear(-6), 1e-6)
	assert.InDelta(t, 10.0, dbToLinear(20), 1e-12)
}

// TestParseMode verifies mode name parsing including the lanczos alias.
func TestParseMode(t *testing.T) {
	for name, want := range map[string]string{
		"linear":  "linear",
		"cubic":   "cubic",
		"sinc":    "windowed-sinc",
		"lanczos": "windowed-sinc",
	} {
		mode, err := parseMode(name)
		assert.NoError(t, err)
		assert.Equal(t, want, mode.String())
	}

	_, err := parseMode("polyphase")
	assert.Error(t, err)
}
