// Package testutil provides reusable test helper functions for resampler tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tphakala/go-realtime-resampler/internal/simdops"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance   = 1e-10
	PassbandTolerance  = 5e-2
	AmplitudeTolerance = 1e-2
)

// Sine generates n samples of a sine wave at freq Hz sampled at rate Hz
// with the given amplitude.
func Sine[F simdops.Float](n int, freq, rate, amp float64) []F {
	s := make([]F, n)
	for i := range s {
		t := float64(i) / rate
		s[i] = F(amp * math.Sin(2*math.Pi*freq*t))
	}
	return s
}

// Constant generates n samples with the same value.
func Constant[F simdops.Float](n int, value F) []F {
	s := make([]F, n)
	for i := range s {
		s[i] = value
	}
	return s
}

// Peak returns the maximum absolute sample value.
func Peak[F simdops.Float](s []F) float64 {
	var peak float64
	for _, v := range s {
		if a := math.Abs(float64(v)); a > peak {
			peak = a
		}
	}
	return peak
}

// RMS returns the root-mean-square level of the signal.
func RMS[F simdops.Float](s []F) float64 {
	if len(s) == 0 {
		return 0
	}
	var sum float64
	for _, v := range s {
		f := float64(v)
		sum += f * f
	}
	return math.Sqrt(sum / float64(len(s)))
}

// MaxDelta returns the largest absolute sample-to-sample difference.
func MaxDelta[F simdops.Float](s []F) float64 {
	var maxd float64
	for i := 1; i < len(s); i++ {
		if d := math.Abs(float64(s[i]) - float64(s[i-1])); d > maxd {
			maxd = d
		}
	}
	return maxd
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf[F simdops.Float](t *testing.T, s []F, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		f := float64(v)
		if math.IsNaN(f) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(f, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertAllZero verifies that every element is exactly zero.
func AssertAllZero[F simdops.Float](t *testing.T, s []F, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v != 0 {
			return assert.Fail(t, "non-zero sample", "s[%d] = %v", i, v)
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
		relError, tolerance, expected, actual)
}
