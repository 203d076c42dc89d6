package resampler

import (
	"github.com/tphakala/go-realtime-resampler/internal/simdops"
)

// Common sample rates for convenience constructors.
const (
	// RateCD is the CD quality sample rate (Red Book standard).
	RateCD = 44100

	// RateDAT is the DAT/DVD sample rate.
	RateDAT = 48000

	// RateHiRes88 is the high-resolution 2x CD sample rate.
	RateHiRes88 = 88200

	// RateHiRes96 is the high-resolution 2x DAT sample rate.
	RateHiRes96 = 96000
)

// NewLinear creates a resampler in Linear mode.
func NewLinear[F simdops.Float](renderingRate float64) (*Resampler[F], error) {
	return New[F](renderingRate, Linear)
}

// NewCubic creates a resampler in Cubic mode.
func NewCubic[F simdops.Float](renderingRate float64) (*Resampler[F], error) {
	return New[F](renderingRate, Cubic)
}

// NewLanczos creates a resampler in WindowedSinc mode.
func NewLanczos[F simdops.Float](renderingRate float64) (*Resampler[F], error) {
	return New[F](renderingRate, WindowedSinc)
}

// Interleave writes the block's frames into dst in LRLR order.
// dst must hold 2*block.Frames() samples.
func Interleave[F simdops.Float](dst []F, block StereoBlock[F]) {
	simdops.For[F]().Interleave2(dst, block.L, block.R)
}

// Deinterleave splits LRLR-ordered src into the block's channels.
// src must hold 2*block.Frames() samples.
func Deinterleave[F simdops.Float](block StereoBlock[F], src []F) {
	for i := range block.L {
		block.L[i] = src[2*i]
		block.R[i] = src[2*i+1]
	}
}
