package lanczos

import (
	"github.com/tphakala/go-realtime-resampler/internal/simdops"
)

// stereoRing is a fixed-capacity history ring for stereo samples with
// mirrored storage: every sample is written at index i and i+historySize,
// so any filterWidth-long window ending inside the ring can be read as a
// single contiguous slice with no wrap branching.
//
// A ring is exclusively owned by one Engine and mutated only from the
// audio thread, so it is intentionally unsynchronized. Pushing never
// allocates.
type stereoRing[F simdops.Float] struct {
	data [2][]F // each channel holds 2*historySize samples
	wp   int    // next write slot, in [0, historySize)
}

func newStereoRing[F simdops.Float]() *stereoRing[F] {
	return &stereoRing[F]{
		data: [2][]F{
			make([]F, 2*historySize),
			make([]F, 2*historySize),
		},
	}
}

// push appends one stereo sample pair, duplicating it into the mirrored
// half of the storage.
func (rg *stereoRing[F]) push(l, r F) {
	rg.data[0][rg.wp] = l
	rg.data[0][rg.wp+historySize] = l
	rg.data[1][rg.wp] = r
	rg.data[1][rg.wp+historySize] = r
	rg.wp = (rg.wp + 1) & historyMask
}

// normalize maps a possibly-negative logical index into the mirrored
// region so that a subsequent window call never underruns the slice.
func (rg *stereoRing[F]) normalize(idx int) int {
	idx = (idx + historySize) & historyMask
	if idx <= HalfWidth {
		idx += historySize
	}
	return idx
}

// window returns the filterWidth contiguous samples of channel ch
// spanning [idx-HalfWidth, idx+HalfWidth). idx must come from normalize.
func (rg *stereoRing[F]) window(ch, idx int) []F {
	return rg.data[ch][idx-HalfWidth : idx+HalfWidth]
}

// clear zeroes the ring and rewinds the write position.
func (rg *stereoRing[F]) clear() {
	for ch := range rg.data {
		for i := range rg.data[ch] {
			rg.data[ch][i] = 0
		}
	}
	rg.wp = 0
}
