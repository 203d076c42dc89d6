// Package lanczos implements a streaming, phase-accurate windowed-sinc
// resampler for stereo audio.
//
// An Engine converts between two asynchronous sample rates: callers push
// input samples one stereo pair at a time and pull output samples as
// they become producible. Internally the engine keeps a mirrored
// circular history per channel and two continuous phase accumulators
// measured in input-sample units; an output sample exists once the input
// phase leads the output phase by more than the filter half-width.
//
// The kernel is evaluated through a shared, precomputed lookup table
// (see table.go) with linear interpolation between rows, and the per-tap
// multiply-accumulate runs through SIMD dot products.
package lanczos

import (
	"math"

	"github.com/tphakala/go-realtime-resampler/internal/simdops"
)

// Engine is a single-direction streaming Lanczos resampler.
//
// An Engine is exclusively owned by its creator and must only be used
// from one goroutine at a time; see the package comment. None of its
// methods allocate.
type Engine[F simdops.Float] struct {
	ring  *stereoRing[F]
	table *kernelTable[F]
	ops   *simdops.Ops[F]

	inputRate  float64
	outputRate float64

	// Phase accumulators in input-sample units. phaseIn advances by 1
	// per pushed pair, phaseOut by dPhaseOut per produced sample.
	// phaseIn - phaseOut is the available lookahead.
	phaseIn   float64
	phaseOut  float64
	dPhaseOut float64

	// Scratch for the row-interpolated kernel taps, reused across reads.
	taps [filterWidth]F
}

// NewEngine creates an engine converting from inputRate to outputRate.
// Rates must be positive; the caller validates them.
func NewEngine[F simdops.Float](inputRate, outputRate float64) *Engine[F] {
	return &Engine[F]{
		ring:       newStereoRing[F](),
		table:      tableFor[F](),
		ops:        simdops.For[F](),
		inputRate:  inputRate,
		outputRate: outputRate,
		dPhaseOut:  inputRate / outputRate,
	}
}

// Push appends one stereo sample pair to the history and advances the
// input phase by one sample.
func (e *Engine[F]) Push(l, r F) {
	e.ring.push(l, r)
	e.phaseIn++
}

// PopulateNext produces as many output samples as the buffered lookahead
// allows, up to len(outL), writing them to outL and outR. It returns the
// number of samples produced; trailing entries beyond that count are
// left untouched. outL and outR must have equal length.
func (e *Engine[F]) PopulateNext(outL, outR []F) int {
	produced := 0
	for produced < len(outL) && e.phaseIn-e.phaseOut > MinLookahead {
		outL[produced], outR[produced] = e.readBack(e.phaseIn - e.phaseOut)
		e.phaseOut += e.dPhaseOut
		produced++
	}
	return produced
}

// readBack evaluates one output sample at back input-samples behind the
// write position. The fractional part selects a kernel table row, the
// sub-row fraction interpolates between that row and the next via the
// delta table, and the interpolated taps are dotted against the
// contiguous history window of each channel.
func (e *Engine[F]) readBack(back float64) (l, r F) {
	p0 := float64(e.ring.wp) - back
	idx := int(math.Floor(p0))
	off := 1.0 - (p0 - float64(idx))
	idx = e.ring.normalize(idx)

	scaled := off * tableSteps
	row := int(scaled)
	frac := F(scaled - float64(row))

	taps, delta := e.table.row(row)
	for i := range e.taps {
		e.taps[i] = taps[i] + frac*delta[i]
	}

	l = e.ops.DotProductUnsafe(e.taps[:], e.ring.window(0, idx))
	r = e.ops.DotProductUnsafe(e.taps[:], e.ring.window(1, idx))
	return l, r
}

// InputsRequired reports how many additional samples must be pushed
// before desired further output samples become producible. Zero means
// the outputs are producible from the current state.
//
// Derivation: producing desired outputs advances phaseOut by
// desired*dPhaseOut, and the lookahead condition requires
// phaseIn - phaseOut > MinLookahead to hold afterwards.
func (e *Engine[F]) InputsRequired(desired int) int {
	res := float64(MinLookahead) - (e.phaseIn - e.phaseOut - e.dPhaseOut*float64(desired))
	res++
	if res < 0 {
		return 0
	}
	return int(res)
}

// RenormalizePhases subtracts the output phase from both accumulators,
// preserving their difference while keeping the absolute values bounded
// over long-running streams.
func (e *Engine[F]) RenormalizePhases() {
	e.phaseIn -= e.phaseOut
	e.phaseOut = 0
}

// Lookahead returns the currently buffered lookahead in input samples.
func (e *Engine[F]) Lookahead() float64 {
	return e.phaseIn - e.phaseOut
}

// Ratio returns the input/output rate ratio (phase advance per produced
// sample).
func (e *Engine[F]) Ratio() float64 {
	return e.dPhaseOut
}

// Reset clears the history and both phase accumulators, returning the
// engine to its freshly constructed state.
func (e *Engine[F]) Reset() {
	e.ring.clear()
	e.phaseIn = 0
	e.phaseOut = 0
}
