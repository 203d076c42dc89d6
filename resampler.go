package resampler

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-realtime-resampler/internal/lanczos"
	"github.com/tphakala/go-realtime-resampler/internal/simdops"
)

// Mode selects the sample-rate conversion algorithm.
type Mode int

const (
	// Linear uses 2-point linear interpolation. Cheapest, near-zero
	// latency, audible aliasing on broadband material.
	Linear Mode = iota

	// Cubic uses 4-point Catmull-Rom (Hermite) interpolation. Smoother
	// than Linear at modest extra cost.
	Cubic

	// WindowedSinc uses the streaming Lanczos engine: highest quality,
	// several filter half-widths of latency.
	WindowedSinc

	numModes
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Linear:
		return "linear"
	case Cubic:
		return "cubic"
	case WindowedSinc:
		return "windowed-sinc"
	default:
		return "unknown"
	}
}

// Common errors returned by the resampler.
var (
	// ErrInvalidRate indicates a zero or negative sample rate.
	ErrInvalidRate = errors.New("sample rate must be positive")

	// ErrInvalidMode indicates an out-of-range Mode value.
	ErrInvalidMode = errors.New("invalid resampling mode")
)

// StereoBlock is a non-interleaved two-channel block of samples. Both
// channel slices always have equal length.
//
// The facade is deliberately a concrete two-channel type rather than an
// N-channel abstraction: stereo is the fast path, and a multi-channel
// variant would be an additive extension.
type StereoBlock[F simdops.Float] struct {
	L, R []F
}

// NewStereoBlock allocates a zeroed block of the given frame count.
func NewStereoBlock[F simdops.Float](frames int) StereoBlock[F] {
	return StereoBlock[F]{
		L: make([]F, frames),
		R: make([]F, frames),
	}
}

// Frames returns the number of frames in the block.
func (b StereoBlock[F]) Frames() int {
	return len(b.L)
}

// Slice returns the block truncated to n frames, sharing storage.
func (b StereoBlock[F]) Slice(n int) StereoBlock[F] {
	return StereoBlock[F]{L: b.L[:n], R: b.R[:n]}
}

// Zero clears both channels.
func (b StereoBlock[F]) Zero() {
	for i := range b.L {
		b.L[i] = 0
		b.R[i] = 0
	}
}

// channels exposes the block as an indexable pair for per-channel loops.
func (b StereoBlock[F]) channels() [stereoChannels][]F {
	return [stereoChannels][]F{b.L, b.R}
}

// BlockFunc is the caller-supplied transform invoked on the
// rendering-rate signal, operating in place on the supplied block.
//
// It runs synchronously inside ProcessBlock on the calling (audio)
// thread: it must not allocate, block, or retain the slices beyond the
// call.
type BlockFunc[F simdops.Float] func(block StereoBlock[F])

// Identity is a BlockFunc that leaves the block unchanged.
func Identity[F simdops.Float](StereoBlock[F]) {}

// Resampler converts a stereo stream arriving at an external input rate
// to a fixed internal rendering rate, runs a caller-supplied transform
// at that rate, and converts the result back — with bounded, constant
// per-call latency for a fixed mode and rate pair.
//
// The rendering rate is fixed for the lifetime of the instance; only the
// input rate may change, via Reset. A Resampler and its engines are
// exclusively owned by the audio thread: Reset and SetMode discard and
// rebuild engine state synchronously and must be serialized with
// ProcessBlock by the caller.
//
// After Reset, ProcessBlock performs no allocation and no I/O.
type Resampler[F simdops.Float] struct {
	renderingRate float64
	inputRate     float64
	upRatio       float64 // inputRate / renderingRate
	downRatio     float64 // renderingRate / inputRate
	mode          Mode

	maxBlock   int
	scratch    StereoBlock[F]
	scratchCap int

	// Present only in WindowedSinc mode.
	up, down *lanczos.Engine[F]
}

// New creates a resampler that always runs its transform at
// renderingRate. Reset must be called before the first ProcessBlock.
func New[F simdops.Float](renderingRate float64, mode Mode) (*Resampler[F], error) {
	if renderingRate <= 0 {
		return nil, fmt.Errorf("%w: rendering rate %v", ErrInvalidRate, renderingRate)
	}
	if mode < 0 || mode >= numModes {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, int(mode))
	}

	return &Resampler[F]{
		renderingRate: renderingRate,
		mode:          mode,
	}, nil
}

// RenderingRate returns the fixed internal rate the transform runs at.
func (r *Resampler[F]) RenderingRate() float64 {
	return r.renderingRate
}

// InputRate returns the external rate configured by the last Reset, or
// zero before the first Reset.
func (r *Resampler[F]) InputRate() float64 {
	return r.inputRate
}

// Mode returns the active conversion algorithm.
func (r *Resampler[F]) Mode() Mode {
	return r.mode
}

// Latency returns the approximate latency the active mode introduces, in
// input samples. It is constant for a fixed mode and rate pair.
func (r *Resampler[F]) Latency() int {
	switch r.mode {
	case Linear:
		return linearLatencySamples
	case Cubic:
		return cubicLatencySamples
	default:
		// One lookahead span per conversion direction.
		return 2 * lanczos.MinLookahead
	}
}

// Reset configures the input rate and maximum host block size, clears
// the scratch buffer, and in WindowedSinc mode rebuilds both directional
// engines. Call it before the first ProcessBlock and whenever the input
// rate changes.
//
// Reset allocates; ProcessBlock never does.
func (r *Resampler[F]) Reset(inputRate float64, maxBlock int) error {
	if inputRate <= 0 {
		return fmt.Errorf("%w: input rate %v", ErrInvalidRate, inputRate)
	}
	if maxBlock <= 0 {
		maxBlock = DefaultMaxBlock
	}

	r.inputRate = inputRate
	r.upRatio = inputRate / r.renderingRate
	r.downRatio = r.renderingRate / inputRate
	r.maxBlock = maxBlock

	// The scratch buffer holds the rendering-rate signal, which is
	// longer than the host block whenever the rendering rate exceeds
	// the input rate.
	needed := int(math.Ceil(float64(maxBlock)/r.upRatio)) + scratchMargin
	if needed < maxBlock {
		needed = maxBlock
	}
	if needed > r.scratchCap {
		r.scratch = NewStereoBlock[F](needed)
		r.scratchCap = needed
	} else {
		r.scratch.Zero()
	}

	r.up, r.down = nil, nil
	if r.mode == WindowedSinc {
		r.up = lanczos.NewEngine[F](inputRate, r.renderingRate)
		r.down = lanczos.NewEngine[F](r.renderingRate, inputRate)

		// Prime the up-engine with silence so its lookahead condition
		// already holds when the first real block arrives.
		advance := 2 * r.up.InputsRequired(1)
		for i := 0; i < advance; i++ {
			r.up.Push(0, 0)
		}
	}

	return nil
}

// SetMode switches the conversion algorithm and performs a full Reset
// with the previously configured input rate. The discontinuity at the
// switch point is acceptable: a mode change is an explicit user action,
// not continuous audio.
//
// Before the first Reset, SetMode only records the mode.
func (r *Resampler[F]) SetMode(mode Mode) error {
	if mode < 0 || mode >= numModes {
		return fmt.Errorf("%w: %d", ErrInvalidMode, int(mode))
	}

	r.mode = mode
	if r.inputRate == 0 {
		return nil
	}
	return r.Reset(r.inputRate, r.maxBlock)
}

// ProcessBlock converts frames input frames up to the rendering rate,
// invokes fn on the rendering-rate block in place, and converts the
// result back down into out. in and out must each hold at least frames
// frames; out may alias in.
//
// The rendering-rate frame count is clamped to the scratch capacity, so
// a block larger than the maxBlock passed to Reset degrades gracefully
// instead of faulting. In WindowedSinc mode the first call after Reset
// may emit up to a filter-width of trailing zero frames while the
// down-engine accumulates its initial lookahead.
//
// A call with frames <= 0 is a no-op; duplex devices deliver empty
// callbacks during stream start and stop.
func (r *Resampler[F]) ProcessBlock(in, out StereoBlock[F], frames int, fn BlockFunc[F]) {
	if frames <= 0 {
		return
	}

	switch r.mode {
	case Linear:
		m := linearInterpolate(in, r.scratch, frames, r.upRatio, r.scratchCap)
		render := r.scratch.Slice(m)
		fn(render)
		linearInterpolate(render, out, m, r.downRatio, frames)

	case Cubic:
		m := cubicInterpolate(in, r.scratch, frames, r.upRatio, r.scratchCap)
		render := r.scratch.Slice(m)
		fn(render)
		cubicInterpolate(render, out, m, r.downRatio, frames)

	case WindowedSinc:
		for i := 0; i < frames; i++ {
			r.up.Push(in.L[i], in.R[i])
		}

		m := int(math.Ceil(float64(frames) / r.upRatio))
		if m > r.scratchCap {
			m = r.scratchCap
		}

		for r.up.InputsRequired(m) == 0 {
			r.up.PopulateNext(r.scratch.L[:m], r.scratch.R[:m])
			fn(r.scratch.Slice(m))
			for i := 0; i < m; i++ {
				r.down.Push(r.scratch.L[i], r.scratch.R[i])
			}
		}

		produced := r.down.PopulateNext(out.L[:frames], out.R[:frames])
		for i := produced; i < frames; i++ {
			out.L[i] = 0
			out.R[i] = 0
		}

		// Keep the phase accumulators bounded over long streams. The
		// subtraction preserves the fractional input/output relation.
		r.up.RenormalizePhases()
		r.down.RenormalizePhases()
	}
}
