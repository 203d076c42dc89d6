// Package resampler provides real-time non-integer sample-rate
// conversion around a fixed internal rendering rate, in pure Go.
//
// It is built for the hard real-time audio callback of a plugin or audio
// application: the host delivers blocks at whatever rate it runs at, the
// embedded algorithm always executes at one fixed "rendering" rate, and
// the facade converts in both directions around it every block:
//
//	host block → up-convert → transform (rendering rate) → down-convert → host block
//
// # Features
//
//   - Three swappable conversion strategies: linear, cubic (Catmull-Rom
//     Hermite), and a streaming phase-accurate windowed-sinc (Lanczos)
//     engine with a precomputed kernel table
//   - Allocation-free, non-blocking processing path after Reset
//   - Bounded, constant per-call latency for a fixed mode and rate pair
//   - Generic over float32 and float64 precision
//   - SIMD-accelerated inner loop via github.com/tphakala/simd
//
// # Quick Start
//
//	r, err := resampler.New[float64](48000, resampler.WindowedSinc)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := r.Reset(hostRate, hostMaxBlock); err != nil {
//	    log.Fatal(err)
//	}
//
//	gain := func(b resampler.StereoBlock[float64]) {
//	    for i := range b.L {
//	        b.L[i] *= 0.5
//	        b.R[i] *= 0.5
//	    }
//	}
//
//	// Inside the audio callback, once per host block:
//	r.ProcessBlock(in, out, frames, gain)
//
// # Choosing a mode
//
//   - [Linear]: cheapest, near-zero latency; fine for control-adjacent
//     signals and previews.
//   - [Cubic]: smoother reconstruction at modest extra cost, still
//     near-zero latency.
//   - [WindowedSinc]: streaming Lanczos (a=4) with an 8192-row kernel
//     table; highest quality, a few filter half-widths of latency.
//
// # Real-time contract
//
// ProcessBlock runs to completion on the calling thread with no
// allocation, locking, or I/O. Reset and SetMode rebuild engine state
// synchronously and must be serialized with ProcessBlock by the caller;
// they are intended for parameter-change notifications, not the
// steady-state audio path. Each Resampler instance is exclusively owned
// by one thread. The one process-wide shared resource, the windowed-sinc
// kernel table, is built once on first use behind a sync.Once and is
// read-only afterwards.
//
// # Scope
//
// The facade is a fixed two-channel (stereo) design; the rendering rate
// is immutable for the lifetime of an instance, and only the input rate
// may change via Reset.
package resampler
