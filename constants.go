package resampler

// Channel constants
const (
	stereoChannels = 2 // The facade is a fixed two-channel (stereo) design
)

// Block and buffer constants
const (
	// DefaultMaxBlock is the host block size assumed when Reset is
	// called with maxBlock <= 0, in input-rate frames.
	DefaultMaxBlock = 1024

	// scratchMargin is extra rendering-rate headroom added to the
	// scratch buffer so that ceil rounding of the conversion ratio can
	// never exhaust it.
	scratchMargin = 8
)

// Interpolation constants
const (
	// hermiteHalf appears throughout the Catmull-Rom tangent estimates:
	// the centered first difference (x[i+1] - x[i-1]) / 2.
	hermiteHalf = 0.5

	// Latency per interpolator in input samples.
	linearLatencySamples = 1
	cubicLatencySamples  = 2
)
