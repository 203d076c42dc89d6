package lanczos

// Filter geometry constants.
const (
	// HalfWidth is the Lanczos window half-width (the "a" parameter).
	// The kernel is non-zero on (-HalfWidth, HalfWidth).
	HalfWidth = 4

	// filterWidth is the number of taps evaluated per output sample.
	filterWidth = 2 * HalfWidth

	// MinLookahead is the number of input samples that must be buffered
	// beyond the read position before an output sample can be produced.
	MinLookahead = HalfWidth + 1
)

// Kernel table constants.
const (
	// tableSteps is the number of sub-sample offsets the kernel is
	// quantized to over one unit interval. 8192 steps keep the linear
	// interpolation error between adjacent rows well below the 24-bit
	// noise floor.
	tableSteps = 8192

	// zeroThreshold is the |x| below which the kernel evaluates to 1
	// directly, avoiding 0/0 in the sinc expression.
	zeroThreshold = 1e-7
)

// History ring constants.
const (
	// historySize is the per-channel ring capacity in samples.
	// Must be a power of two.
	historySize = 4096

	// historyMask wraps ring indices via bitwise AND.
	historyMask = historySize - 1
)
