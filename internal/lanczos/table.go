package lanczos

import (
	"math"
	"sync"

	"github.com/tphakala/go-realtime-resampler/internal/simdops"
)

// Kernel evaluates the normalized windowed-sinc (Lanczos) kernel at x:
//
//	L(x) = a·sin(πx)·sin(πx/a) / (π²x²)  for x ≠ 0
//	L(0) = 1
//
// with window half-width a = HalfWidth. The kernel is even and zero at
// every non-zero integer offset.
func Kernel(x float64) float64 {
	if math.Abs(x) < zeroThreshold {
		return 1
	}
	return HalfWidth * math.Sin(math.Pi*x) * math.Sin(math.Pi*x/HalfWidth) / (math.Pi * math.Pi * x * x)
}

// kernelTable holds the kernel quantized to tableSteps sub-sample offsets.
// Row r holds the filterWidth taps for fractional offset r/tableSteps;
// delta holds the forward difference to the next row, so a lookup can
// linearly interpolate between rows instead of re-evaluating the
// transcendental kernel.
//
// Rows are stored flat (row-major, filterWidth entries per row) so a row
// is a contiguous slice suitable for SIMD dot products.
type kernelTable[F simdops.Float] struct {
	taps  []F
	delta []F
}

// row returns the tap and delta slices for table row r.
func (t *kernelTable[F]) row(r int) (taps, delta []F) {
	base := r * filterWidth
	return t.taps[base : base+filterWidth], t.delta[base : base+filterWidth]
}

func newKernelTable[F simdops.Float]() *kernelTable[F] {
	t := &kernelTable[F]{
		taps:  make([]F, (tableSteps+1)*filterWidth),
		delta: make([]F, (tableSteps+1)*filterWidth),
	}

	const dx = 1.0 / tableSteps
	for r := 0; r <= tableSteps; r++ {
		x0 := dx * float64(r)
		row := t.taps[r*filterWidth : (r+1)*filterWidth]
		for i := range row {
			row[i] = F(Kernel(x0 + float64(i) - HalfWidth))
		}
	}

	for r := 0; r < tableSteps; r++ {
		cur := t.taps[r*filterWidth : (r+1)*filterWidth]
		next := t.taps[(r+1)*filterWidth : (r+2)*filterWidth]
		d := t.delta[r*filterWidth : (r+1)*filterWidth]
		for i := range d {
			d[i] = next[i] - cur[i]
		}
	}

	// The guard row wraps: the derivative is continuous across the seam,
	// so reuse the first delta row.
	copy(t.delta[tableSteps*filterWidth:], t.delta[:filterWidth])

	return t
}

// The table is process-wide and read-only once built. One table exists
// per precision, each guarded by its own sync.Once so that first use
// from any goroutine is safe.
var (
	tableOnce32, tableOnce64 sync.Once
	table32                  *kernelTable[float32]
	table64                  *kernelTable[float64]
)

// tableFor returns the shared kernel table for precision F, building it
// on first use.
func tableFor[F simdops.Float]() *kernelTable[F] {
	var zero F
	switch any(zero).(type) {
	case float32:
		tableOnce32.Do(func() { table32 = newKernelTable[float32]() })
		t, ok := any(table32).(*kernelTable[F])
		if !ok {
			panic("lanczos: type assertion failed for float32 table")
		}
		return t
	case float64:
		tableOnce64.Do(func() { table64 = newKernelTable[float64]() })
		t, ok := any(table64).(*kernelTable[F])
		if !ok {
			panic("lanczos: type assertion failed for float64 table")
		}
		return t
	default:
		panic("lanczos: unsupported float type")
	}
}
