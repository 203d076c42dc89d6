package resampler

import (
	"math"

	"github.com/tphakala/go-realtime-resampler/internal/simdops"
)

// The block interpolators are pure functions: they carry no state across
// calls and rely only on the samples inside the supplied block. For each
// output index w the fractional read position is ratio*w; once the
// integer part runs past the input the remaining output samples are left
// untouched rather than read out of bounds.

// linearInterpolate resamples a stereo block by 2-point linear
// interpolation and returns the number of output frames written,
// min(ceil(inputLen/ratio), maxOut). At the final input sample the
// missing right-hand neighbour is mirrored from the left-hand one.
func linearInterpolate[F simdops.Float](in, out StereoBlock[F], inputLen int, ratio float64, maxOut int) int {
	outputLen := int(math.Ceil(float64(inputLen) / ratio))
	if outputLen > maxOut {
		outputLen = maxOut
	}

	ins, outs := in.channels(), out.channels()

	for w := 0; w < outputLen; w++ {
		readPos := ratio * float64(w)
		trunc := math.Floor(readPos)
		i := int(trunc)
		if i >= inputLen {
			continue
		}

		frac := F(readPos - trunc)
		next := i + 1
		if next >= inputLen {
			// Mirror the boundary instead of reading past the block.
			next = i - 1
			if next < 0 {
				next = i
			}
		}

		for ch := 0; ch < stereoChannels; ch++ {
			x0 := ins[ch][i]
			x1 := ins[ch][next]
			outs[ch][w] = (1-frac)*x0 + frac*x1
		}
	}

	return outputLen
}

// cubicInterpolate resamples a stereo block by 4-point Catmull-Rom
// (Hermite) interpolation over x[i-1..i+2] and returns the number of
// output frames written. Taps that would fall outside the block clamp to
// the nearest valid sample on both edges.
func cubicInterpolate[F simdops.Float](in, out StereoBlock[F], inputLen int, ratio float64, maxOut int) int {
	outputLen := int(math.Ceil(float64(inputLen) / ratio))
	if outputLen > maxOut {
		outputLen = maxOut
	}

	ins, outs := in.channels(), out.channels()
	last := inputLen - 1

	for w := 0; w < outputLen; w++ {
		readPos := ratio * float64(w)
		trunc := math.Floor(readPos)
		i := int(trunc)
		if i >= inputLen {
			continue
		}

		frac := F(readPos - trunc)

		for ch := 0; ch < stereoChannels; ch++ {
			x := ins[ch]
			xm1 := x[max(i-1, 0)]
			x0 := x[i]
			x1 := x[min(i+1, last)]
			x2 := x[min(i+2, last)]

			coefC := (x1 - xm1) * hermiteHalf
			v := x0 - x1
			wv := coefC + v
			coefA := wv + v + (x2-x0)*hermiteHalf
			coefB := wv + coefA

			outs[ch][w] = ((coefA*frac-coefB)*frac+coefC)*frac + x0
		}
	}

	return outputLen
}
