package resampler

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-realtime-resampler/internal/testutil"
)

// TestNew_Validation verifies construction rejects misconfiguration.
func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name string
		rate float64
		mode Mode
		err  error
	}{
		{"ZeroRate", 0, Linear, ErrInvalidRate},
		{"NegativeRate", -48000, Cubic, ErrInvalidRate},
		{"ModeTooLarge", 48000, numModes, ErrInvalidMode},
		{"ModeNegative", 48000, Mode(-1), ErrInvalidMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New[float64](tt.rate, tt.mode)
			require.ErrorIs(t, err, tt.err)
		})
	}

	r, err := New[float64](48000, WindowedSinc)
	require.NoError(t, err)
	assert.Equal(t, 48000.0, r.RenderingRate())
	assert.Equal(t, WindowedSinc, r.Mode())
	assert.Zero(t, r.InputRate())
}

// TestReset_Validation verifies Reset rejects invalid input rates and
// records valid ones.
func TestReset_Validation(t *testing.T) {
	r, err := New[float64](48000, Linear)
	require.NoError(t, err)

	require.ErrorIs(t, r.Reset(0, 512), ErrInvalidRate)
	require.ErrorIs(t, r.Reset(-44100, 512), ErrInvalidRate)

	require.NoError(t, r.Reset(44100, 512))
	assert.Equal(t, 44100.0, r.InputRate())
}

// TestModeString verifies the mode names.
func TestModeString(t *testing.T) {
	assert.Equal(t, "linear", Linear.String())
	assert.Equal(t, "cubic", Cubic.String())
	assert.Equal(t, "windowed-sinc", WindowedSinc.String())
	assert.Equal(t, "unknown", Mode(99).String())
}

// TestProcessBlock_IdentityAtEqualRates verifies that with the input
// rate equal to the rendering rate and an identity transform, Linear and
// Cubic reproduce the input exactly: every read position lands on an
// input sample.
func TestProcessBlock_IdentityAtEqualRates(t *testing.T) {
	for _, mode := range []Mode{Linear, Cubic} {
		t.Run(mode.String(), func(t *testing.T) {
			r, err := New[float64](48000, mode)
			require.NoError(t, err)
			require.NoError(t, r.Reset(48000, 256))

			in := StereoBlock[float64]{
				L: testutil.Sine[float64](256, 1000, 48000, 0.9),
				R: testutil.Sine[float64](256, 3000, 48000, 0.5),
			}
			out := NewStereoBlock[float64](256)

			r.ProcessBlock(in, out, 256, Identity[float64])

			for i := 0; i < 256; i++ {
				assert.InDelta(t, in.L[i], out.L[i], 1e-12, "L[%d]", i)
				assert.InDelta(t, in.R[i], out.R[i], 1e-12, "R[%d]", i)
			}
		})
	}
}

// TestProcessBlock_IdentityAtEqualRatesLanczos verifies the
// windowed-sinc path at equal rates preserves a sine within the
// filter's passband ripple, after the startup transient.
func TestProcessBlock_IdentityAtEqualRatesLanczos(t *testing.T) {
	r, err := New[float64](48000, WindowedSinc)
	require.NoError(t, err)
	require.NoError(t, r.Reset(48000, 256))

	const blocks = 8
	sineL := testutil.Sine[float64](256*blocks, 1000, 48000, 0.9)
	out := NewStereoBlock[float64](256)

	var tail []float64
	for b := 0; b < blocks; b++ {
		in := StereoBlock[float64]{
			L: sineL[b*256 : (b+1)*256],
			R: sineL[b*256 : (b+1)*256],
		}
		out.Zero()
		r.ProcessBlock(in, out, 256, Identity[float64])

		testutil.AssertNoNaNOrInf(t, out.L)
		if b >= 2 {
			tail = append(tail, out.L...)
		}
	}

	testutil.AssertRelativeError(t, 0.9, testutil.Peak(tail), 0.05)
}

// TestProcessBlock_SilenceStaysSilent feeds 512 silent stereo frames at
// 44.1kHz through a 48kHz rendering rate in Linear mode: the output is
// 512 silent frames with no NaNs.
func TestProcessBlock_SilenceStaysSilent(t *testing.T) {
	r, err := New[float64](48000, Linear)
	require.NoError(t, err)
	require.NoError(t, r.Reset(44100, 512))

	in := NewStereoBlock[float64](512)
	out := NewStereoBlock[float64](512)

	var renderFrames int
	r.ProcessBlock(in, out, 512, func(b StereoBlock[float64]) {
		renderFrames = b.Frames()
	})

	assert.Equal(t, 558, renderFrames, "rendering-rate frame count")
	testutil.AssertAllZero(t, out.L)
	testutil.AssertAllZero(t, out.R)
	testutil.AssertNoNaNOrInf(t, out.L)
}

// TestProcessBlock_SineDownsampleCubic feeds a 1kHz sine burst of 1024
// frames at 96kHz through a 48kHz rendering rate in Cubic mode: the
// output keeps its length, its peak within 1%, and stays free of
// discontinuities.
func TestProcessBlock_SineDownsampleCubic(t *testing.T) {
	r, err := New[float64](48000, Cubic)
	require.NoError(t, err)
	require.NoError(t, r.Reset(96000, 1024))

	sine := testutil.Sine[float64](1024, 1000, 96000, 1.0)
	in := StereoBlock[float64]{L: sine, R: sine}
	out := NewStereoBlock[float64](1024)

	r.ProcessBlock(in, out, 1024, Identity[float64])

	testutil.AssertNoNaNOrInf(t, out.L)
	testutil.AssertRelativeError(t, testutil.Peak(in.L), testutil.Peak(out.L), 0.01)

	// A 1kHz sine at 96kHz moves at most ~0.066 per sample; allow some
	// headroom but no jumps. The final sample interpolates against
	// clamped taps, so exclude the block edge.
	inDelta := testutil.MaxDelta(in.L)
	outDelta := testutil.MaxDelta(out.L[:1022])
	assert.Less(t, outDelta, 1.5*inDelta+1e-9)
}

// TestProcessBlock_TransformRunsAtRenderingRate verifies the transform
// sees the rendering-rate frame count and that its changes reach the
// output (a -6dB gain halves the output peak).
func TestProcessBlock_TransformRunsAtRenderingRate(t *testing.T) {
	for _, mode := range []Mode{Linear, Cubic} {
		t.Run(mode.String(), func(t *testing.T) {
			r, err := New[float64](96000, mode)
			require.NoError(t, err)
			require.NoError(t, r.Reset(48000, 256))

			sine := testutil.Sine[float64](256, 1000, 48000, 0.8)
			in := StereoBlock[float64]{L: sine, R: sine}
			out := NewStereoBlock[float64](256)

			var renderFrames int
			r.ProcessBlock(in, out, 256, func(b StereoBlock[float64]) {
				renderFrames = b.Frames()
				for i := range b.L {
					b.L[i] *= 0.5
					b.R[i] *= 0.5
				}
			})

			// 256 input frames at 48kHz are 512 frames at 96kHz.
			assert.Equal(t, 512, renderFrames)
			testutil.AssertRelativeError(t, 0.4, testutil.Peak(out.L), 0.02)
		})
	}
}

// TestProcessBlock_RoundTripEnergy verifies the up-then-down round trip
// with an identity transform preserves signal energy within tolerance
// once past the startup transient, for all three modes.
func TestProcessBlock_RoundTripEnergy(t *testing.T) {
	tests := []struct {
		mode Mode
		tol  float64
	}{
		{Linear, 0.10},
		{Cubic, 0.05},
		{WindowedSinc, 0.05},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			r, err := New[float64](48000, tt.mode)
			require.NoError(t, err)
			require.NoError(t, r.Reset(44100, 256))

			const blocks = 12
			sine := testutil.Sine[float64](256*blocks, 440, 44100, 1.0)
			out := NewStereoBlock[float64](256)

			var tail []float64
			for b := 0; b < blocks; b++ {
				in := StereoBlock[float64]{
					L: sine[b*256 : (b+1)*256],
					R: sine[b*256 : (b+1)*256],
				}
				out.Zero()
				r.ProcessBlock(in, out, 256, Identity[float64])
				if b >= 2 {
					tail = append(tail, out.L...)
				}
			}

			wantRMS := 1.0 / math.Sqrt2
			testutil.AssertRelativeError(t, wantRMS, testutil.RMS(tail), tt.tol)
		})
	}
}

// TestProcessBlock_ZeroFrames verifies an empty block is a no-op in
// every mode: the call returns immediately and the output is untouched.
// Duplex devices deliver empty callbacks around stream start and stop.
func TestProcessBlock_ZeroFrames(t *testing.T) {
	for _, mode := range []Mode{Linear, Cubic, WindowedSinc} {
		t.Run(mode.String(), func(t *testing.T) {
			r, err := New[float64](48000, mode)
			require.NoError(t, err)
			require.NoError(t, r.Reset(44100, 256))

			out := NewStereoBlock[float64](256)
			out.L[0], out.R[0] = 0.25, -0.25

			called := false
			r.ProcessBlock(NewStereoBlock[float64](256), out, 0, func(StereoBlock[float64]) {
				called = true
			})

			assert.False(t, called, "transform must not run on an empty block")
			assert.Equal(t, 0.25, out.L[0], "empty block must not touch the output")
			assert.Equal(t, -0.25, out.R[0])
		})
	}
}

// TestProcessBlock_FirstBlockTailZeroed verifies the WindowedSinc path
// zeroes the output frames the down-engine cannot yet produce on the
// first block after Reset, instead of leaking whatever the caller's
// buffer held.
func TestProcessBlock_FirstBlockTailZeroed(t *testing.T) {
	r, err := New[float64](48000, WindowedSinc)
	require.NoError(t, err)
	require.NoError(t, r.Reset(44100, 256))

	out := NewStereoBlock[float64](256)
	for i := range out.L {
		out.L[i] = 0.5
		out.R[i] = -0.5
	}

	in := NewStereoBlock[float64](256)
	r.ProcessBlock(in, out, 256, Identity[float64])

	testutil.AssertAllZero(t, out.L)
	testutil.AssertAllZero(t, out.R)
}

// TestSetMode_MidStream switches Linear to WindowedSinc between blocks:
// the switch resets state and the very next block already produces
// finite samples, showing the silent priming worked.
func TestSetMode_MidStream(t *testing.T) {
	r, err := New[float64](48000, Linear)
	require.NoError(t, err)
	require.NoError(t, r.Reset(44100, 256))

	sine := testutil.Sine[float64](512, 1000, 44100, 1.0)
	out := NewStereoBlock[float64](256)

	in := StereoBlock[float64]{L: sine[:256], R: sine[:256]}
	r.ProcessBlock(in, out, 256, Identity[float64])
	testutil.AssertNoNaNOrInf(t, out.L)

	require.NoError(t, r.SetMode(WindowedSinc))
	assert.Equal(t, WindowedSinc, r.Mode())
	assert.Equal(t, 44100.0, r.InputRate(), "SetMode keeps the configured input rate")

	in = StereoBlock[float64]{L: sine[256:], R: sine[256:]}
	out.Zero()
	r.ProcessBlock(in, out, 256, Identity[float64])
	testutil.AssertNoNaNOrInf(t, out.L)
	testutil.AssertNoNaNOrInf(t, out.R)
}

// TestSetMode_BeforeReset verifies SetMode before the first Reset only
// records the mode.
func TestSetMode_BeforeReset(t *testing.T) {
	r, err := New[float64](48000, Linear)
	require.NoError(t, err)

	require.NoError(t, r.SetMode(Cubic))
	assert.Equal(t, Cubic, r.Mode())
	assert.Zero(t, r.InputRate())

	require.ErrorIs(t, r.SetMode(numModes), ErrInvalidMode)
}

// TestLatency_BoundedPerMode verifies the reported latency is constant
// per mode and ordered by algorithm cost.
func TestLatency_BoundedPerMode(t *testing.T) {
	r, err := New[float64](48000, Linear)
	require.NoError(t, err)
	require.NoError(t, r.Reset(44100, 256))

	linear := r.Latency()
	require.NoError(t, r.SetMode(Cubic))
	cubic := r.Latency()
	require.NoError(t, r.SetMode(WindowedSinc))
	sinc := r.Latency()

	assert.Less(t, linear, sinc)
	assert.LessOrEqual(t, linear, cubic)
	assert.Less(t, cubic, sinc)
}

// TestProcessBlock_Float32 verifies the float32 instantiation end to end.
func TestProcessBlock_Float32(t *testing.T) {
	r, err := New[float32](48000, WindowedSinc)
	require.NoError(t, err)
	require.NoError(t, r.Reset(44100, 256))

	sine := testutil.Sine[float32](256*4, 1000, 44100, 0.9)
	out := NewStereoBlock[float32](256)

	for b := 0; b < 4; b++ {
		in := StereoBlock[float32]{
			L: sine[b*256 : (b+1)*256],
			R: sine[b*256 : (b+1)*256],
		}
		out.Zero()
		r.ProcessBlock(in, out, 256, Identity[float32])
		testutil.AssertNoNaNOrInf(t, out.L)
		testutil.AssertNoNaNOrInf(t, out.R)
	}
}

// BenchmarkProcessBlock measures per-block cost in each mode.
func BenchmarkProcessBlock(b *testing.B) {
	for _, mode := range []Mode{Linear, Cubic, WindowedSinc} {
		b.Run(mode.String(), func(b *testing.B) {
			r, err := New[float64](48000, mode)
			if err != nil {
				b.Fatal(err)
			}
			if err := r.Reset(44100, 256); err != nil {
				b.Fatal(err)
			}

			sine := testutil.Sine[float64](256, 1000, 44100, 0.9)
			in := StereoBlock[float64]{L: sine, R: sine}
			out := NewStereoBlock[float64](256)

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				r.ProcessBlock(in, out, 256, Identity[float64])
			}
		})
	}
}
