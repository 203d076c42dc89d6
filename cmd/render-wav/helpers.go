package main

import (
	"fmt"
	"log"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Sample format constants.
const (
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	monoChannels   = 1
	stereoChannels = 2

	wavPCMFormat = 1
)

// wavInputInfo holds validated input file information.
type wavInputInfo struct {
	file     *os.File
	decoder  *wav.Decoder
	rate     int
	channels int
	bitDepth int
	format   *audio.Format
}

// openWAVInput opens and validates a WAV file, returning format information.
func openWAVInput(path string, verbose bool) (*wavInputInfo, error) {
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		_ = inputFile.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	channels := format.NumChannels
	if channels != monoChannels && channels != stereoChannels {
		_ = inputFile.Close()
		return nil, fmt.Errorf("unsupported channel count %d (want mono or stereo)", channels)
	}

	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit",
			format.SampleRate, channels, decoder.BitDepth)
	}

	return &wavInputInfo{
		file:     inputFile,
		decoder:  decoder,
		rate:     format.SampleRate,
		channels: channels,
		bitDepth: int(decoder.BitDepth),
		format:   format,
	}, nil
}

// Close closes the input file.
func (w *wavInputInfo) Close() error {
	return w.file.Close()
}

// readPlanar decodes the whole file into planar float64 stereo in
// [-1, 1]. Mono input is duplicated onto both channels.
func (w *wavInputInfo) readPlanar() (left, right []float64, err error) {
	buf, err := w.decoder.FullPCMBuffer()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode PCM data: %w", err)
	}

	scale := sampleScale(w.bitDepth)
	frames := len(buf.Data) / w.channels
	left = make([]float64, frames)
	right = make([]float64, frames)

	if w.channels == monoChannels {
		for i := 0; i < frames; i++ {
			v := float64(buf.Data[i]) / scale
			left[i] = v
			right[i] = v
		}
	} else {
		for i := 0; i < frames; i++ {
			left[i] = float64(buf.Data[2*i]) / scale
			right[i] = float64(buf.Data[2*i+1]) / scale
		}
	}
	return left, right, nil
}

// writeWAVOutput encodes planar float64 stereo back to a WAV file with
// the input's rate, bit depth and channel count. Mono input writes the
// left channel only.
func writeWAVOutput(path string, in *wavInputInfo, left, right []float64) error {
	outFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = outFile.Close() }()

	enc := wav.NewEncoder(outFile, in.rate, in.bitDepth, in.channels, wavPCMFormat)

	scale := sampleScale(in.bitDepth)
	data := make([]int, len(left)*in.channels)
	if in.channels == monoChannels {
		for i, v := range left {
			data[i] = clampSample(v*scale, scale)
		}
	} else {
		for i := range left {
			data[2*i] = clampSample(left[i]*scale, scale)
			data[2*i+1] = clampSample(right[i]*scale, scale)
		}
	}

	buf := &audio.IntBuffer{
		Format:         &audio.Format{SampleRate: in.rate, NumChannels: in.channels},
		Data:           data,
		SourceBitDepth: in.bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to write PCM data: %w", err)
	}
	return enc.Close()
}

// sampleScale returns the full-scale integer value for a bit depth.
func sampleScale(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}

// clampSample rounds and clips a scaled sample to the integer range.
func clampSample(v, scale float64) int {
	r := math.Round(v)
	if r > scale {
		r = scale
	}
	if r < -scale-1 {
		r = -scale - 1
	}
	return int(r)
}

// dbToLinear converts decibels to a linear gain factor.
func dbToLinear(db float64) float64 {
	return math.Pow(10, db/dbPerDecade)
}
