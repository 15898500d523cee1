// SPDX-License-Identifier: EPL-2.0

package audio

import "math"

// newFrames generates interleaved samples for testing.
// waveform is a function that generates sample values given frame index and channel.
func newFrames(channels, frames int, waveform func(frame int, channel int) float32) []float32 {
	out := make([]float32, frames*channels)
	for f := range frames {
		for c := range channels {
			out[f*channels+c] = waveform(f, c)
		}
	}
	return out
}

// newSineFrames generates a sine wave at frequency for the given rate.
func newSineFrames(sampleRate, channels, frames int, frequency float64) []float32 {
	return newFrames(channels, frames, func(frame int, channel int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// newConstantFrames generates frames holding a constant value.
func newConstantFrames(channels, frames int, value float32) []float32 {
	return newFrames(channels, frames, func(int, int) float32 { return value })
}

// s16le packs samples into little-endian 16-bit PCM.
func s16le(samples ...int16) []byte {
	out := make([]byte, 0, len(samples)*2)
	for _, s := range samples {
		out = append(out, byte(uint16(s)), byte(uint16(s)>>8))
	}
	return out
}

// s16be packs samples into big-endian 16-bit PCM.
func s16be(samples ...int16) []byte {
	out := make([]byte, 0, len(samples)*2)
	for _, s := range samples {
		out = append(out, byte(uint16(s)>>8), byte(uint16(s)))
	}
	return out
}
