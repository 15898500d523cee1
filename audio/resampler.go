// SPDX-License-Identifier: EPL-2.0

package audio

import "github.com/ik5/wavstream/utils"

// Resampler converts blocks of interleaved float32 frames between sample
// rates using cubic interpolation. Works on interleaved samples; preserves
// channel count. Includes basic anti-aliasing filtering when downsampling.
//
// Consecutive Process calls form one stream: the output grid position and
// the last source frames of each block carry over, so block boundaries
// neither drift nor click. Reset starts a new stream.
type Resampler struct {
	channels int
	srcRate  int
	dstRate  int

	// Frames consumed and produced since the last Reset
	consumed uint64
	produced uint64

	// Trailing source frames of earlier blocks, oldest first
	history []float32
	histLen int

	// Simple low-pass filter state for anti-aliasing (when downsampling)
	filterState []float32
	filtered    []float32
	useFilter   bool
	primed      bool
	filterAlpha float32
}

// historyFrames covers the frames left of a block start that the cubic
// kernel reaches, plus slack for output held back by a short destination.
const historyFrames = 4

func NewResampler(channels, srcRate, dstRate int) *Resampler {
	useFilter := srcRate > dstRate
	var filterAlpha float32
	if useFilter {
		// One-pole low-pass, a simplified stand-in for a proper FIR filter
		filterAlpha = 0.5
	}

	return &Resampler{
		channels:    channels,
		srcRate:     srcRate,
		dstRate:     dstRate,
		useFilter:   useFilter,
		filterAlpha: filterAlpha,
		filterState: make([]float32, channels),
		history:     make([]float32, historyFrames*channels),
	}
}

func (r *Resampler) Channels() int { return r.channels }

// OutFrames is the number of frames a fresh resampler produces for in
// source frames.
func (r *Resampler) OutFrames(in int) int {
	return int(uint64(in) * uint64(r.dstRate) / uint64(r.srcRate))
}

// NextFrames is the number of frames the next Process call produces for in
// source frames, given room for all of them. It differs from OutFrames by
// the fractional frame carried from earlier blocks.
func (r *Resampler) NextFrames(in int) int {
	total := (r.consumed + uint64(in)) * uint64(r.dstRate) / uint64(r.srcRate)
	return int(total - r.produced)
}

// Reset drops the carried state so the next block is treated as a stream start.
func (r *Resampler) Reset() {
	r.primed = false
	clear(r.filterState)
	r.consumed = 0
	r.produced = 0
	r.histLen = 0
}

// Process resamples the frames of src into dst and returns the number of
// float32 values written. dst is filled up to the smaller of its own frame
// capacity and NextFrames of the source frame count; frames that do not fit
// are produced by the next call.
func (r *Resampler) Process(src, dst []float32) int {
	ch := r.channels
	frames := len(src) / ch
	if frames == 0 {
		return 0
	}

	if r.useFilter {
		src = r.lowPass(src[:frames*ch])
	}

	out := min(len(dst)/ch, r.NextFrames(frames))
	last := int64(frames - 1)
	at := func(i int64, c int) float32 {
		if i >= 0 {
			return src[min(i, last)*int64(ch)+int64(c)]
		}
		h := int64(r.histLen) + i
		if r.histLen == 0 {
			return src[c]
		}
		return r.history[max(h, 0)*int64(ch)+int64(c)]
	}

	for j := range out {
		// Integer position keeps same-rate conversion exact
		num := (r.produced + uint64(j)) * uint64(r.srcRate)
		i := int64(num/uint64(r.dstRate)) - int64(r.consumed)
		alpha := float32(num%uint64(r.dstRate)) / float32(r.dstRate)

		for c := range ch {
			dst[j*ch+c] = utils.CubicInterpolate(at(i-1, c), at(i, c), at(i+1, c), at(i+2, c), alpha)
		}
	}

	r.produced += uint64(out)
	r.consumed += uint64(frames)
	r.keep(src[:frames*ch], frames)

	return out * ch
}

// keep appends the tail of a processed block to the history.
func (r *Resampler) keep(src []float32, frames int) {
	ch := r.channels
	n := min(frames, historyFrames)
	old := min(r.histLen, historyFrames-n)

	copy(r.history, r.history[(r.histLen-old)*ch:r.histLen*ch])
	copy(r.history[old*ch:], src[(frames-n)*ch:])
	r.histLen = old + n
}

func (r *Resampler) lowPass(src []float32) []float32 {
	if cap(r.filtered) < len(src) {
		r.filtered = make([]float32, len(src))
	}
	r.filtered = r.filtered[:len(src)]

	// Initialize filter state with first frame to avoid warm-up transients
	if !r.primed {
		copy(r.filterState, src[:r.channels])
		r.primed = true
	}

	for f := 0; f < len(src); f += r.channels {
		for c := range r.channels {
			// y[n] = alpha * x[n] + (1-alpha) * y[n-1]
			y := r.filterAlpha*src[f+c] + (1-r.filterAlpha)*r.filterState[c]
			r.filterState[c] = y
			r.filtered[f+c] = y
		}
	}

	return r.filtered
}
