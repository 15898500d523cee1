// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"math"

	"github.com/ik5/wavstream/utils"
)

// Plan converts blocks of raw PCM bytes from a source Format to a fixed
// target Format. It is built once per stream and is not safe for concurrent
// use; callers serialize access to it together with the scratch buffer
// they convert in.
type Plan struct {
	src    Format
	dst    Format
	needed bool
	ratio  float64
	mult   int

	decoded   []float32
	mixed     []float32
	resampled []float32
	resampler *Resampler
}

// NewPlan builds the conversion from src to dst. Both formats are expected
// to have passed Validate.
func NewPlan(src, dst Format) *Plan {
	p := &Plan{
		src:    src.normalized(),
		dst:    dst.normalized(),
		needed: !src.Equal(dst),
		ratio:  1,
		mult:   1,
	}
	if !p.needed {
		return p
	}

	p.ratio = float64(dst.SampleRate) / float64(src.SampleRate) *
		float64(dst.FrameSize()) / float64(src.FrameSize())
	p.mult = max(1, int(math.Ceil(p.ratio)))
	if src.SampleRate != dst.SampleRate {
		p.resampler = NewResampler(int(dst.Channels), int(src.SampleRate), int(dst.SampleRate))
	}

	return p
}

// Needed reports whether source and target differ at all.
func (p *Plan) Needed() bool { return p.needed }

// LenRatio is the number of output bytes produced per input byte.
func (p *Plan) LenRatio() float64 { return p.ratio }

// LenMult is the factor by which a scratch buffer must exceed its input
// length to hold the converted output.
func (p *Plan) LenMult() int { return p.mult }

func (p *Plan) Source() Format { return p.src }
func (p *Plan) Target() Format { return p.dst }

// Reset clears the state carried between blocks of one stream.
func (p *Plan) Reset() {
	if p.resampler != nil {
		p.resampler.Reset()
	}
}

// Convert converts the whole source frames held in buf[:n] and writes the
// result to the start of buf, returning the converted length. Output that
// does not fit in len(buf) is held back and produced by the next call.
func (p *Plan) Convert(buf []byte, n int) int {
	return p.ConvertLimit(buf, n, len(buf))
}

// ConvertLimit is Convert with the output capped at limit bytes.
func (p *Plan) ConvertLimit(buf []byte, n, limit int) int {
	limit = min(limit, len(buf))
	if !p.needed {
		return min(n, limit)
	}

	srcCh, dstCh := int(p.src.Channels), int(p.dst.Channels)
	frames := min(n, len(buf)) / p.src.FrameSize()
	if frames == 0 {
		return 0
	}

	p.decoded = grow(p.decoded, frames*srcCh)
	decodeSamples(p.src, buf, p.decoded)

	samples := p.decoded
	if srcCh != dstCh {
		p.mixed = grow(p.mixed, frames*dstCh)
		mixChannels(p.mixed, dstCh, p.decoded, srcCh)
		samples = p.mixed
	}

	outFrames := min(frames, limit/p.dst.FrameSize())
	if p.resampler != nil {
		outFrames = min(p.resampler.NextFrames(frames), limit/p.dst.FrameSize())
		p.resampled = grow(p.resampled, outFrames*dstCh)
		outFrames = p.resampler.Process(samples, p.resampled) / dstCh
		samples = p.resampled
	}

	encodeSamples(p.dst, samples[:outFrames*dstCh], buf)

	return outFrames * p.dst.FrameSize()
}

func grow(s []float32, n int) []float32 {
	if cap(s) < n {
		return make([]float32, n)
	}
	return s[:n]
}

func (f Format) byteOrder() binary.ByteOrder {
	if f.BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// decodeSamples fills dst with len(dst) samples read from b.
func decodeSamples(f Format, b []byte, dst []float32) {
	switch f.SampleFormat {
	case U8:
		for i := range dst {
			dst[i] = utils.Uint8ToFloat32(b[i])
		}
	case S16:
		order := f.byteOrder()
		for i := range dst {
			dst[i] = utils.Int16ToFloat32(int16(order.Uint16(b[2*i:])))
		}
	}
}

// encodeSamples writes every sample of src into b.
func encodeSamples(f Format, src []float32, b []byte) {
	switch f.SampleFormat {
	case U8:
		for i, x := range src {
			b[i] = utils.Float32ToUint8(x)
		}
	case S16:
		order := f.byteOrder()
		for i, x := range src {
			order.PutUint16(b[2*i:], uint16(utils.Float32ToInt16(x)))
		}
	}
}
