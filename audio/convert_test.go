// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"bytes"
	"math"
	"testing"
)

var mixerFormat = Format{SampleRate: 44100, Channels: 2, SampleFormat: S16}

func TestNewPlan_Ratios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		src       Format
		needed    bool
		ratio     float64
		mult      int
		resampled bool
	}{
		{"identical", mixerFormat, false, 1, 1, false},
		{"big endian only", Format{44100, 2, S16, true}, true, 1, 1, false},
		{"mono", Format{44100, 1, S16, false}, true, 2, 2, false},
		{"u8 mono half rate", Format{22050, 1, U8, false}, true, 8, 8, true},
		{"double rate", Format{88200, 2, S16, false}, true, 0.5, 1, true},
		{"48k stereo", Format{48000, 2, S16, false}, true, 44100.0 / 48000, 1, true},
		{"11025 stereo", Format{11025, 2, S16, false}, true, 4, 4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := NewPlan(tt.src, mixerFormat)

			if p.Needed() != tt.needed {
				t.Errorf("Needed() = %v, want %v", p.Needed(), tt.needed)
			}
			if math.Abs(p.LenRatio()-tt.ratio) > 1e-12 {
				t.Errorf("LenRatio() = %v, want %v", p.LenRatio(), tt.ratio)
			}
			if p.LenMult() != tt.mult {
				t.Errorf("LenMult() = %d, want %d", p.LenMult(), tt.mult)
			}
			if (p.resampler != nil) != tt.resampled {
				t.Errorf("resampler present = %v, want %v", p.resampler != nil, tt.resampled)
			}
		})
	}
}

func TestPlan_PassThrough(t *testing.T) {
	t.Parallel()

	p := NewPlan(mixerFormat, mixerFormat)
	buf := s16le(1, -1, 300, -300)
	orig := bytes.Clone(buf)

	if n := p.Convert(buf, len(buf)); n != len(buf) {
		t.Errorf("Convert() = %d, want %d", n, len(buf))
	}
	if !bytes.Equal(buf, orig) {
		t.Error("pass through modified the buffer")
	}
}

func TestPlan_ByteSwap(t *testing.T) {
	t.Parallel()

	samples := []int16{0, 1, -1, 0x1234, math.MaxInt16, math.MinInt16}
	src := Format{SampleRate: 44100, Channels: 2, SampleFormat: S16, BigEndian: true}
	p := NewPlan(src, mixerFormat)

	buf := s16be(samples...)
	n := p.Convert(buf, len(buf))

	if n != len(buf) {
		t.Fatalf("Convert() = %d, want %d", n, len(buf))
	}
	if want := s16le(samples...); !bytes.Equal(buf[:n], want) {
		t.Errorf("Convert() = % x, want % x", buf[:n], want)
	}
}

func TestPlan_U8MonoToS16Stereo(t *testing.T) {
	t.Parallel()

	src := Format{SampleRate: 44100, Channels: 1, SampleFormat: U8}
	p := NewPlan(src, mixerFormat)

	in := []byte{0x80, 0x00, 0xff, 0x81}
	buf := make([]byte, len(in)*p.LenMult())
	copy(buf, in)

	n := p.Convert(buf, len(in))

	want := s16le(0, 0, math.MinInt16, math.MinInt16, 127*256, 127*256, 256, 256)
	if n != len(want) {
		t.Fatalf("Convert() = %d, want %d", n, len(want))
	}
	if !bytes.Equal(buf[:n], want) {
		t.Errorf("Convert() = % x, want % x", buf[:n], want)
	}
}

func TestPlan_StereoToMonoU8(t *testing.T) {
	t.Parallel()

	src := Format{SampleRate: 8000, Channels: 2, SampleFormat: S16}
	dst := Format{SampleRate: 8000, Channels: 1, SampleFormat: U8}
	p := NewPlan(src, dst)

	buf := s16le(0, 0, 256, 256, -32768, -32768)
	n := p.Convert(buf, len(buf))

	want := []byte{0x80, 0x81, 0x00}
	if !bytes.Equal(buf[:n], want) {
		t.Errorf("Convert() = % x, want % x", buf[:n], want)
	}
}

func TestPlan_Upsample(t *testing.T) {
	t.Parallel()

	src := Format{SampleRate: 22050, Channels: 2, SampleFormat: S16}
	p := NewPlan(src, mixerFormat)

	const frames = 512
	in := make([]byte, frames*src.FrameSize())
	buf := make([]byte, len(in)*p.LenMult())
	copy(buf, in)

	n := p.Convert(buf, len(in))
	if n != frames*2*mixerFormat.FrameSize() {
		t.Errorf("Convert() = %d, want %d", n, frames*2*mixerFormat.FrameSize())
	}
	if n > len(buf) {
		t.Errorf("Convert() = %d exceeds buffer %d", n, len(buf))
	}
}

func TestPlan_OutputCappedByBuffer(t *testing.T) {
	t.Parallel()

	src := Format{SampleRate: 11025, Channels: 1, SampleFormat: U8}
	p := NewPlan(src, mixerFormat)

	// Too small to hold the 16x expansion
	buf := bytes.Repeat([]byte{0x80}, 64)
	n := p.Convert(buf, 16)

	if n > len(buf) {
		t.Errorf("Convert() = %d exceeds buffer %d", n, len(buf))
	}
	if n%mixerFormat.FrameSize() != 0 {
		t.Errorf("Convert() = %d is not frame aligned", n)
	}
}

func TestPlan_ConvertLimitHoldsBackOutput(t *testing.T) {
	t.Parallel()

	src := Format{SampleRate: 22050, Channels: 1, SampleFormat: U8}
	p := NewPlan(src, mixerFormat)

	buf := bytes.Repeat([]byte{0x80}, 1600)
	if n := p.ConvertLimit(buf, 100, 400); n != 400 {
		t.Fatalf("ConvertLimit() = %d, want 400", n)
	}

	// 200 frames for the new block plus the 100 held back
	buf = bytes.Repeat([]byte{0x80}, 1600)
	if n := p.ConvertLimit(buf, 100, len(buf)); n != 1200 {
		t.Errorf("ConvertLimit() = %d, want 1200", n)
	}
}

func TestPlan_ConvertLimitPassThrough(t *testing.T) {
	t.Parallel()

	p := NewPlan(mixerFormat, mixerFormat)
	if n := p.ConvertLimit(make([]byte, 64), 64, 10); n != 10 {
		t.Errorf("ConvertLimit() = %d, want 10", n)
	}
}

func TestPlan_PartialFrameIgnored(t *testing.T) {
	t.Parallel()

	src := Format{SampleRate: 44100, Channels: 2, SampleFormat: S16, BigEndian: true}
	p := NewPlan(src, mixerFormat)

	buf := make([]byte, 16)
	if n := p.Convert(buf, 3); n != 0 {
		t.Errorf("Convert() of a partial frame = %d, want 0", n)
	}
}

func TestPlan_Reset(t *testing.T) {
	t.Parallel()

	src := Format{SampleRate: 88200, Channels: 2, SampleFormat: S16}
	p := NewPlan(src, mixerFormat)

	a := bytes.Repeat(s16le(1000, 1000), 64)
	p.Convert(bytes.Clone(a), len(a))
	p.Reset()

	first := bytes.Clone(a)
	n1 := p.Convert(first, len(first))

	fresh := NewPlan(src, mixerFormat)
	second := bytes.Clone(a)
	n2 := fresh.Convert(second, len(second))

	if n1 != n2 || !bytes.Equal(first[:n1], second[:n2]) {
		t.Error("Convert after Reset differs from a fresh plan")
	}
}

func BenchmarkPlan_Convert(b *testing.B) {
	src := Format{SampleRate: 22050, Channels: 1, SampleFormat: U8}
	p := NewPlan(src, mixerFormat)
	buf := make([]byte, 4096*p.LenMult())

	b.ReportAllocs()

	for b.Loop() {
		p.Convert(buf, 4096)
	}
}
