// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"bytes"
	"errors"
	"testing"
)

func TestSampleFormatFromBits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bits    int
		want    SampleFormat
		wantErr bool
	}{
		{8, U8, false},
		{16, S16, false},
		{24, 0, true},
		{32, 0, true},
		{0, 0, true},
	}

	for _, tt := range tests {
		got, err := SampleFormatFromBits(tt.bits)
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedEncoding) {
				t.Errorf("SampleFormatFromBits(%d) error = %v, want ErrUnsupportedEncoding", tt.bits, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("SampleFormatFromBits(%d) = %v, %v, want %v", tt.bits, got, err, tt.want)
		}
		if got.Bits() != tt.bits {
			t.Errorf("%v.Bits() = %d, want %d", got, got.Bits(), tt.bits)
		}
	}
}

func TestFormat_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  Format
		wantErr bool
	}{
		{"stereo s16", Format{44100, 2, S16, false}, false},
		{"mono u8", Format{8000, 1, U8, false}, false},
		{"big endian", Format{22050, 2, S16, true}, false},
		{"zero rate", Format{0, 2, S16, false}, true},
		{"no channels", Format{44100, 0, S16, false}, true},
		{"six channels", Format{44100, 6, S16, false}, true},
		{"unknown sample format", Format{44100, 2, 0, false}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.format.Validate()
			if tt.wantErr && !errors.Is(err, ErrUnsupportedEncoding) {
				t.Errorf("Validate() error = %v, want ErrUnsupportedEncoding", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestFormat_FrameSize(t *testing.T) {
	t.Parallel()

	if got := (Format{44100, 2, S16, false}).FrameSize(); got != 4 {
		t.Errorf("stereo S16 FrameSize() = %d, want 4", got)
	}
	if got := (Format{44100, 1, U8, false}).FrameSize(); got != 1 {
		t.Errorf("mono U8 FrameSize() = %d, want 1", got)
	}
}

func TestFormat_EqualIgnoresByteOrderForU8(t *testing.T) {
	t.Parallel()

	a := Format{8000, 1, U8, false}
	b := Format{8000, 1, U8, true}
	if !a.Equal(b) {
		t.Error("U8 formats differing only in byte order should be equal")
	}

	c := Format{8000, 1, S16, false}
	d := Format{8000, 1, S16, true}
	if c.Equal(d) {
		t.Error("S16 formats differing in byte order should not be equal")
	}
}

func TestFormat_String(t *testing.T) {
	t.Parallel()

	if got := (Format{44100, 2, S16, true}).String(); got != "44100Hz 2ch S16BE" {
		t.Errorf("String() = %q", got)
	}
	if got := (Format{8000, 1, U8, true}).String(); got != "8000Hz 1ch U8" {
		t.Errorf("String() = %q", got)
	}
}

func TestFormat_Silence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		f    Format
		want byte
	}{
		{"u8", Format{SampleRate: 22050, Channels: 1, SampleFormat: U8}, 0x80},
		{"s16", Format{SampleRate: 44100, Channels: 2, SampleFormat: S16}, 0},
		{"s16 big endian", Format{SampleRate: 44100, Channels: 2, SampleFormat: S16, BigEndian: true}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := bytes.Repeat([]byte{0x5a}, 7)
			tt.f.Silence(p)
			if want := bytes.Repeat([]byte{tt.want}, 7); !bytes.Equal(p, want) {
				t.Errorf("Silence() = %v, want %v", p, want)
			}
		})
	}
}

func TestByteRange(t *testing.T) {
	t.Parallel()

	r := ByteRange{Start: 44, Stop: 144}
	if r.Len() != 100 {
		t.Errorf("Len() = %d, want 100", r.Len())
	}
	if !r.Contains(44) || !r.Contains(143) {
		t.Error("Contains should include Start and Stop-1")
	}
	if r.Contains(144) || r.Contains(43) {
		t.Error("Contains should exclude Stop and positions before Start")
	}
}
