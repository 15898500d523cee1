// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// SampleFormat is the on-disk representation of a single sample.
type SampleFormat uint8

const (
	// U8 is unsigned 8-bit PCM, silence at 0x80.
	U8 SampleFormat = iota + 1
	// S16 is signed 16-bit PCM.
	S16
)

// SampleFormatFromBits maps a container's bits-per-sample field to a SampleFormat.
func SampleFormatFromBits(bits int) (SampleFormat, error) {
	switch bits {
	case 8:
		return U8, nil
	case 16:
		return S16, nil
	default:
		return 0, fmt.Errorf("%d bits per sample: %w", bits, ErrUnsupportedEncoding)
	}
}

func (f SampleFormat) Bits() int { return f.BytesPerSample() * 8 }

func (f SampleFormat) BytesPerSample() int {
	switch f {
	case U8:
		return 1
	case S16:
		return 2
	default:
		return 0
	}
}

func (f SampleFormat) String() string {
	switch f {
	case U8:
		return "U8"
	case S16:
		return "S16"
	default:
		return fmt.Sprintf("SampleFormat(%d)", uint8(f))
	}
}

// Format describes the PCM data held by a container, or the fixed format
// the mixer consumes.
type Format struct {
	SampleRate   uint32
	Channels     uint8
	SampleFormat SampleFormat
	// BigEndian is set for 16-bit samples stored most significant byte first
	// (AIFF). It carries no meaning for U8.
	BigEndian bool
}

// FrameSize is the number of bytes holding one sample for every channel.
func (f Format) FrameSize() int {
	return int(f.Channels) * f.SampleFormat.BytesPerSample()
}

// Validate reports whether the format can be played.
func (f Format) Validate() error {
	if f.SampleRate == 0 {
		return fmt.Errorf("zero sample rate: %w", ErrUnsupportedEncoding)
	}
	if f.Channels != 1 && f.Channels != 2 {
		return fmt.Errorf("%d channels: %w", f.Channels, ErrUnsupportedEncoding)
	}
	if f.SampleFormat.BytesPerSample() == 0 {
		return fmt.Errorf("sample format %s: %w", f.SampleFormat, ErrUnsupportedEncoding)
	}

	return nil
}

func (f Format) normalized() Format {
	if f.SampleFormat != S16 {
		f.BigEndian = false
	}
	return f
}

// Equal compares two formats, ignoring byte order for 8-bit data.
func (f Format) Equal(other Format) bool {
	return f.normalized() == other.normalized()
}

func (f Format) String() string {
	order := ""
	if f.normalized().BigEndian {
		order = "BE"
	}
	return fmt.Sprintf("%dHz %dch %s%s", f.SampleRate, f.Channels, f.SampleFormat, order)
}

// Silence fills p with the zero level of the format: 0x80 for U8, 0 for S16.
func (f Format) Silence(p []byte) {
	var level byte
	if f.SampleFormat == U8 {
		level = 0x80
	}
	for i := range p {
		p[i] = level
	}
}

// ByteRange is the half open interval [Start, Stop) of a file holding raw PCM.
type ByteRange struct {
	Start int64
	Stop  int64
}

func (r ByteRange) Len() int64 { return r.Stop - r.Start }

// Contains reports whether pos lies inside the range.
func (r ByteRange) Contains(pos int64) bool {
	return pos >= r.Start && pos < r.Stop
}
