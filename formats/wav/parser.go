// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/riff"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/wavstream/audio"
)

const (
	pcmCode         = 1
	chunkHeaderSize = 8
)

var factID = [4]byte{'f', 'a', 'c', 't'}

// Parser locates the PCM samples of a RIFF/WAVE file.
type Parser struct{}

// Parse walks the chunks of rs. The fmt chunk may only be preceded by fact
// and LIST chunks; any chunk may sit between fmt and data.
func (Parser) Parse(rs io.ReadSeeker) (audio.Format, audio.ByteRange, error) {
	size, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return audio.Format{}, audio.ByteRange{}, fmt.Errorf("sizing WAV: %w", err)
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return audio.Format{}, audio.ByteRange{}, fmt.Errorf("rewinding WAV: %w", err)
	}

	p := riff.New(rs)
	if err := p.ParseHeaders(); err != nil {
		if p.ID == riff.RiffID {
			return audio.Format{}, audio.ByteRange{}, fmt.Errorf("%w: %w", ErrNotWavFile, err)
		}
		return audio.Format{}, audio.ByteRange{}, ErrNotWavFile
	}
	if p.Format != riff.WavFormatID {
		return audio.Format{}, audio.ByteRange{}, ErrNotWavFile
	}

	format, err := readFormat(p)
	if err != nil {
		return audio.Format{}, audio.ByteRange{}, err
	}

	rng, err := findData(p, rs, size)
	if err != nil {
		return audio.Format{}, audio.ByteRange{}, err
	}

	return format, rng, nil
}

func readFormat(p *riff.Parser) (audio.Format, error) {
	var ch *riff.Chunk
	for {
		var err error
		ch, err = p.NextChunk()
		if err != nil {
			return audio.Format{}, eofAs(err, ErrMissingFormat)
		}
		if ch.ID != factID && ch.ID != gowav.CIDList {
			break
		}
		ch.Drain()
	}

	if ch.ID != riff.FmtID {
		return audio.Format{}, fmt.Errorf("%w: found %q", ErrComplexWav, ch.ID[:])
	}
	if err := ch.DecodeWavHeader(p); err != nil {
		return audio.Format{}, eofAs(err, ErrShortFmt)
	}

	if p.WavAudioFormat != pcmCode {
		return audio.Format{}, fmt.Errorf("%w: encoding %#x", ErrNotPCM, p.WavAudioFormat)
	}
	sf, err := audio.SampleFormatFromBits(int(p.BitsPerSample))
	if err != nil {
		return audio.Format{}, err
	}
	if p.NumChannels > 0xff {
		return audio.Format{}, fmt.Errorf("%d channels: %w", p.NumChannels, audio.ErrUnsupportedEncoding)
	}

	format := audio.Format{
		SampleRate:   p.SampleRate,
		Channels:     uint8(p.NumChannels),
		SampleFormat: sf,
	}
	if err := format.Validate(); err != nil {
		return audio.Format{}, err
	}

	return format, nil
}

// findData skips to the data chunk. Start is the offset right after its
// header and Stop the end of its declared body, bounded by size. The riff
// parser rounds odd sizes up and accepts a cut off size field, so the
// header is checked and the length read again from the file.
func findData(p *riff.Parser, rs io.ReadSeeker, size int64) (audio.ByteRange, error) {
	for {
		prev, err := rs.Seek(0, io.SeekCurrent)
		if err != nil {
			return audio.ByteRange{}, fmt.Errorf("locating chunk: %w", err)
		}

		ch, err := p.NextChunk()
		if err != nil {
			return audio.ByteRange{}, eofAs(err, ErrMissingData)
		}

		start, err := rs.Seek(0, io.SeekCurrent)
		if err != nil {
			return audio.ByteRange{}, fmt.Errorf("locating chunk: %w", err)
		}
		if start-prev != chunkHeaderSize {
			return audio.ByteRange{}, fmt.Errorf("%w: chunk header cut at %d", ErrMissingData, start)
		}

		if ch.ID != riff.DataFormatID {
			ch.Drain()
			continue
		}

		if _, err := rs.Seek(start-4, io.SeekStart); err != nil {
			return audio.ByteRange{}, fmt.Errorf("locating data chunk: %w", err)
		}
		var length uint32
		if err := binary.Read(rs, binary.LittleEndian, &length); err != nil {
			return audio.ByteRange{}, eofAs(err, ErrMissingData)
		}

		return audio.ByteRange{Start: start, Stop: min(start+int64(length), size)}, nil
	}
}

func eofAs(err, sentinel error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return sentinel
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
