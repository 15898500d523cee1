// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/ik5/wavstream/audio"
)

var (
	formID = [4]byte{'F', 'O', 'R', 'M'}
	aiffID = [4]byte{'A', 'I', 'F', 'F'}
	ssndID = [4]byte{'S', 'S', 'N', 'D'}
	commID = [4]byte{'C', 'O', 'M', 'M'}
)

type chunkHeader struct {
	ID   [4]byte
	Size uint32
}

type ssndHeader struct {
	Offset    uint32
	BlockSize uint32
}

type commChunk struct {
	Channels   uint16
	Frames     uint32
	SampleSize uint16
	SampleRate [10]byte
}

// Parser locates the PCM samples of a FORM/AIFF file laid out with the SSND
// chunk first and the COMM chunk right after it.
type Parser struct{}

func (Parser) Parse(rs io.ReadSeeker) (audio.Format, audio.ByteRange, error) {
	size, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return audio.Format{}, audio.ByteRange{}, fmt.Errorf("sizing AIFF: %w", err)
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return audio.Format{}, audio.ByteRange{}, fmt.Errorf("rewinding AIFF: %w", err)
	}

	var form struct {
		ID   [4]byte
		Size uint32
		Type [4]byte
	}
	if err := binary.Read(rs, binary.BigEndian, &form); err != nil || form.ID != formID || form.Type != aiffID {
		return audio.Format{}, audio.ByteRange{}, ErrNotAiffFile
	}

	rng, next, err := readSSND(rs, size)
	if err != nil {
		return audio.Format{}, audio.ByteRange{}, err
	}

	if _, err := rs.Seek(next, io.SeekStart); err != nil {
		return audio.Format{}, audio.ByteRange{}, fmt.Errorf("seeking to COMM: %w", err)
	}
	format, err := readCOMM(rs)
	if err != nil {
		return audio.Format{}, audio.ByteRange{}, err
	}

	return format, rng, nil
}

// readSSND returns the sample range and the offset of the chunk following SSND.
func readSSND(rs io.ReadSeeker, size int64) (audio.ByteRange, int64, error) {
	var hdr chunkHeader
	if err := binary.Read(rs, binary.BigEndian, &hdr); err != nil {
		return audio.ByteRange{}, 0, eofAs(err, ErrMissingSSND)
	}
	if hdr.ID != ssndID {
		return audio.ByteRange{}, 0, fmt.Errorf("%w: found %q", ErrExpectedSSND, hdr.ID[:])
	}

	var ssnd ssndHeader
	if err := binary.Read(rs, binary.BigEndian, &ssnd); err != nil {
		return audio.ByteRange{}, 0, eofAs(err, ErrMissingSSND)
	}

	const ssndHeaderLen = 8
	if hdr.Size < ssndHeaderLen || ssnd.Offset > hdr.Size-ssndHeaderLen {
		return audio.ByteRange{}, 0, fmt.Errorf("%w: offset %d, length %d", ErrBadSSND, ssnd.Offset, hdr.Size)
	}

	pos, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return audio.ByteRange{}, 0, fmt.Errorf("locating SSND data: %w", err)
	}

	stop := pos + int64(hdr.Size-ssndHeaderLen)
	next := stop + int64(hdr.Size%2)
	start := pos + int64(ssnd.Offset)

	stop = min(stop, size)
	return audio.ByteRange{Start: min(start, stop), Stop: stop}, next, nil
}

func readCOMM(r io.Reader) (audio.Format, error) {
	var hdr chunkHeader
	if err := binary.Read(r, binary.BigEndian, &hdr); err != nil {
		return audio.Format{}, eofAs(err, ErrMissingCOMM)
	}
	if hdr.ID != commID {
		return audio.Format{}, fmt.Errorf("%w: found %q", ErrExpectedCOMM, hdr.ID[:])
	}

	var comm commChunk
	if err := binary.Read(r, binary.BigEndian, &comm); err != nil {
		return audio.Format{}, eofAs(err, ErrMissingCOMM)
	}

	sf, err := audio.SampleFormatFromBits(int(comm.SampleSize))
	if err != nil {
		return audio.Format{}, err
	}
	if comm.Channels > math.MaxUint8 {
		return audio.Format{}, fmt.Errorf("%d channels: %w", comm.Channels, audio.ErrUnsupportedEncoding)
	}

	rate := SANEToFloat64(comm.SampleRate)
	if !(rate >= 0 && rate <= math.MaxUint32) {
		return audio.Format{}, fmt.Errorf("sample rate %v: %w", rate, audio.ErrUnsupportedEncoding)
	}

	format := audio.Format{
		SampleRate:   uint32(rate),
		Channels:     uint8(comm.Channels),
		SampleFormat: sf,
		BigEndian:    sf == audio.S16,
	}
	if err := format.Validate(); err != nil {
		return audio.Format{}, err
	}

	return format, nil
}

func eofAs(err, sentinel error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return sentinel
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
