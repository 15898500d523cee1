// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/wavstream/audio"
)

// Writer encodes 16-bit PCM bytes into an AIFF file in the conventional
// COMM-first layout. Close must be called to finalize the chunk sizes.
type Writer struct {
	format audio.Format
	enc    *aiff.Encoder
	buf    *goaudio.IntBuffer
	wrote  bool
}

func NewWriter(ws io.WriteSeeker, f audio.Format) (*Writer, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if f.SampleFormat != audio.S16 {
		return nil, ErrOnlyPCM16bitSupported
	}

	return &Writer{
		format: f,
		enc:    aiff.NewEncoder(ws, int(f.SampleRate), 16, int(f.Channels)),
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: int(f.Channels), SampleRate: int(f.SampleRate)},
			SourceBitDepth: 16,
		},
	}, nil
}

// Write appends the whole frames held in pcm, in either byte order as given
// by the writer's format.
func (w *Writer) Write(pcm []byte) (int, error) {
	frames := len(pcm) / w.format.FrameSize()
	n := frames * w.format.FrameSize()
	samples := n / 2

	if cap(w.buf.Data) < samples {
		w.buf.Data = make([]int, samples)
	}
	w.buf.Data = w.buf.Data[:samples]

	var order binary.ByteOrder = binary.LittleEndian
	if w.format.BigEndian {
		order = binary.BigEndian
	}
	for i := range samples {
		w.buf.Data[i] = int(int16(order.Uint16(pcm[2*i:])))
	}

	if err := w.enc.Write(w.buf); err != nil {
		return 0, fmt.Errorf("encoding AIFF frames: %w", err)
	}
	w.wrote = true

	return n, nil
}

func (w *Writer) Close() error {
	if !w.wrote {
		if _, err := w.Write(nil); err != nil {
			return err
		}
	}
	if err := w.enc.Close(); err != nil {
		return fmt.Errorf("finalizing AIFF: %w", err)
	}
	return nil
}
