// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/wavstream/audio"
)

// Writer encodes raw PCM bytes of a fixed format into a WAV file.
// Close must be called to finalize the header sizes; the underlying writer
// is not closed.
type Writer struct {
	format audio.Format
	enc    *gowav.Encoder
	buf    *goaudio.IntBuffer
	wrote  bool
}

// NewWriter validates f and prepares an encoder over ws.
func NewWriter(ws io.WriteSeeker, f audio.Format) (*Writer, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	return &Writer{
		format: f,
		enc:    gowav.NewEncoder(ws, int(f.SampleRate), f.SampleFormat.Bits(), int(f.Channels), pcmCode),
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: int(f.Channels), SampleRate: int(f.SampleRate)},
			SourceBitDepth: f.SampleFormat.Bits(),
		},
	}, nil
}

// Write appends the whole frames held in pcm, which is in the writer's
// format. Trailing partial frames are dropped.
func (w *Writer) Write(pcm []byte) (int, error) {
	frames := len(pcm) / w.format.FrameSize()
	n := frames * w.format.FrameSize()
	samples := n / w.format.SampleFormat.BytesPerSample()

	if cap(w.buf.Data) < samples {
		w.buf.Data = make([]int, samples)
	}
	w.buf.Data = w.buf.Data[:samples]

	switch w.format.SampleFormat {
	case audio.U8:
		// The encoder stores 8-bit values unchanged
		for i := range samples {
			w.buf.Data[i] = int(pcm[i])
		}
	case audio.S16:
		var order binary.ByteOrder = binary.LittleEndian
		if w.format.BigEndian {
			order = binary.BigEndian
		}
		for i := range samples {
			w.buf.Data[i] = int(int16(order.Uint16(pcm[2*i:])))
		}
	}

	if err := w.enc.Write(w.buf); err != nil {
		return 0, fmt.Errorf("encoding WAV frames: %w", err)
	}
	w.wrote = true

	return n, nil
}

// Close patches the RIFF and data sizes.
func (w *Writer) Close() error {
	if !w.wrote {
		// The encoder only emits the data chunk header on the first write
		if _, err := w.Write(nil); err != nil {
			return err
		}
	}
	if err := w.enc.Close(); err != nil {
		return fmt.Errorf("finalizing WAV: %w", err)
	}
	return nil
}
