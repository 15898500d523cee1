// SPDX-License-Identifier: EPL-2.0

// Package audiotest builds in-memory RIFF and AIFF containers for tests.
package audiotest

import (
	"bytes"
	"encoding/binary"

	goaudio "github.com/go-audio/audio"
)

// Chunk is a raw container chunk. Body padding is added by RIFF and FORM.
type Chunk struct {
	ID   string
	Data []byte
}

// RIFF wraps chunks in a little-endian RIFF container of the given form type.
func RIFF(form string, chunks ...Chunk) []byte {
	return container("RIFF", form, binary.LittleEndian, chunks)
}

// FORM wraps chunks in a big-endian IFF container of the given form type.
func FORM(form string, chunks ...Chunk) []byte {
	return container("FORM", form, binary.BigEndian, chunks)
}

func container(id, form string, order binary.ByteOrder, chunks []Chunk) []byte {
	body := new(bytes.Buffer)
	body.WriteString(form)
	for _, c := range chunks {
		writeChunk(body, order, c)
	}

	out := new(bytes.Buffer)
	out.WriteString(id)
	binary.Write(out, order, uint32(body.Len()))
	out.Write(body.Bytes())
	return out.Bytes()
}

func writeChunk(w *bytes.Buffer, order binary.ByteOrder, c Chunk) {
	w.WriteString(c.ID)
	binary.Write(w, order, uint32(len(c.Data)))
	w.Write(c.Data)
	if len(c.Data)%2 == 1 {
		w.WriteByte(0)
	}
}

// FmtChunk builds a 16 byte WAVE fmt chunk.
func FmtChunk(encoding, channels, rate, bits int) Chunk {
	blockAlign := channels * bits / 8
	b := new(bytes.Buffer)
	binary.Write(b, binary.LittleEndian, uint16(encoding))
	binary.Write(b, binary.LittleEndian, uint16(channels))
	binary.Write(b, binary.LittleEndian, uint32(rate))
	binary.Write(b, binary.LittleEndian, uint32(rate*blockAlign))
	binary.Write(b, binary.LittleEndian, uint16(blockAlign))
	binary.Write(b, binary.LittleEndian, uint16(bits))
	return Chunk{ID: "fmt ", Data: b.Bytes()}
}

func DataChunk(pcm []byte) Chunk { return Chunk{ID: "data", Data: pcm} }

// WAV builds a canonical PCM RIFF/WAVE file, extra chunks go between fmt and data.
func WAV(channels, rate, bits int, pcm []byte, extra ...Chunk) []byte {
	chunks := []Chunk{FmtChunk(1, channels, rate, bits)}
	chunks = append(chunks, extra...)
	chunks = append(chunks, DataChunk(pcm))
	return RIFF("WAVE", chunks...)
}

// SANE encodes rate as an 80-bit IEEE extended float.
func SANE(rate int) [10]byte {
	return goaudio.IntToIEEEFloat(rate)
}

// SSNDChunk builds a sound data chunk with offset filler bytes before pcm.
func SSNDChunk(offset uint32, pcm []byte) Chunk {
	b := new(bytes.Buffer)
	binary.Write(b, binary.BigEndian, offset)
	binary.Write(b, binary.BigEndian, uint32(0))
	b.Write(make([]byte, offset))
	b.Write(pcm)
	return Chunk{ID: "SSND", Data: b.Bytes()}
}

// COMMChunk builds an 18 byte AIFF common chunk.
func COMMChunk(channels, frames, bits, rate int) Chunk {
	b := new(bytes.Buffer)
	binary.Write(b, binary.BigEndian, uint16(channels))
	binary.Write(b, binary.BigEndian, uint32(frames))
	binary.Write(b, binary.BigEndian, uint16(bits))
	sane := SANE(rate)
	b.Write(sane[:])
	return Chunk{ID: "COMM", Data: b.Bytes()}
}

// AIFF builds a FORM/AIFF file with SSND ahead of COMM.
func AIFF(channels, rate, bits int, pcm []byte) []byte {
	frames := 0
	if fs := channels * bits / 8; fs > 0 {
		frames = len(pcm) / fs
	}
	return FORM("AIFF", SSNDChunk(0, pcm), COMMChunk(channels, frames, bits, rate))
}

// Ramp returns n bytes of a repeating non-trivial pattern.
func Ramp(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(i*7 + i/251)
	}
	return out
}
