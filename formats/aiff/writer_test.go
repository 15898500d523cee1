// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/wavstream/audio"
)

func writeFile(t *testing.T, f audio.Format, pcm []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "out.aif")
	out, err := os.Create(path)
	if err != nil {
		t.Fatalf("os.Create() error = %v", err)
	}
	defer out.Close()

	w, err := NewWriter(out, f)
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}
	if len(pcm) > 0 {
		if _, err := w.Write(pcm); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	return path
}

func TestWriter_ReadableByGoAudio(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format audio.Format
		pcm    []byte
	}{
		{"little-endian input", audio.Format{SampleRate: 22050, Channels: 2, SampleFormat: audio.S16}, []byte{0x01, 0x00, 0xff, 0xff, 0x00, 0x80, 0xff, 0x7f}},
		{"big-endian input", audio.Format{SampleRate: 22050, Channels: 2, SampleFormat: audio.S16, BigEndian: true}, []byte{0x00, 0x01, 0xff, 0xff, 0x80, 0x00, 0x7f, 0xff}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			file, err := os.Open(writeFile(t, tt.format, tt.pcm))
			if err != nil {
				t.Fatalf("os.Open() error = %v", err)
			}
			defer file.Close()

			dec := aiff.NewDecoder(file)
			if !dec.IsValidFile() {
				t.Fatal("go-audio rejects the written file")
			}
			dec.ReadInfo()
			if dec.BitDepth != 16 {
				t.Errorf("BitDepth = %d, want 16", dec.BitDepth)
			}

			format := dec.Format()
			if format == nil || format.SampleRate != 22050 || format.NumChannels != 2 {
				t.Fatalf("Format() = %+v", format)
			}

			buf := &goaudio.IntBuffer{Data: make([]int, 16), Format: format}
			n, err := dec.PCMBuffer(buf)
			if err != nil && !errors.Is(err, io.EOF) {
				t.Fatalf("PCMBuffer() error = %v", err)
			}

			want := []int{1, -1, -32768, 32767}
			if n != len(want) {
				t.Fatalf("PCMBuffer() = %d samples, want %d", n, len(want))
			}
			for i := range want {
				if buf.Data[i] != want[i] {
					t.Errorf("sample %d = %d, want %d", i, buf.Data[i], want[i])
				}
			}
		})
	}
}

func TestWriter_LayoutIsNotSSNDFirst(t *testing.T) {
	t.Parallel()

	f := audio.Format{SampleRate: 8000, Channels: 1, SampleFormat: audio.S16}
	data, err := os.ReadFile(writeFile(t, f, make([]byte, 32)))
	if err != nil {
		t.Fatalf("os.ReadFile() error = %v", err)
	}

	if string(data[0:4]) != "FORM" || string(data[8:12]) != "AIFF" {
		t.Fatalf("header = %q", data[:12])
	}

	// The streaming parser only reads the SSND-first convention
	_, _, err = Parser{}.Parse(bytes.NewReader(data))
	if !errors.Is(err, ErrExpectedSSND) {
		t.Errorf("Parse() error = %v, want ErrExpectedSSND", err)
	}
}

func TestNewWriter_Rejects8Bit(t *testing.T) {
	t.Parallel()

	_, err := NewWriter(nil, audio.Format{SampleRate: 8000, Channels: 1, SampleFormat: audio.U8})
	if !errors.Is(err, ErrOnlyPCM16bitSupported) {
		t.Errorf("NewWriter() error = %v, want ErrOnlyPCM16bitSupported", err)
	}
	if !errors.Is(err, audio.ErrUnsupportedEncoding) {
		t.Errorf("NewWriter() error = %v, want ErrUnsupportedEncoding", err)
	}
}

func TestNewWriter_InvalidFormat(t *testing.T) {
	t.Parallel()

	_, err := NewWriter(nil, audio.Format{Channels: 2, SampleFormat: audio.S16})
	if !errors.Is(err, audio.ErrUnsupportedEncoding) {
		t.Errorf("NewWriter() error = %v, want ErrUnsupportedEncoding", err)
	}
}
