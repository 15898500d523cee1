// SPDX-License-Identifier: EPL-2.0

package wavstream

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ik5/wavstream/audio"
	"github.com/ik5/wavstream/formats/aiff"
	"github.com/ik5/wavstream/formats/wav"
	"github.com/ik5/wavstream/playback"
)

// Magic numbers of the supported containers.
const (
	MagicRIFF = "RIFF"
	MagicFORM = "FORM"
)

var (
	mtx        sync.Mutex
	controller *playback.Controller
)

// NewRegistry returns a registry holding the WAV and AIFF parsers.
func NewRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register(MagicRIFF, wav.Parser{})
	r.Register(MagicFORM, aiff.Parser{})
	return r
}

// Init creates the process wide controller for the given mixer format.
// It succeeds once; later calls return ErrAlreadyInitialized.
func Init(mixer audio.Format, opts ...playback.Option) (*playback.Controller, error) {
	mtx.Lock()
	defer mtx.Unlock()

	if controller != nil {
		return nil, ErrAlreadyInitialized
	}

	c, err := playback.New(mixer, NewRegistry(), opts...)
	if err != nil {
		return nil, err
	}
	controller = c

	return c, nil
}

// Default returns the controller created by Init.
func Default() (*playback.Controller, error) {
	mtx.Lock()
	defer mtx.Unlock()

	if controller == nil {
		return nil, ErrNotInitialized
	}
	return controller, nil
}

// Sniff reads the four byte magic number at the start of r.
func Sniff(r io.Reader) (string, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return "", fmt.Errorf("reading magic: %w", audio.ErrNotRecognized)
		}
		return "", fmt.Errorf("reading magic: %w", err)
	}
	return string(magic[:]), nil
}

// Open loads the file at path into the default controller, choosing the
// parser from the file's magic number.
func Open(path string) (*playback.Handle, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening stream: %w", err)
	}

	magic, err := Sniff(f)
	if err == nil {
		_, err = f.Seek(0, io.SeekStart)
	}
	if err != nil {
		f.Close()
		return nil, err
	}

	return c.Open(f, magic)
}
