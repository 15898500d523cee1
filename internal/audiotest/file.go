// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"errors"
	"io"
	"sync/atomic"
)

// ErrInjected is returned by a File once a read crosses its failure offset.
var ErrInjected = errors.New("injected read failure")

// File is an in-memory io.ReadSeekCloser that counts Close calls.
type File struct {
	r      *bytes.Reader
	failAt int64
	closes atomic.Int32
}

func NewFile(b []byte) *File {
	return &File{r: bytes.NewReader(b), failAt: -1}
}

// FailAt makes reads at or past offset return ErrInjected.
func (f *File) FailAt(offset int64) *File {
	f.failAt = offset
	return f
}

func (f *File) Read(p []byte) (int, error) {
	if f.failAt >= 0 {
		pos, _ := f.r.Seek(0, io.SeekCurrent)
		if pos >= f.failAt {
			return 0, ErrInjected
		}
		if room := f.failAt - pos; int64(len(p)) > room {
			p = p[:room]
		}
	}
	return f.r.Read(p)
}

func (f *File) Seek(offset int64, whence int) (int64, error) {
	return f.r.Seek(offset, whence)
}

func (f *File) Close() error {
	f.closes.Add(1)
	return nil
}

// Closes reports how many times Close was called.
func (f *File) Closes() int { return int(f.closes.Load()) }

// Pos reports the current read offset.
func (f *File) Pos() int64 {
	pos, _ := f.r.Seek(0, io.SeekCurrent)
	return pos
}
