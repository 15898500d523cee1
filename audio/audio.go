// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"sync"
)

// Parser walks a container and locates its raw PCM data.
type Parser interface {
	// Parse reads rs from the beginning and returns the PCM format together
	// with the byte range holding the samples. The read position of rs is
	// unspecified afterwards.
	Parse(rs io.ReadSeeker) (Format, ByteRange, error)
}

// Registry for parsers by container magic (e.g., "RIFF", "FORM").
type Registry struct {
	parsers map[string]Parser

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		parsers: make(map[string]Parser),
		mtx:     &sync.Mutex{},
	}
}

func (r *Registry) Register(magic string, p Parser) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.parsers[magic] = p
}

func (r *Registry) Get(magic string) (Parser, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	p, ok := r.parsers[magic]
	return p, ok
}
