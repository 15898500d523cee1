// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ik5/wavstream/audio"
)

// Handle is an open stream: the file, where its samples live, the read
// cursor and the conversion scratch space. The Controller that created it
// guards every mutable field with its lock.
type Handle struct {
	id     uuid.UUID
	magic  string
	file   io.ReadSeekCloser
	format audio.Format
	rng    audio.ByteRange
	plan   *audio.Plan
	log    *logrus.Entry

	pos int64

	// scratch holds scratchLen source bytes plus room for conversion growth.
	// scratchLen is the unclamped source length of the last feed request.
	scratch    []byte
	scratchLen int

	freed bool
}

// ID identifies the handle in log entries.
func (h *Handle) ID() uuid.UUID { return h.id }

// Magic is the container magic number the file was opened with.
func (h *Handle) Magic() string { return h.magic }

// Format is the sample format stored in the file.
func (h *Handle) Format() audio.Format { return h.format }

// Range is where the samples live in the file.
func (h *Handle) Range() audio.ByteRange { return h.rng }

// NeedsConversion reports whether samples are converted before being fed.
func (h *Handle) NeedsConversion() bool { return h.plan.Needed() }

// scratchFor returns a scratch buffer sized for srcLen source bytes,
// reallocating whenever the requested length changes.
func (h *Handle) scratchFor(srcLen, limit int) ([]byte, error) {
	if srcLen == h.scratchLen && h.scratch != nil {
		return h.scratch, nil
	}

	h.scratch = nil
	h.scratchLen = -1

	size := srcLen * h.plan.LenMult()
	if limit > 0 && size > limit {
		return nil, audio.ErrResourceExhausted
	}

	h.scratch = make([]byte, size)
	h.scratchLen = srcLen

	return h.scratch, nil
}

// read reads up to len(p) bytes at the cursor, never past the range end.
// Any failure ends the stream.
func (h *Handle) read(p []byte) int {
	n := int(min(int64(len(p)), h.rng.Stop-h.pos))
	if n <= 0 {
		return 0
	}

	read, err := io.ReadFull(h.file, p[:n])
	h.pos += int64(read)
	if err != nil {
		h.log.WithFields(logrus.Fields{
			"pos":   h.pos,
			"want":  n,
			"read":  read,
			"error": err,
		}).Warn("Stream read failed, ending stream")
		h.pos = h.rng.Stop
	}

	return read
}
