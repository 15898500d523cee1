// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ik5/wavstream/audio"
)

// DefaultScratchLimit bounds a single scratch allocation.
const DefaultScratchLimit = 16 << 20

// Controller plays at most one stream at a time into a fixed mixer format.
// Every method is safe to call from both the application and the audio
// callback; a single mutex serializes them.
type Controller struct {
	mtx     sync.Mutex
	current *Handle

	mixer        audio.Format
	parsers      *audio.Registry
	scratchLimit int
	log          *logrus.Entry
}

// Option configures a Controller in New.
type Option func(*Controller)

// WithLogger replaces the default logger, which writes through the logrus
// standard logger.
func WithLogger(l *logrus.Entry) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithScratchLimit caps the scratch buffer in bytes. Zero or less disables
// the cap.
func WithScratchLimit(n int) Option {
	return func(c *Controller) { c.scratchLimit = n }
}

// New returns a controller converting every stream to mixer. parsers maps
// container magic numbers to the parser used by Open.
func New(mixer audio.Format, parsers *audio.Registry, opts ...Option) (*Controller, error) {
	if err := mixer.Validate(); err != nil {
		return nil, fmt.Errorf("mixer format: %w", err)
	}
	if parsers == nil {
		return nil, ErrNilRegistry
	}

	c := &Controller{
		mixer:        mixer,
		parsers:      parsers,
		scratchLimit: DefaultScratchLimit,
		log:          logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithField("component", "playback")

	c.log.WithFields(logrus.Fields{
		"mixer":         mixer.String(),
		"scratch_limit": c.scratchLimit,
	}).Debug("Playback controller created")

	return c, nil
}

// Mixer is the output format every stream is converted to.
func (c *Controller) Mixer() audio.Format { return c.mixer }

// Open parses f with the parser registered for magic and returns a handle
// ready to Start. On failure f is closed.
func (c *Controller) Open(f io.ReadSeekCloser, magic string) (*Handle, error) {
	if f == nil {
		return nil, ErrNilFile
	}

	parser, ok := c.parsers.Get(magic)
	if !ok {
		f.Close()
		return nil, fmt.Errorf("magic %q: %w", magic, audio.ErrNotRecognized)
	}

	format, rng, err := parser.Parse(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	h := &Handle{
		id:         uuid.New(),
		magic:      magic,
		file:       f,
		format:     format,
		rng:        rng,
		plan:       audio.NewPlan(format, c.mixer),
		pos:        rng.Start,
		scratchLen: -1,
	}
	h.log = c.log.WithFields(logrus.Fields{
		"handle": h.id.String(),
		"magic":  magic,
	})

	h.log.WithFields(logrus.Fields{
		"format":  format.String(),
		"start":   rng.Start,
		"stop":    rng.Stop,
		"convert": h.plan.Needed(),
	}).Debug("Stream opened")

	return h, nil
}

// Load opens the file at path and hands it to Open.
func (c *Controller) Load(path, magic string) (*Handle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening stream: %w", err)
	}
	return c.Open(f, magic)
}

// Start rewinds h to the beginning of its samples and makes it the current
// stream, replacing any other. Starting the current stream again restarts it.
func (c *Controller) Start(h *Handle) error {
	if h == nil {
		return ErrNilHandle
	}

	c.mtx.Lock()
	defer c.mtx.Unlock()

	if h.freed {
		return ErrClosed
	}
	if _, err := h.file.Seek(h.rng.Start, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding stream: %w", err)
	}

	h.pos = h.rng.Start
	h.plan.Reset()

	if c.current != nil && c.current != h {
		c.current.log.Debug("Stream superseded")
	}
	c.current = h
	h.log.Debug("Stream started")

	return nil
}

// Feed fills out with mixer format samples from the current stream and
// returns the number of bytes written. Nothing is written when no stream is
// playing or the current one is exhausted. Failures are logged and produce
// no output.
func (c *Controller) Feed(out []byte) int {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	h := c.current
	if h == nil || h.pos >= h.rng.Stop || len(out) == 0 {
		return 0
	}

	if !h.plan.Needed() {
		return h.read(out)
	}

	return c.feedConverted(h, out)
}

func (c *Controller) feedConverted(h *Handle, out []byte) int {
	frame := h.format.FrameSize()
	srcLen := int(float64(len(out)) / h.plan.LenRatio())
	srcLen -= srcLen % frame

	scratch, err := h.scratchFor(srcLen, c.scratchLimit)
	if err != nil {
		h.log.WithFields(logrus.Fields{
			"src_len": srcLen,
			"mult":    h.plan.LenMult(),
			"limit":   c.scratchLimit,
		}).Warn("Scratch allocation refused, feeding silence")
		return 0
	}

	n := h.read(scratch[:srcLen])
	converted := h.plan.ConvertLimit(scratch, n, len(out))

	return copy(out, scratch[:converted])
}

// Stop detaches the current stream. The handle stays open.
func (c *Controller) Stop() {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if c.current != nil {
		c.current.log.Debug("Stream stopped")
	}
	c.current = nil
}

// Active reports whether a current stream has samples left.
func (c *Controller) Active() bool {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	return c.current != nil && c.current.pos < c.current.rng.Stop
}

// Current returns the stream being played, or nil.
func (c *Controller) Current() *Handle {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	return c.current
}

// Position returns the file offset of the next byte the current stream
// will read.
func (c *Controller) Position() (int64, bool) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if c.current == nil {
		return 0, false
	}
	return c.current.pos, true
}

// Free detaches h if it is current, closes its file and drops its scratch
// buffer. Freeing a handle twice is a no-op.
func (c *Controller) Free(h *Handle) error {
	if h == nil {
		return nil
	}

	c.mtx.Lock()
	defer c.mtx.Unlock()

	if c.current == h {
		c.current = nil
	}
	if h.freed {
		return nil
	}

	h.freed = true
	h.scratch = nil
	h.scratchLen = -1
	h.log.Debug("Stream freed")

	if err := h.file.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		return fmt.Errorf("closing stream: %w", err)
	}
	return nil
}

// Reader adapts the controller to pull based audio outputs. Read returns
// io.EOF once no stream is active and nothing was fed. A feed that makes no
// progress on an active stream reads as a full buffer of silence.
func (c *Controller) Reader() io.Reader {
	return feedReader{c}
}

type feedReader struct{ c *Controller }

func (r feedReader) Read(p []byte) (int, error) {
	n := r.c.Feed(p)
	if n > 0 || len(p) == 0 {
		return n, nil
	}
	if !r.c.Active() {
		return 0, io.EOF
	}

	r.c.mixer.Silence(p)
	return len(p), nil
}
