// SPDX-License-Identifier: EPL-2.0

// Command wavplay plays a WAV or AIFF file through the default audio device,
// or renders it in the mixer format to a new file.
//
// Usage:
//
//	wavplay [flags] file
//
// Defaults come from WAVSTREAM_RATE, WAVSTREAM_CHANNELS, WAVSTREAM_BITS,
// WAVSTREAM_CHUNK and WAVSTREAM_LOG_LEVEL; flags override them.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/sirupsen/logrus"

	"github.com/ik5/wavstream"
	"github.com/ik5/wavstream/audio"
	"github.com/ik5/wavstream/formats/aiff"
	"github.com/ik5/wavstream/formats/wav"
	"github.com/ik5/wavstream/internal/config"
	"github.com/ik5/wavstream/playback"
)

var log = logrus.New()

var errStalled = errors.New("stream stopped producing samples")

func main() {
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.WithError(err).Fatal("wavplay failed")
	}
}

type options struct {
	cfg     *config.Config
	out     string
	info    bool
	verbose bool
	path    string
}

func parseFlags(args []string) (*options, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	opts := &options{cfg: cfg}

	fs := flag.NewFlagSet("wavplay", flag.ContinueOnError)
	fs.IntVar(&cfg.Rate, "rate", cfg.Rate, "mixer sample rate in Hz")
	fs.IntVar(&cfg.Channels, "channels", cfg.Channels, "mixer channel count (1 or 2)")
	fs.IntVar(&cfg.Bits, "bits", cfg.Bits, "mixer bits per sample (8 or 16)")
	fs.IntVar(&cfg.Chunk, "chunk", cfg.Chunk, "bytes requested per feed")
	fs.StringVar(&opts.out, "out", "", "render to this .wav or .aif file instead of playing")
	fs.BoolVar(&opts.info, "info", false, "print the stream format and exit")
	fs.BoolVar(&opts.verbose, "v", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return nil, flag.ErrHelp
	}
	if cfg.Chunk <= 0 {
		return nil, config.ErrConfig("chunk must be positive")
	}
	opts.path = fs.Arg(0)

	return opts, nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	log.SetLevel(opts.cfg.LogLevel)
	if opts.verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	mixer, err := opts.cfg.MixerFormat()
	if err != nil {
		return err
	}

	c, err := wavstream.Init(mixer, playback.WithLogger(logrus.NewEntry(log)))
	if err != nil {
		return err
	}

	h, err := wavstream.Open(opts.path)
	if err != nil {
		return err
	}
	defer c.Free(h)

	if opts.info {
		printInfo(stdout, opts.path, h, mixer)
		return nil
	}

	if err := c.Start(h); err != nil {
		return err
	}

	if opts.out != "" {
		return render(ctx, c, opts.out, opts.cfg.Chunk)
	}
	return play(ctx, c, mixer, opts.cfg.Chunk)
}

func printInfo(w io.Writer, path string, h *playback.Handle, mixer audio.Format) {
	f, rng := h.Format(), h.Range()

	fmt.Fprintf(w, "file:    %s\n", path)
	fmt.Fprintf(w, "magic:   %s\n", h.Magic())
	fmt.Fprintf(w, "format:  %s\n", f)
	fmt.Fprintf(w, "samples: bytes %d to %d (%d)\n", rng.Start, rng.Stop, rng.Len())
	if frames := rng.Len() / int64(f.FrameSize()); f.SampleRate > 0 {
		fmt.Fprintf(w, "length:  %s\n", time.Duration(frames)*time.Second/time.Duration(f.SampleRate))
	}
	fmt.Fprintf(w, "mixer:   %s (convert: %t)\n", mixer, h.NeedsConversion())
}

type sink interface {
	Write(pcm []byte) (int, error)
	Close() error
}

func newSink(f *os.File, mixer audio.Format) (sink, error) {
	switch strings.ToLower(filepath.Ext(f.Name())) {
	case ".wav":
		return wav.NewWriter(f, mixer)
	case ".aif", ".aiff":
		return aiff.NewWriter(f, mixer)
	default:
		return nil, fmt.Errorf("output %q: unknown extension", f.Name())
	}
}

func render(ctx context.Context, c *playback.Controller, path string, chunk int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w, err := newSink(f, c.Mixer())
	if err != nil {
		return err
	}

	buf := make([]byte, chunk)
	var total int
	for c.Active() && ctx.Err() == nil {
		n := c.Feed(buf)
		if n == 0 {
			if c.Active() {
				return fmt.Errorf("%w: %d byte chunks into %s", errStalled, chunk, c.Mixer())
			}
			break
		}
		if _, err := w.Write(buf[:n]); err != nil {
			return err
		}
		total += n
	}

	if err := w.Close(); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"path":  path,
		"bytes": total,
	}).Info("Rendered stream")

	return ctx.Err()
}

func otoFormat(f audio.SampleFormat) oto.Format {
	if f == audio.U8 {
		return oto.FormatUnsignedInt8
	}
	return oto.FormatSignedInt16LE
}

func play(ctx context.Context, c *playback.Controller, mixer audio.Format, chunk int) error {
	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(mixer.SampleRate),
		ChannelCount: int(mixer.Channels),
		Format:       otoFormat(mixer.SampleFormat),
	})
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}
	<-ready

	player := otoCtx.NewPlayer(c.Reader())
	defer player.Close()

	player.SetBufferSize(chunk)
	player.Play()

	log.WithField("mixer", mixer.String()).Info("Playing")

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			c.Stop()
			player.Pause()
			return nil
		case <-ticker.C:
		}
	}

	return player.Err()
}
