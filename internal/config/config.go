// SPDX-License-Identifier: EPL-2.0

// Package config reads the wavplay defaults from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/ik5/wavstream/audio"
)

// Config holds the mixer format and the size in bytes of each buffer
// handed to Feed.
type Config struct {
	Rate     int
	Channels int
	Bits     int
	Chunk    int
	LogLevel logrus.Level
}

type ErrConfig string

func (e ErrConfig) Error() string { return string(e) }

func getenv(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val
}

func atoi(key, def string) (int, error) {
	v, err := strconv.Atoi(getenv(key, def))
	if err != nil || v <= 0 {
		return 0, ErrConfig(fmt.Sprintf("%s must be a positive integer", key))
	}
	return v, nil
}

func Load() (*Config, error) {
	var (
		cfg Config
		err error
	)

	if cfg.Rate, err = atoi("WAVSTREAM_RATE", "44100"); err != nil {
		return nil, err
	}
	if cfg.Channels, err = atoi("WAVSTREAM_CHANNELS", "2"); err != nil {
		return nil, err
	}
	if cfg.Bits, err = atoi("WAVSTREAM_BITS", "16"); err != nil {
		return nil, err
	}
	if cfg.Chunk, err = atoi("WAVSTREAM_CHUNK", "4096"); err != nil {
		return nil, err
	}

	cfg.LogLevel, err = logrus.ParseLevel(getenv("WAVSTREAM_LOG_LEVEL", "info"))
	if err != nil {
		return nil, ErrConfig(fmt.Sprintf("WAVSTREAM_LOG_LEVEL: %v", err))
	}

	return &cfg, nil
}

// MixerFormat builds and validates the output format.
func (c *Config) MixerFormat() (audio.Format, error) {
	sf, err := audio.SampleFormatFromBits(c.Bits)
	if err != nil {
		return audio.Format{}, err
	}
	if c.Rate > 1<<20 || c.Channels > 255 {
		return audio.Format{}, fmt.Errorf("%dHz %dch: %w", c.Rate, c.Channels, audio.ErrUnsupportedEncoding)
	}

	f := audio.Format{
		SampleRate:   uint32(c.Rate),
		Channels:     uint8(c.Channels),
		SampleFormat: sf,
	}
	if err := f.Validate(); err != nil {
		return audio.Format{}, err
	}
	return f, nil
}
