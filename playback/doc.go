// SPDX-License-Identifier: EPL-2.0

// Package playback streams parsed PCM files into a fixed mixer format.
//
// A Controller owns the single current stream. Open and Load parse a file
// into a Handle; Start makes it current; Feed is called from the audio
// output with a buffer to fill:
//
//	c, _ := playback.New(mixer, registry)
//	h, _ := c.Load("intro.wav", "RIFF")
//	c.Start(h)
//
//	player := otoCtx.NewPlayer(c.Reader())
//	player.Play()
//
// Streams already in the mixer format are copied straight from the file.
// Others are read into a per handle scratch buffer and converted in place.
// The scratch buffer is reallocated whenever the requested length changes.
package playback
