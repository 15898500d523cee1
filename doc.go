// SPDX-License-Identifier: EPL-2.0

// Package wavstream streams uncompressed WAV and AIFF files into an audio
// output running at a fixed mixer format.
//
// Files are not decoded up front. A parser locates the raw PCM samples inside
// the container and the playback controller reads them a block at a time,
// converting only when the file's format differs from the mixer's.
//
// # Quick Start
//
//	mixer := audio.Format{SampleRate: 44100, Channels: 2, SampleFormat: audio.S16}
//	c, err := wavstream.Init(mixer)
//	if err != nil {
//	    return err
//	}
//
//	h, err := wavstream.Open("music.wav")
//	if err != nil {
//	    return err
//	}
//	defer c.Free(h)
//
//	c.Start(h)
//
//	// From the audio callback:
//	n := c.Feed(buf)
//
// # Supported Formats
//
//   - WAV: canonical RIFF/WAVE with PCM 8 or 16-bit samples, optional fact
//     and LIST chunks before the data, via formats/wav
//   - AIFF: FORM/AIFF with the SSND chunk first and COMM after it, 8 or
//     16-bit, via formats/aiff
//
// Both packages also carry writers used to render streams back to disk.
//
// # Subpackages
//
//   - audio: formats, byte ranges, parser registry and the conversion Plan
//   - playback: the Controller and stream handles
//   - utils: sample conversion helpers
package wavstream
