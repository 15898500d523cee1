// SPDX-License-Identifier: EPL-2.0

// Package audio provides the PCM format model and the conversion stage
// shared by every container parser.
//
// # Formats
//
// A Format names the sample rate, channel count and sample encoding of a
// block of raw PCM. Only unsigned 8-bit and signed 16-bit samples are
// understood; 16-bit data may be stored in either byte order:
//
//	src := audio.Format{SampleRate: 22050, Channels: 1, SampleFormat: audio.U8}
//	if err := src.Validate(); err != nil {
//	    return err // wraps audio.ErrUnsupportedEncoding
//	}
//
// A ByteRange marks the half open region of a file that holds the samples.
//
// # Parsers
//
// Container parsers implement the Parser interface and are looked up by the
// four byte magic found at the start of a file:
//
//	registry := audio.NewRegistry()
//	registry.Register("RIFF", wav.Parser{})
//	parser, ok := registry.Get("RIFF")
//
// # Conversion
//
// A Plan converts blocks of raw bytes from a source format to the mixer
// format in place. The buffer handed to Convert must be LenMult times the
// input length so the converted output fits:
//
//	plan := audio.NewPlan(src, mixer)
//	buf := make([]byte, n*plan.LenMult())
//	// fill buf[:n] with source bytes
//	out := plan.Convert(buf, n)
//
// Internally samples are decoded into float32 in [-1, 1), mixed to the
// target channel count, resampled with cubic interpolation, and encoded
// back. Identical formats pass through untouched.
//
// Successive Convert calls are treated as one stream. The resampling phase
// and the last source frames carry over, and output that does not fit is
// produced by the next call. Call Reset when the stream restarts.
//
// # Errors
//
// Every parser error wraps one of the sentinels in errors.go so callers can
// classify failures with errors.Is.
package audio
