// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes uncompressed PCM in RIFF/WAVE containers.
//
// The Parser does not decode samples. It validates the container and reports
// the audio.Format and the byte range that holds the raw PCM, so a player
// can stream straight from the file:
//
//	f, _ := os.Open("audio.wav")
//	format, rng, err := wav.Parser{}.Parse(f)
//	if err != nil {
//	    // errors.Is(err, audio.ErrUnsupportedEncoding) etc.
//	}
//
// # Supported Layouts
//
// Only PCM encoded files with 8-bit unsigned or 16-bit signed samples and one
// or two channels are accepted. The fmt chunk must come first, optionally
// preceded by fact and LIST chunks; any other leading chunk is rejected with
// ErrComplexWav. Any number of chunks may sit between fmt and data.
//
// The data range is word aligned like every RIFF chunk and bounded by the
// file size, so a truncated file plays up to its last byte.
//
// # Writing WAV Files
//
// Writer encodes raw PCM bytes through github.com/go-audio/wav:
//
//	out, _ := os.Create("out.wav")
//	w, _ := wav.NewWriter(out, format)
//	w.Write(pcm)
//	w.Close()
//
// 16-bit big-endian input is converted to the little-endian WAV layout.
package wav
