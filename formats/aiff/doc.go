// SPDX-License-Identifier: EPL-2.0

// Package aiff reads and writes uncompressed PCM in FORM/AIFF containers.
//
// # Parsing
//
// The Parser targets the streaming layout where the SSND chunk immediately
// follows the form header and the COMM chunk immediately follows SSND. Any
// other ordering is rejected with ErrExpectedSSND or ErrExpectedCOMM rather
// than searched for; files written by most editors put COMM first and are
// not accepted.
//
//	f, _ := os.Open("audio.aif")
//	format, rng, err := aiff.Parser{}.Parse(f)
//
// All numeric fields are big-endian. 16-bit samples are reported with
// audio.Format.BigEndian set. 8-bit samples are reported as audio.U8.
//
// The sample rate is stored as an 80-bit extended float; SANEToFloat64
// decodes it by repacking its bits into an IEEE double.
//
// # Writing
//
// Writer produces 16-bit files through github.com/go-audio/aiff in the
// conventional COMM-first layout, for use by other tools.
//
// # AIFF vs. WAV
//
// AIFF is similar to WAV but:
//   - Uses big-endian byte order (WAV uses little-endian)
//   - Stores sample rate as 80-bit float (WAV uses 32-bit int)
//   - Prefixes the sound data with an offset and block size
package aiff
