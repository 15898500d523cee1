// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"

	"github.com/ik5/wavstream/audio"
)

// Every error wraps one of the audio sentinels.
var (
	// ErrNotAiffFile indicates the file is not a FORM/AIFF container
	ErrNotAiffFile = fmt.Errorf("not an AIFF file: %w", audio.ErrNotRecognized)

	// ErrExpectedSSND indicates the first chunk is not the sound data chunk
	ErrExpectedSSND = fmt.Errorf("unrecognized AIFF chunk (not SSND): %w", audio.ErrUnsupportedStructure)

	// ErrExpectedCOMM indicates the sound data is not followed by the common chunk
	ErrExpectedCOMM = fmt.Errorf("unrecognized AIFF chunk (not COMM): %w", audio.ErrUnsupportedStructure)

	// ErrBadSSND indicates an SSND chunk whose offset points past its own end
	ErrBadSSND = fmt.Errorf("SSND offset outside chunk: %w", audio.ErrUnsupportedStructure)

	ErrMissingSSND = fmt.Errorf("AIFF ended before SSND chunk: %w", audio.ErrTruncated)
	ErrMissingCOMM = fmt.Errorf("AIFF ended before COMM chunk: %w", audio.ErrTruncated)

	// ErrOnlyPCM16bitSupported is returned by the Writer for 8-bit formats
	ErrOnlyPCM16bitSupported = fmt.Errorf("only 16-bit PCM AIFF can be written: %w", audio.ErrUnsupportedEncoding)
)
