// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"

	"github.com/ik5/wavstream/audio"
)

// Every error wraps one of the audio sentinels.
var (
	ErrNotWavFile    = fmt.Errorf("not a WAV file: %w", audio.ErrNotRecognized)
	ErrComplexWav    = fmt.Errorf("complex WAVE files not supported: %w", audio.ErrUnsupportedStructure)
	ErrNotPCM        = fmt.Errorf("unknown WAVE data format: %w", audio.ErrUnsupportedEncoding)
	ErrMissingFormat = fmt.Errorf("WAV ended before fmt chunk: %w", audio.ErrTruncated)
	ErrShortFmt      = fmt.Errorf("short fmt chunk: %w", audio.ErrTruncated)
	ErrMissingData   = fmt.Errorf("WAV ended before data chunk: %w", audio.ErrTruncated)
)
