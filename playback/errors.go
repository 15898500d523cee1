// SPDX-License-Identifier: EPL-2.0

package playback

import "errors"

var (
	ErrNilHandle   = errors.New("nil stream handle")
	ErrNilFile     = errors.New("nil stream file")
	ErrNilRegistry = errors.New("nil parser registry")
	ErrClosed      = errors.New("stream handle already freed")
)
