// SPDX-License-Identifier: EPL-2.0

package wavstream

import "errors"

var (
	ErrNotInitialized     = errors.New("WAV music output not started")
	ErrAlreadyInitialized = errors.New("WAV music output already started")
)
