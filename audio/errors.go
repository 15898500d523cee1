// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	// ErrNotRecognized indicates the top level magic of the container is wrong
	ErrNotRecognized = errors.New("unrecognized file type")

	// ErrUnsupportedStructure indicates a chunk layout the parsers do not handle
	ErrUnsupportedStructure = errors.New("unsupported container structure")

	// ErrUnsupportedEncoding indicates non-PCM data, or a bit depth other than 8 or 16
	ErrUnsupportedEncoding = errors.New("unsupported encoding")

	// ErrTruncated indicates the input ended before a required chunk was found
	ErrTruncated = errors.New("truncated container")

	// ErrResourceExhausted indicates the conversion scratch buffer could not grow
	ErrResourceExhausted = errors.New("scratch buffer exhausted")
)
