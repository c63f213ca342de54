// SPDX-License-Identifier: EPL-2.0

package pcm

import "errors"

var (
	ErrBadChannels  = errors.New("channels must be 1 or 2")
	ErrEmptyBuffer  = errors.New("buffer has no samples")
	ErrPartialFrame = errors.New("sample count must be a multiple of channels")
	ErrEmptyStream  = errors.New("stream produced no samples")
)
