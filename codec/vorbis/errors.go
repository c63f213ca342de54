// SPDX-License-Identifier: EPL-2.0

package vorbis

import "errors"

var (
	ErrUnsupportedChannels = errors.New("vorbis must be mono or stereo")
	ErrNotSeekable         = errors.New("vorbis stream has no length; cannot stream")
)
