// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	ErrNotAiffFile           = errors.New("not an aiff file")
	ErrOnlyPCM16bitSupported = errors.New("only 16-bit pcm aiff is supported")
	ErrUnsupportedAiffLayout = errors.New("unsupported aiff layout")
)
