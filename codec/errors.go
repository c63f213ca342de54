// SPDX-License-Identifier: EPL-2.0

package codec

import "errors"

var (
	ErrInvalidDstSize      = errors.New("dst size must be multiple of channels")
	ErrUnsupportedChannels = errors.New("source must be mono or stereo")
	ErrBadRate             = errors.New("sample rates must be positive")
)
