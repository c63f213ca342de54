// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile          = errors.New("not a wav file")
	ErrUnsupportedChannels = errors.New("wav must be mono or stereo")
)
