// SPDX-License-Identifier: EPL-2.0

package mp3

import "errors"

var (
	ErrUnknownLength = errors.New("mp3 stream length unknown; cannot stream")
)
