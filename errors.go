// SPDX-License-Identifier: EPL-2.0

package gamemix

import "errors"

var (
	ErrInitFailed      = errors.New("engine init failed")
	ErrUnknownFormat   = errors.New("no decoder registered for file extension")
	ErrNoStreamSupport = errors.New("format cannot be streamed")
	ErrNotLoaded       = errors.New("audio data not loaded")
	ErrStreamRead      = errors.New("stream read failed")
)
