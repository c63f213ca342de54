// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"fmt"
	"io"
)

// Conform wraps src so that it delivers samples at sampleRate. The
// source is returned unchanged when its rate already matches.
func Conform(src Source, sampleRate int) (Source, error) {
	if src.SampleRate() == sampleRate {
		return src, nil
	}
	return NewResampler(src, sampleRate)
}

// ReadAll decodes src completely at sampleRate and returns the
// interleaved samples together with the channel count. Mono sources
// stay mono.
func ReadAll(src Source, sampleRate int) ([]float32, int, error) {
	channels := src.Channels()
	if channels < 1 || channels > 2 {
		return nil, 0, ErrUnsupportedChannels
	}

	s, err := Conform(src, sampleRate)
	if err != nil {
		return nil, 0, err
	}
	out := make([]float32, 0, sampleRate*channels) // one second head start
	buf := make([]float32, 4096)

	for {
		n, err := s.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("decoding samples: %w", err)
		}
		if n == 0 {
			break
		}
	}

	// Drop a trailing partial frame if the decoder produced one.
	out = out[:len(out)/channels*channels]
	return out, channels, nil
}
