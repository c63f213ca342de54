// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"fmt"
	"io"
)

// SeekSource is a Source that can reposition by time. Format packages
// implement it for containers that support streaming.
type SeekSource interface {
	Source
	// SeekTime positions the next read at sec seconds from the start.
	SeekTime(sec float64) error
	// TotalTime is the stream duration in seconds.
	TotalTime() float64
}

// Fill stops once less than this many frames of room remain, so short
// decoder reads near the end of a buffer don't loop forever.
const minFillFrames = 64

// stream adapts a SeekSource into a StreamSource, resampling when the
// source rate differs from the requested output rate.
type stream struct {
	base SeekSource
	rate int
	cur  Source // base, or a resampler over base
}

// NewStreamSource builds a StreamSource delivering samples at
// sampleRate from base. The resampling stage, if any, is rebuilt on
// every seek and end-of-stream wrap so interpolation state never leaks
// across a discontinuity in the source.
func NewStreamSource(base SeekSource, sampleRate int) (StreamSource, error) {
	channels := base.Channels()
	if channels < 1 || channels > 2 {
		return nil, ErrUnsupportedChannels
	}
	s := &stream{base: base, rate: sampleRate}
	if err := s.rebuild(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *stream) rebuild() error {
	cur, err := Conform(s.base, s.rate)
	if err != nil {
		return err
	}
	s.cur = cur
	return nil
}

func (s *stream) TotalTime() float64 { return s.base.TotalTime() }
func (s *stream) Channels() int      { return s.base.Channels() }
func (s *stream) Close() error       { return s.base.Close() }

func (s *stream) Seek(sec float64) error {
	if err := s.base.SeekTime(sec); err != nil {
		return fmt.Errorf("seeking source: %w", err)
	}
	return s.rebuild()
}

func (s *stream) Fill(dst []float32, stopAtEOF bool) (int, int, error) {
	channels := s.base.Channels()
	endPos := -1
	n := 0

	for len(dst)-n >= minFillFrames*channels {
		m, err := s.cur.ReadSamples(dst[n:])
		m = m / channels * channels // whole frames only
		n += m

		if err == io.EOF {
			if endPos != -1 {
				// A second end can't be marked; leave it for the
				// next call.
				break
			}
			endPos = n
			if stopAtEOF {
				break
			}
			if err := s.base.SeekTime(0); err != nil {
				return n, endPos, fmt.Errorf("rewinding source: %w", err)
			}
			if err := s.rebuild(); err != nil {
				return n, endPos, err
			}
			continue
		}
		if err != nil {
			return n, endPos, err
		}
		if m == 0 {
			break
		}
	}

	return n, endPos, nil
}
