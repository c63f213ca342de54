// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"fmt"
	"io"

	"github.com/ik5/gamemix/utils"
)

// resampleWin is the sliding-window capacity in frames. Refills read
// from the source in blocks of up to this size instead of one frame
// at a time, so decoder call overhead is paid per block.
const resampleWin = 512

// Resampler converts a Source to a target sample rate by Catmull-Rom
// interpolation over a sliding window of source frames. The window
// carries one frame of history across refills so the spline never
// restarts mid-stream. When downsampling, each tap is averaged with
// its successor, a two-point FIR with a zero at the source Nyquist,
// to suppress aliasing.
type Resampler struct {
	src      Source
	channels int
	dstRate  int
	step     float64 // source frames per output frame

	win    []float32 // interleaved window of source frames
	frames int       // whole frames resident in win
	pos    float64   // fractional read position in win, in frames
	eof    bool      // src is drained; win holds the tail
	smooth bool      // average neighbor taps when downsampling
}

// NewResampler wraps src so it delivers samples at dstRate. The
// source must be mono or stereo with a positive rate.
func NewResampler(src Source, dstRate int) (*Resampler, error) {
	channels := src.Channels()
	if channels < 1 || channels > 2 {
		return nil, ErrUnsupportedChannels
	}
	if src.SampleRate() <= 0 || dstRate <= 0 {
		return nil, fmt.Errorf("resampling %d Hz to %d Hz: %w",
			src.SampleRate(), dstRate, ErrBadRate)
	}

	step := float64(src.SampleRate()) / float64(dstRate)
	return &Resampler{
		src:      src,
		channels: channels,
		dstRate:  dstRate,
		step:     step,
		win:      make([]float32, resampleWin*channels),
		smooth:   step > 1,
	}, nil
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// refill slides the unread tail of the window (plus one history
// frame) to the front and block-reads source frames into the space
// behind it.
func (r *Resampler) refill() error {
	keepFrom := int(r.pos) - 1
	if keepFrom < 0 {
		keepFrom = 0
	}
	if keepFrom > r.frames {
		keepFrom = r.frames
	}
	if keepFrom > 0 {
		copy(r.win, r.win[keepFrom*r.channels:r.frames*r.channels])
		r.frames -= keepFrom
		r.pos -= float64(keepFrom)
	}

	for !r.eof && r.frames*r.channels < len(r.win) {
		n, err := r.src.ReadSamples(r.win[r.frames*r.channels:])
		r.frames += n / r.channels
		if err == io.EOF {
			r.eof = true
		} else if err != nil {
			return fmt.Errorf("%w", err)
		} else if n == 0 {
			break
		}
	}
	return nil
}

// tap is the value of window frame i on channel c, clamped to the
// window edges and smoothed when downsampling.
func (r *Resampler) tap(i, c int) float32 {
	if i < 0 {
		i = 0
	}
	if i >= r.frames {
		i = r.frames - 1
	}
	v := r.win[i*r.channels+c]
	if r.smooth && i+1 < r.frames {
		v = (v + r.win[(i+1)*r.channels+c]) * 0.5
	}
	return v
}

// ReadSamples produces dst samples at the target rate.
// dst length should be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	written := 0
	frames := len(dst) / r.channels

	for written < frames {
		// The spline needs frames i-1 .. i+2 resident.
		if int(r.pos)+2 >= r.frames && !r.eof {
			if err := r.refill(); err != nil {
				return written * r.channels, err
			}
		}

		i := int(r.pos)
		if i >= r.frames {
			// Source exhausted; the clamped taps covered the tail.
			if written == 0 {
				return 0, io.EOF
			}
			return written * r.channels, io.EOF
		}

		x := float32(r.pos - float64(i))
		for c := 0; c < r.channels; c++ {
			dst[written*r.channels+c] = utils.CubicInterpolate(
				r.tap(i-1, c), r.tap(i, c), r.tap(i+1, c), r.tap(i+2, c), x)
		}
		written++
		r.pos += r.step
	}

	return written * r.channels, nil
}
