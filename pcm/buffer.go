// SPDX-License-Identifier: EPL-2.0

package pcm

// Buffer holds the fully decoded samples of one sound: interleaved
// float32, mono or stereo, at the mixer's output rate. Buffers are
// immutable after construction and may be shared by any number of
// voices without locking.
type Buffer struct {
	data     []float32
	channels int
}

// NewBuffer wraps data as a Buffer. data must be non-empty and hold a
// whole number of frames for the given channel count.
func NewBuffer(data []float32, channels int) (*Buffer, error) {
	if channels < 1 || channels > 2 {
		return nil, ErrBadChannels
	}
	if len(data) == 0 {
		return nil, ErrEmptyBuffer
	}
	if len(data)%channels != 0 {
		return nil, ErrPartialFrame
	}
	return &Buffer{data: data, channels: channels}, nil
}

// Data returns the sample data. Callers must not modify it.
func (b *Buffer) Data() []float32 { return b.data }

// Len is the total sample count (frames times channels).
func (b *Buffer) Len() int { return len(b.data) }

// Channels returns 1 for mono, 2 for stereo.
func (b *Buffer) Channels() int { return b.channels }

// BlockSize is the number of samples in one frame.
func (b *Buffer) BlockSize() int { return b.channels }

// Duration of the buffer in seconds at the given sample rate.
func (b *Buffer) Duration(sampleRate int) float64 {
	return float64(len(b.data)/b.channels) / float64(sampleRate)
}
