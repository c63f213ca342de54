// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"fmt"
	"sync"

	"github.com/ik5/gamemix/codec"
)

/*
Locking:

No lock required: totalTime, channels, fullyBuffered, freq.

mu:
  read/write: time, data, size, endPos

mu2:
  write: time2, data2, size2, endPos2, posSet, errFlag
  read: everything except data

Advance/UpdatePos/SwapBuffers take mu2 then mu (fixed order).
ReadMore/SetPos take only mu2.
*/

// StreamBuffer double-buffers decoded samples for one stream: the
// primary side is consumed by the mixer while a decoder goroutine
// fills the secondary via ReadMore. A swap exchanges the two.
type StreamBuffer struct {
	src      codec.StreamSource
	freq     int
	channels int

	totalTime     float64
	fullyBuffered bool // whole stream fit into the primary

	backing []float32

	mu     sync.Mutex
	data   []float32 // primary side of backing
	size   int       // samples filled in data
	time   float64   // stream time at start of primary, seconds
	endPos int       // one past the stream end in data, or -1

	mu2     sync.Mutex
	data2   []float32
	size2   int
	time2   float64
	endPos2 int
	posSet  bool // secondary was filled by SetPos, not ReadMore
	errFlag bool // last fill failed
}

// Each side holds half a second of output.
func sideSamples(freq, channels int) int {
	return freq / 2 * channels
}

// Open creates a stream buffer over src and synchronously fills the
// primary starting at sec, so playback from that position never blocks
// later. When the whole stream fits into one side it is read in full
// and no swapping ever happens.
func Open(src codec.StreamSource, freq int, sec float64) (*StreamBuffer, error) {
	channels := src.Channels()
	if channels < 1 || channels > 2 {
		return nil, ErrBadChannels
	}

	side := sideSamples(freq, channels)
	sb := &StreamBuffer{
		src:       src,
		freq:      freq,
		channels:  channels,
		totalTime: src.TotalTime(),
		backing:   make([]float32, side*2),
		endPos:    -1,
		endPos2:   -1,
	}
	sb.data = sb.backing[:side]
	sb.data2 = sb.backing[side:]

	fill := sb.data
	totalSamples := int(sb.totalTime*float64(freq)) * channels
	if totalSamples <= side {
		// Read the full file into the first side without wrapping.
		sb.fullyBuffered = true
		sec = 0
		fill = sb.backing
	}

	if sec < 0 || sec >= sb.totalTime {
		sec = 0
	}
	if err := src.Seek(sec); err != nil {
		return nil, fmt.Errorf("seeking stream: %w", err)
	}

	n, endPos, err := src.Fill(fill, sb.fullyBuffered)
	if n == 0 {
		if err != nil {
			return nil, fmt.Errorf("priming stream: %w", err)
		}
		return nil, ErrEmptyStream
	}

	sb.size = n
	sb.time = sec
	sb.endPos = endPos
	if sb.fullyBuffered && sb.endPos == -1 {
		sb.endPos = n
	}
	return sb, nil
}

// Close releases the decoder resources. Must not be called while a
// ReadMore goroutine is running or a voice still reads the buffer.
func (sb *StreamBuffer) Close() error { return sb.src.Close() }

// TotalTime is the stream duration in seconds.
func (sb *StreamBuffer) TotalTime() float64 { return sb.totalTime }

// Channels returns 1 for mono, 2 for stereo.
func (sb *StreamBuffer) Channels() int { return sb.channels }

// BlockSize is the number of samples in one frame.
func (sb *StreamBuffer) BlockSize() int { return sb.channels }

// FullyBuffered reports whether the whole stream sits in the primary.
// ReadMore and SetPos do nothing when true.
func (sb *StreamBuffer) FullyBuffered() bool { return sb.fullyBuffered }

// Data returns the primary samples. Only the mixer and Update may call
// this; the slice is invalidated by a successful swap.
func (sb *StreamBuffer) Data() []float32 { return sb.data[:sb.size] }

// Size is the number of samples in the primary.
func (sb *StreamBuffer) Size() int { return sb.size }

// EndPos is the offset one past the last sample of the stream in the
// primary, 0 if the end was hit immediately by the last fill, or -1 if
// the end is not in the primary.
func (sb *StreamBuffer) EndPos() int { return sb.endPos }

// Time is the stream time at the start of the primary, in seconds.
func (sb *StreamBuffer) Time() float64 {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.time
}

// StartPos returns the offset of the stream's first sample in the
// primary, or -1 if the start is not buffered.
func (sb *StreamBuffer) StartPos() int {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if sb.time == 0 {
		return 0
	}
	if sb.endPos != -1 && sb.endPos != sb.size {
		return sb.endPos
	}
	return -1
}

// PosAt returns the offset of the sample at sec seconds in the
// primary, or -1 if that position is not buffered.
func (sb *StreamBuffer) PosAt(sec float64) int {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	pos := int((sec-sb.time)*float64(sb.freq)) * sb.channels
	if pos < 0 || pos > sb.size {
		return -1
	}
	return pos
}

// calcTime derives the secondary's start time after a plain fill.
// Called with mu2 held.
func (sb *StreamBuffer) calcTime() {
	switch {
	case sb.endPos2 != -1:
		if sb.endPos2 == 0 {
			// End of stream hit immediately: the side is the start.
			sb.time2 = 0
			return
		}
		endFrames := sb.endPos2 / sb.channels
		sb.time2 = sb.totalTime - float64(endFrames)/float64(sb.freq)
	case sb.endPos != -1:
		if sb.endPos == sb.size {
			// End was exactly at the primary's edge, so the secondary
			// is the stream start.
			sb.time2 = 0
			return
		}
		pastStart := (sb.size - sb.endPos) / sb.channels
		sb.time2 = float64(pastStart) / float64(sb.freq)
	default:
		frames := sb.size / sb.channels
		sb.time2 = sb.time + float64(frames)/float64(sb.freq)
	}
}

// ReadMore fills the secondary with the next run of decoded samples,
// continuing where the primary logically ends and wrapping seamlessly
// across the stream end. It runs on a decoder goroutine and never on
// the audio callback. Returns false if the fill failed.
func (sb *StreamBuffer) ReadMore() bool {
	if sb.fullyBuffered {
		return true
	}

	sb.mu2.Lock()
	defer sb.mu2.Unlock()

	if sb.size2 > 0 {
		return true // already has data
	}
	if sb.errFlag {
		return false // failed last read, so will fail again
	}

	n, endPos, err := sb.src.Fill(sb.data2, false)
	if n > 0 {
		sb.size2 = n
		sb.endPos2 = endPos
		sb.calcTime()
		return true
	}
	_ = err
	sb.errFlag = true
	return false
}

// SetPos fills the secondary starting at sec seconds. With swapNow the
// swap happens inside the call, for load paths where no data is live
// yet. Returns false if seeking or reading failed.
func (sb *StreamBuffer) SetPos(sec float64, swapNow bool) bool {
	if sb.fullyBuffered {
		return true
	}

	sb.mu2.Lock()
	defer sb.mu2.Unlock()

	// Unset previous secondary data.
	sb.size2 = 0
	sb.endPos2 = -1
	sb.time2 = 0
	sb.posSet = false
	sb.errFlag = true

	if sec < 0 || sec >= sb.totalTime {
		sec = 0
	}
	if err := sb.src.Seek(sec); err != nil {
		return false
	}

	n, endPos, _ := sb.src.Fill(sb.data2, false)
	if n == 0 {
		return false
	}

	sb.size2 = n
	sb.endPos2 = endPos
	sb.time2 = sec
	sb.posSet = true
	if swapNow {
		sb.swap()
	}
	sb.errFlag = false
	return true
}

type swapMode uint8

const (
	swapAdvance swapMode = iota
	swapUpdatePos
	swapAny
)

// Advance swaps only if the secondary came from ReadMore: the normal
// end-of-primary transition during mixing. Non-blocking.
func (sb *StreamBuffer) Advance() Result { return sb.trySwap(swapAdvance, false) }

// UpdatePos swaps only if the secondary came from SetPos. Non-blocking.
func (sb *StreamBuffer) UpdatePos() Result { return sb.trySwap(swapUpdatePos, false) }

// SwapBuffers swaps if the secondary has any data. Non-blocking.
func (sb *StreamBuffer) SwapBuffers() Result { return sb.trySwap(swapAny, false) }

// SwapBuffersWait is SwapBuffers but waits for a running fill instead
// of reporting NotReady. Host-thread use only.
func (sb *StreamBuffer) SwapBuffersWait() Result { return sb.trySwap(swapAny, true) }

func (sb *StreamBuffer) trySwap(mode swapMode, blocking bool) Result {
	if sb.fullyBuffered {
		return Ready
	}

	if blocking {
		sb.mu2.Lock()
	} else if !sb.mu2.TryLock() {
		return NotReady
	}
	defer sb.mu2.Unlock()

	switch mode {
	case swapAdvance:
		if sb.size2 > 0 && !sb.posSet {
			sb.swap()
			return Ready
		}
		if sb.errFlag {
			return Error
		}
		if sb.posSet {
			return PosSet
		}
		return NoData
	case swapUpdatePos:
		if sb.posSet { // posSet implies size2 > 0
			sb.swap()
			return Ready
		}
		if sb.errFlag {
			return Error
		}
		return PosNotSet
	default:
		if sb.size2 > 0 {
			sb.swap()
			return Ready
		}
		if sb.errFlag {
			return Error
		}
		return NoData
	}
}

// swap exchanges the sides. Called with mu2 held.
func (sb *StreamBuffer) swap() {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	sb.time = sb.time2
	sb.time2 = 0
	sb.endPos = sb.endPos2
	sb.endPos2 = -1
	sb.data, sb.data2 = sb.data2, sb.data
	sb.size = sb.size2
	sb.size2 = 0
	sb.posSet = false
}
