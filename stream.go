// SPDX-License-Identifier: EPL-2.0

package gamemix

import (
	"fmt"
	"log/slog"

	"github.com/ik5/gamemix/codec"
	"github.com/ik5/gamemix/mix"
	"github.com/ik5/gamemix/pcm"
)

// Stream is a long audio file played through the double-buffered
// stream reader instead of being decoded whole. Like Sound, a Stream
// holds at most one channel at a time, but replaying halts the
// previous voice instantly: two voices cannot share one stream
// buffer. Stream methods must not be called concurrently with each
// other or with Update.
type Stream struct {
	e  *Engine
	sb *pcm.StreamBuffer
	ch Channel

	volume      float64
	x, y        float32
	maxDistance float32
	group       int
}

// LoadStream opens a file for streamed playback, priming the first
// half second from startSec so playback begins without blocking. The
// format is picked by file extension; it must have stream support
// (wav, ogg and mp3 do).
func (e *Engine) LoadStream(path string, startSec float64) (*Stream, error) {
	opener, ok := e.codecs.GetStream(codec.Ext(path))
	if !ok {
		if _, whole := e.codecs.Get(codec.Ext(path)); whole {
			return nil, fmt.Errorf("%w: %q", ErrNoStreamSupport, path)
		}
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}

	src, err := opener.OpenStream(path, e.Frequency())
	if err != nil {
		return nil, fmt.Errorf("opening stream %q: %w", path, err)
	}

	st, err := e.NewStream(src, startSec)
	if err != nil {
		src.Close()
		return nil, fmt.Errorf("buffering stream %q: %w", path, err)
	}
	return st, nil
}

// NewStream builds a stream over any stream source, for custom
// decoders or generated audio.
func (e *Engine) NewStream(src codec.StreamSource, startSec float64) (*Stream, error) {
	sb, err := pcm.Open(src, e.Frequency(), startSec)
	if err != nil {
		return nil, err
	}

	st := &Stream{e: e, sb: sb, volume: 1, group: -1}
	st.readMore()
	return st, nil
}

// readMore primes the secondary side on a detached goroutine.
func (st *Stream) readMore() {
	sb := st.sb
	go func() {
		if !sb.ReadMore() {
			slog.Debug("stream secondary fill failed")
		}
	}()
}

// PlayStream starts a voice over a stream with explicit options. Any
// prior voice on the stream is halted first. The call blocks only
// when the requested start is not already buffered. Playing a nil or
// freed stream returns ErrNotLoaded; a failed reposition returns
// ErrStreamRead.
func (e *Engine) PlayStream(st *Stream, prior Channel, opt PlayOptions) (Channel, error) {
	if st == nil || st.sb == nil {
		return Channel{}, ErrNotLoaded
	}
	e.Halt(prior)

	sec := opt.StartSec
	if sec < 0 || sec >= st.sb.TotalTime() {
		sec = 0
	}

	startPos := st.sb.PosAt(sec)
	if startPos == -1 {
		// Not buffered: read the stream at the new position into the
		// primary, then prime the secondary again.
		if !st.sb.SetPos(sec, true) {
			return Channel{}, fmt.Errorf("repositioning to %.2fs: %w", sec, ErrStreamRead)
		}
		st.readMore()
		startPos = 0
	}

	h := e.mixer.AddStream(st.sb, mix.Options{
		Loops:    opt.Loops,
		StartPos: startPos,
		FadeSecs: opt.FadeSecs,
		Paused:   opt.Paused,
		Params:   voiceParams(opt),
	})
	return Channel{h: h}, nil
}

func (st *Stream) options(sec, fade float64, loops int, paused bool) PlayOptions {
	return PlayOptions{
		StartSec:    sec,
		Loops:       loops,
		Volume:      st.volume,
		FadeSecs:    fade,
		X:           st.x,
		Y:           st.y,
		MaxDistance: st.maxDistance,
		Group:       st.group,
		Paused:      paused,
	}
}

// Play starts the stream from the beginning.
func (st *Stream) Play(loops int) Channel { return st.FadeInAt(0, 0, loops) }

// FadeIn is Play with a fade-in over fadeSecs seconds.
func (st *Stream) FadeIn(fadeSecs float64, loops int) Channel {
	return st.FadeInAt(0, fadeSecs, loops)
}

// PlayAt starts the stream sec seconds in; out-of-range times map to
// the beginning.
func (st *Stream) PlayAt(sec float64, loops int) Channel { return st.FadeInAt(sec, 0, loops) }

// FadeInAt starts the stream sec seconds in with a fade-in. Playing a
// freed stream is a no-op returning the unset channel; use
// Engine.PlayStream to observe the error.
func (st *Stream) FadeInAt(sec, fadeSecs float64, loops int) Channel {
	st.ch, _ = st.e.PlayStream(st, st.ch, st.options(sec, fadeSecs, loops, false))
	return st.ch
}

// PlayPaused starts the stream in the paused state.
func (st *Stream) PlayPaused(loops int) Channel {
	st.ch, _ = st.e.PlayStream(st, st.ch, st.options(0, 0, loops, true))
	return st.ch
}

// Channel returns the stream's current channel; it may be finished.
func (st *Stream) Channel() Channel { return st.ch }

// Duration of the stream in seconds.
func (st *Stream) Duration() float64 {
	if st.sb == nil {
		return 0
	}
	return st.sb.TotalTime()
}

// Free halts playback and closes the decoder. The stream cannot be
// played again.
func (st *Stream) Free() error {
	st.Halt()
	if st.sb == nil {
		return nil
	}
	err := st.sb.Close()
	st.sb = nil
	if err != nil {
		return fmt.Errorf("closing stream: %w", err)
	}
	return nil
}

func (st *Stream) Halt()                  { st.e.Halt(st.ch) }
func (st *Stream) Stop()                  { st.e.Stop(st.ch) }
func (st *Stream) FadeOut(secs float64)   { st.e.FadeOut(st.ch, secs) }
func (st *Stream) Pause()                 { st.e.Pause(st.ch) }
func (st *Stream) Unpause()               { st.e.Unpause(st.ch) }
func (st *Stream) IsPlaying() bool        { return st.e.IsPlaying(st.ch) }
func (st *Stream) IsPaused() bool         { return st.e.IsPaused(st.ch) }
func (st *Stream) SetLoopCount(loops int) { st.e.SetLoopCount(st.ch, loops) }

func (st *Stream) Volume() float64 { return st.volume }

func (st *Stream) SetVolume(v float64) {
	st.volume = v
	st.e.SetVolume(st.ch, v)
}

func (st *Stream) Pos() (x, y float32) { return st.x, st.y }

func (st *Stream) SetPos(x, y float32) {
	st.x, st.y = x, y
	st.e.SetChannelPos(st.ch, x, y)
}

// MoveBy shifts the stream's position relatively.
func (st *Stream) MoveBy(dx, dy float32) { st.SetPos(st.x+dx, st.y+dy) }

func (st *Stream) MaxDistance() float32 { return st.maxDistance }

func (st *Stream) SetMaxDistance(d float32) {
	st.maxDistance = d
	st.e.SetMaxDistance(st.ch, d)
}

func (st *Stream) Group() int { return st.group }

func (st *Stream) SetGroup(group int) {
	st.group = group
	st.e.SetGroup(st.ch, group)
}

func (st *Stream) UnsetGroup() { st.SetGroup(-1) }
