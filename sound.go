// SPDX-License-Identifier: EPL-2.0

package gamemix

import (
	"fmt"
	"os"

	"github.com/ik5/gamemix/codec"
	"github.com/ik5/gamemix/mix"
	"github.com/ik5/gamemix/pcm"
)

// PlayOptions configure one playback. The zero value plays silently;
// start from Defaults.
type PlayOptions struct {
	StartSec    float64 // offset into the source; out of range plays from 0
	Loops       int     // -1 infinite, 0 play once, n to loop n more times
	Volume      float64 // pre-pan, pre-group volume
	FadeSecs    float64 // > 0 fades in; <= 0 starts at full volume
	X, Y        float32
	MaxDistance float32 // 0 disables positional panning
	Group       int     // -1 for none
	Paused      bool    // start in the paused state
}

// Defaults are the PlayOptions of a plain Play call: full volume, no
// loop, no fade, no pan, no group.
func Defaults() PlayOptions {
	return PlayOptions{Volume: 1, Group: -1}
}

// Sound is a fully decoded sound effect plus its playback parameters.
// A Sound holds at most one channel at a time; playing it again first
// retires the previous voice with a short fade-out. Sound methods
// must not be called concurrently with each other or with Update.
type Sound struct {
	e   *Engine
	buf *pcm.Buffer
	ch  Channel

	volume      float64
	x, y        float32
	maxDistance float32
	group       int
}

// LoadSound decodes a whole file into memory. The format is picked by
// file extension from the engine's registry. Mono files stay mono.
func (e *Engine) LoadSound(path string) (*Sound, error) {
	dec, ok := e.codecs.Get(codec.Ext(path))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening sound file: %w", err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %q: %w", path, err)
	}
	defer src.Close()

	samples, channels, err := codec.ReadAll(src, e.Frequency())
	if err != nil {
		return nil, fmt.Errorf("decoding %q: %w", path, err)
	}

	buf, err := pcm.NewBuffer(samples, channels)
	if err != nil {
		return nil, fmt.Errorf("decoding %q: %w", path, err)
	}
	return e.NewSound(buf), nil
}

// NewSound wraps an already decoded buffer, for procedurally
// generated audio or custom loaders.
func (e *Engine) NewSound(buf *pcm.Buffer) *Sound {
	return &Sound{e: e, buf: buf, volume: 1, group: -1}
}

// PlaySound starts a voice over a sound's buffer with explicit
// options, retiring prior (if live) with a short fade-out first.
// This is the channel-level surface; the Sound methods are sugar
// over it. Playing a nil or freed sound returns ErrNotLoaded.
func (e *Engine) PlaySound(s *Sound, prior Channel, opt PlayOptions) (Channel, error) {
	if s == nil || s.buf == nil {
		return Channel{}, ErrNotLoaded
	}
	e.Stop(prior)

	startPos := int(opt.StartSec*float64(e.Frequency())) * s.buf.BlockSize()
	if startPos < 0 || startPos >= s.buf.Len() {
		startPos = 0
	}

	h := e.mixer.AddBuffer(s.buf, mix.Options{
		Loops:    opt.Loops,
		StartPos: startPos,
		FadeSecs: opt.FadeSecs,
		Paused:   opt.Paused,
		Params:   voiceParams(opt),
	})
	return Channel{h: h}, nil
}

func voiceParams(opt PlayOptions) mix.Params {
	return mix.Params{
		Volume:      opt.Volume,
		Group:       opt.Group,
		X:           opt.X,
		Y:           opt.Y,
		MaxDistance: opt.MaxDistance,
	}
}

func (s *Sound) options(sec, fade float64, loops int, paused bool) PlayOptions {
	return PlayOptions{
		StartSec:    sec,
		Loops:       loops,
		Volume:      s.volume,
		FadeSecs:    fade,
		X:           s.x,
		Y:           s.y,
		MaxDistance: s.maxDistance,
		Group:       s.group,
		Paused:      paused,
	}
}

// Play starts the sound from the beginning. loops: -1 infinite, 0
// once, n to loop n more times.
func (s *Sound) Play(loops int) Channel { return s.FadeInAt(0, 0, loops) }

// FadeIn is Play with a fade-in over fadeSecs seconds.
func (s *Sound) FadeIn(fadeSecs float64, loops int) Channel {
	return s.FadeInAt(0, fadeSecs, loops)
}

// PlayAt starts the sound sec seconds in.
func (s *Sound) PlayAt(sec float64, loops int) Channel { return s.FadeInAt(sec, 0, loops) }

// FadeInAt starts the sound sec seconds in with a fade-in. Playing a
// freed sound is a no-op returning the unset channel; use
// Engine.PlaySound to observe the error.
func (s *Sound) FadeInAt(sec, fadeSecs float64, loops int) Channel {
	s.ch, _ = s.e.PlaySound(s, s.ch, s.options(sec, fadeSecs, loops, false))
	return s.ch
}

// PlayPaused starts the sound in the paused state.
func (s *Sound) PlayPaused(loops int) Channel {
	s.ch, _ = s.e.PlaySound(s, s.ch, s.options(0, 0, loops, true))
	return s.ch
}

// Channel returns the sound's current channel; it may be finished.
func (s *Sound) Channel() Channel { return s.ch }

// Buffer returns the decoded samples.
func (s *Sound) Buffer() *pcm.Buffer { return s.buf }

// Duration of the sound in seconds.
func (s *Sound) Duration() float64 {
	if s.buf == nil {
		return 0
	}
	return s.buf.Duration(s.e.Frequency())
}

// Free halts playback and drops the decoded data.
func (s *Sound) Free() {
	s.Halt()
	s.buf = nil
}

func (s *Sound) Halt()                  { s.e.Halt(s.ch) }
func (s *Sound) Stop()                  { s.e.Stop(s.ch) }
func (s *Sound) FadeOut(secs float64)   { s.e.FadeOut(s.ch, secs) }
func (s *Sound) Pause()                 { s.e.Pause(s.ch) }
func (s *Sound) Unpause()               { s.e.Unpause(s.ch) }
func (s *Sound) IsPlaying() bool        { return s.e.IsPlaying(s.ch) }
func (s *Sound) IsPaused() bool         { return s.e.IsPaused(s.ch) }
func (s *Sound) SetLoopCount(loops int) { s.e.SetLoopCount(s.ch, loops) }

func (s *Sound) Volume() float64 { return s.volume }

// SetVolume changes the sound's volume, applied to a live voice on
// the next Update.
func (s *Sound) SetVolume(v float64) {
	s.volume = v
	s.e.SetVolume(s.ch, v)
}

func (s *Sound) Pos() (x, y float32) { return s.x, s.y }

func (s *Sound) SetPos(x, y float32) {
	s.x, s.y = x, y
	s.e.SetChannelPos(s.ch, x, y)
}

// MoveBy shifts the sound's position relatively.
func (s *Sound) MoveBy(dx, dy float32) { s.SetPos(s.x+dx, s.y+dy) }

func (s *Sound) MaxDistance() float32 { return s.maxDistance }

func (s *Sound) SetMaxDistance(d float32) {
	s.maxDistance = d
	s.e.SetMaxDistance(s.ch, d)
}

func (s *Sound) Group() int { return s.group }

func (s *Sound) SetGroup(group int) {
	s.group = group
	s.e.SetGroup(s.ch, group)
}

func (s *Sound) UnsetGroup() { s.SetGroup(-1) }
