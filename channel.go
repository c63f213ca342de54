// SPDX-License-Identifier: EPL-2.0

package gamemix

import "github.com/ik5/gamemix/mix"

// Channel identifies one playback started by a Play call. Channels
// stay safe forever: once the voice finishes, every operation on the
// channel is a no-op and the queries report it finished. The zero
// Channel is the unset sentinel and behaves like a finished voice.
type Channel struct {
	h mix.Handle
}

// None reports whether c is the unset sentinel.
func (c Channel) None() bool { return c.h.None() }

// Halt stops a channel immediately. The voice is reaped on the next
// Update.
func (e *Engine) Halt(c Channel) { e.mixer.Halt(c.h) }

// Stop fades a channel out over one callback period, the shortest
// click-free stop.
func (e *Engine) Stop(c Channel) { e.mixer.FadeOut(c.h, -1) }

// FadeOut fades a channel to silence over fade seconds. fade == 0
// halts; fade < 0 uses the minimum fade of one callback period.
func (e *Engine) FadeOut(c Channel, fade float64) { e.mixer.FadeOut(c.h, fade) }

// Pause ramps the channel down over the next callback and holds it.
// Pausing a paused channel is a no-op.
func (e *Engine) Pause(c Channel) { e.mixer.Pause(c.h) }

// Unpause resumes a paused channel with a ramp up over the next
// callback. Unpausing a playing channel is a no-op.
func (e *Engine) Unpause(c Channel) { e.mixer.Unpause(c.h) }

// IsPlaying reports whether the channel's voice still exists and has
// not finished. Paused channels count as playing.
func (e *Engine) IsPlaying(c Channel) bool { return e.mixer.IsPlaying(c.h) }

// IsPaused reports whether the channel is paused or ramping into the
// paused state.
func (e *Engine) IsPaused(c Channel) bool { return e.mixer.IsPaused(c.h) }

// IsFinished reports whether the channel's voice finished or was
// never started.
func (e *Engine) IsFinished(c Channel) bool { return e.mixer.IsFinished(c.h) }

// SetLoopCount changes the remaining loop count: -1 infinite, 0 to
// finish after the current pass, n to loop n more times.
func (e *Engine) SetLoopCount(c Channel, loops int) { e.mixer.SetLoopCount(c.h, loops) }

// SetVolume sets the channel's pre-pan, pre-group volume. Applied on
// the next Update.
func (e *Engine) SetVolume(c Channel, v float64) { e.mixer.SetVolume(c.h, v) }

// Volume returns the channel's volume, or 1 when the voice is gone.
func (e *Engine) Volume(c Channel) float64 { return e.mixer.Volume(c.h) }

// SetChannelPos moves the channel's sound source. Applied on the next
// Update.
func (e *Engine) SetChannelPos(c Channel, x, y float32) { e.mixer.SetPos(c.h, x, y) }

// ChannelPos returns the channel's sound source position.
func (e *Engine) ChannelPos(c Channel) (x, y float32) { return e.mixer.Pos(c.h) }

// SetMaxDistance sets the radius at which the channel becomes
// inaudible; 0 disables positional panning.
func (e *Engine) SetMaxDistance(c Channel, d float32) { e.mixer.SetMaxDistance(c.h, d) }

// SetGroup moves the channel into a volume group; -1 removes it.
func (e *Engine) SetGroup(c Channel, group int) { e.mixer.SetGroup(c.h, group) }
