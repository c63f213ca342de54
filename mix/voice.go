package mix

import (
	"github.com/ik5/gamemix/pcm"
)

type voiceKind uint8

const (
	kindBuffer voiceKind = iota
	kindStream
)

type voiceState uint8

const (
	statePlaying voiceState = iota
	stateFinished
	statePaused
	statePausing
	stateUnpausing
)

// Params are the host-controlled playback parameters of a voice. The
// update tick folds them together with the master volume, group table
// and listener into the voice's target gain and relative position.
type Params struct {
	Volume      float64
	Group       int // -1 for none
	X, Y        float32
	MaxDistance float32 // <= 0 disables positional panning
}

// voice is one active playback. All fields are guarded by the mixer
// mutex; the stream buffer it points at has its own locking.
type voice struct {
	kind   voiceKind
	buffer *pcm.Buffer
	stream *pcm.StreamBuffer

	pos       int // sample cursor in the presented source block
	loopCount int // -1 infinite, 0 play once, n to loop n more times
	state     voiceState

	fadeTotal float64 // fade length in sec, negative for fadeout
	fadeTime  float64 // elapsed for fadein, remaining for fadeout

	lvol, rvol float64 // last applied left/right gain
	newVolume  float64 // target gain before the pan split

	x, y float32 // position relative to listener, in max-distance units

	seq    uint64 // mix callback sequence the voice was added during
	params Params
}

func (v *voice) playing() bool       { return v.state == statePlaying }
func (v *voice) finished() bool      { return v.state == stateFinished }
func (v *voice) paused() bool        { return v.state == statePaused }
func (v *voice) pausing() bool       { return v.state == statePausing }
func (v *voice) unpausing() bool     { return v.state == stateUnpausing }
func (v *voice) pauseChanging() bool { return v.pausing() || v.unpausing() }

func (v *voice) fading() bool    { return v.fadeTotal != 0 }
func (v *voice) fadingIn() bool  { return v.fadeTotal > 0 }
func (v *voice) fadingOut() bool { return v.fadeTotal < 0 }

// mixable voices produce samples this callback.
func (v *voice) mixable() bool { return v.playing() || v.pauseChanging() }

func (v *voice) setFadein(fade, callbackSecs float64) {
	switch {
	case fade <= 0:
		v.fadeTotal = 0
	case fade > callbackSecs:
		v.fadeTotal = fade
	default:
		v.fadeTotal = callbackSecs
	}
	v.fadeTime = 0
}

// setFadeout arms a fadeout; fade < 0 means the minimum fade of one
// callback period. fade == 0 clears any fade.
func (v *voice) setFadeout(fade, callbackSecs float64) {
	if fade == 0 {
		v.fadeTotal = 0
		v.fadeTime = 0
		return
	}
	if fade > callbackSecs {
		v.fadeTotal = -fade
		v.fadeTime = fade
	} else {
		v.fadeTotal = -callbackSecs
		v.fadeTime = callbackSecs
	}
}

func (v *voice) unsetFade() {
	v.fadeTotal = 0
	v.fadeTime = 0
}

// decrementLoop counts one pass over the source; crossing zero
// finishes the voice.
func (v *voice) decrementLoop() {
	if v.loopCount == 0 {
		v.state = stateFinished
	} else if v.loopCount > 0 {
		v.loopCount--
	}
}
