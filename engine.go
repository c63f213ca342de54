// SPDX-License-Identifier: EPL-2.0

package gamemix

import (
	"fmt"

	"github.com/ik5/gamemix/codec"
	"github.com/ik5/gamemix/codec/aiff"
	"github.com/ik5/gamemix/codec/mp3"
	"github.com/ik5/gamemix/codec/vorbis"
	"github.com/ik5/gamemix/codec/wav"
	"github.com/ik5/gamemix/mix"
)

// Format selects the device sample format. Mixing happens in float32
// either way; FormatInt16 converts at the output edge.
type Format int

const (
	FormatFloat32 Format = iota
	FormatInt16
)

// Engine is one mixer instance: a voice table, a decoder registry and
// the output configuration. All Engine methods are safe for
// concurrent use; Update must be serialized by the host against load
// and play calls on the same objects.
type Engine struct {
	mixer  *mix.Mixer
	codecs *codec.Registry
	format Format
}

// NewEngine creates an engine producing interleaved stereo blocks of
// blockFrames frames at freq Hz. The default decoder registry handles
// wav, ogg, mp3, aiff and aif files.
func NewEngine(freq, blockFrames int, format Format) (*Engine, error) {
	if freq <= 0 {
		return nil, fmt.Errorf("%w: frequency %d", ErrInitFailed, freq)
	}
	if blockFrames <= 0 {
		return nil, fmt.Errorf("%w: block size %d", ErrInitFailed, blockFrames)
	}
	if format != FormatFloat32 && format != FormatInt16 {
		return nil, fmt.Errorf("%w: unknown format %d", ErrInitFailed, format)
	}

	reg := codec.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.RegisterStream("wav", wav.Opener{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.RegisterStream("ogg", vorbis.Opener{})
	reg.Register("mp3", mp3.Decoder{})
	reg.RegisterStream("mp3", mp3.Opener{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})

	return &Engine{
		mixer:  mix.NewMixer(freq, blockFrames),
		codecs: reg,
		format: format,
	}, nil
}

// Shutdown drops every voice and invalidates all channels. Sounds and
// streams loaded from this engine must be dropped before a new engine
// is created.
func (e *Engine) Shutdown() { e.mixer.Shutdown() }

// Update is the host-side tick: it reaps finished voices, folds the
// current sound parameters, group volumes and listener position into
// every live voice, and completes stream swaps the audio callback
// could not perform. Call it periodically, typically once per frame.
func (e *Engine) Update() { e.mixer.Update() }

// Frequency is the output sample rate in Hz.
func (e *Engine) Frequency() int { return e.mixer.Frequency() }

// Channels is the output channel count, always 2.
func (e *Engine) Channels() int { return 2 }

// Format is the device sample format chosen at creation.
func (e *Engine) Format() Format { return e.format }

// BlockFrames is the frame count of one full output block.
func (e *Engine) BlockFrames() int { return e.mixer.BlockFrames() }

// NumberPlaying counts live voices, including finished ones that have
// not been reaped by Update yet.
func (e *Engine) NumberPlaying() int { return e.mixer.NumberPlaying() }

// Codecs exposes the decoder registry so hosts can add formats.
func (e *Engine) Codecs() *codec.Registry { return e.codecs }

func (e *Engine) MasterVolume() float64       { return e.mixer.MasterVolume() }
func (e *Engine) SetMasterVolume(v float64)   { e.mixer.SetMasterVolume(v) }
func (e *Engine) ListenerPos() (x, y float32) { return e.mixer.ListenerPos() }
func (e *Engine) SetListenerPos(x, y float32) { e.mixer.SetListenerPos(x, y) }

// CreateGroup allocates a volume group at unity gain. Group IDs stay
// valid until Shutdown; group -1 means no group.
func (e *Engine) CreateGroup() int { return e.mixer.CreateGroup() }

func (e *Engine) SetGroupVolume(group int, v float64) { e.mixer.SetGroupVolume(group, v) }

func (e *Engine) GroupVolume(group int) float64 { return e.mixer.GroupVolume(group) }

// SetFinishedFunc installs a callback fired on the audio goroutine
// whenever a voice finishes during mixing. Keep it cheap.
func (e *Engine) SetFinishedFunc(fn func(Channel)) {
	if fn == nil {
		e.mixer.SetFinishedFunc(nil)
		return
	}
	e.mixer.SetFinishedFunc(func(h mix.Handle) { fn(Channel{h: h}) })
}

// ReadFloat32 produces the next output block. This is the device
// callback body for FormatFloat32 engines.
func (e *Engine) ReadFloat32(dst []float32) { e.mixer.ReadFloat32(dst) }

// ReadInt16 produces the next output block for FormatInt16 engines.
func (e *Engine) ReadInt16(dst []int16) { e.mixer.ReadInt16(dst) }
