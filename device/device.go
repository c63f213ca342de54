// SPDX-License-Identifier: EPL-2.0

package device

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/ebitengine/oto/v3"

	"github.com/ik5/gamemix"
)

// Player pumps mixed blocks from an engine to the default audio
// output via oto. The oto player pulls from an io.Reader on its own
// goroutine; that pull is the engine's device callback.
type Player struct {
	ctx    *oto.Context
	player *oto.Player
}

// NewPlayer opens the default audio device matching the engine's
// sample rate and format. Call Play to start pumping; playback of
// individual sounds is controlled entirely through the engine.
func NewPlayer(e *gamemix.Engine) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   e.Frequency(),
		ChannelCount: e.Channels(),
	}
	switch e.Format() {
	case gamemix.FormatFloat32:
		op.Format = oto.FormatFloat32LE
	case gamemix.FormatInt16:
		op.Format = oto.FormatSignedInt16LE
	default:
		return nil, fmt.Errorf("%w: unknown engine format", gamemix.ErrInitFailed)
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}
	<-ready

	p := &Player{
		ctx:    ctx,
		player: ctx.NewPlayer(newBlockReader(e)),
	}
	return p, nil
}

// Play starts (or resumes) pulling blocks from the engine.
func (p *Player) Play() { p.player.Play() }

// Pause stops pulling; the engine and its voices are untouched.
func (p *Player) Pause() { p.player.Pause() }

// IsPlaying reports whether the device is currently pulling.
func (p *Player) IsPlaying() bool { return p.player.IsPlaying() }

// Close releases the device player.
func (p *Player) Close() error {
	if err := p.player.Close(); err != nil {
		return fmt.Errorf("closing audio device: %w", err)
	}
	return nil
}

// blockReader adapts the engine's block producer to the io.Reader the
// oto player consumes, encoding samples little-endian.
type blockReader struct {
	e     *gamemix.Engine
	fbuf  []float32
	ibuf  []int16
	bytes int // bytes per sample on the wire
}

func newBlockReader(e *gamemix.Engine) io.Reader {
	r := &blockReader{e: e}
	if e.Format() == gamemix.FormatFloat32 {
		r.fbuf = make([]float32, e.BlockFrames()*2)
		r.bytes = 4
	} else {
		r.ibuf = make([]int16, e.BlockFrames()*2)
		r.bytes = 2
	}
	return r
}

func (r *blockReader) Read(p []byte) (int, error) {
	samples := len(p) / r.bytes
	if samples == 0 {
		return 0, nil
	}
	if max := r.e.BlockFrames() * 2; samples > max {
		samples = max
	}
	samples = samples / 2 * 2 // whole frames only

	if r.fbuf != nil {
		block := r.fbuf[:samples]
		r.e.ReadFloat32(block)
		return encodeFloat32(p, block), nil
	}

	block := r.ibuf[:samples]
	r.e.ReadInt16(block)
	return encodeInt16(p, block), nil
}

func encodeFloat32(dst []byte, src []float32) int {
	for i, s := range src {
		binary.LittleEndian.PutUint32(dst[4*i:], math.Float32bits(s))
	}
	return len(src) * 4
}

func encodeInt16(dst []byte, src []int16) int {
	for i, s := range src {
		binary.LittleEndian.PutUint16(dst[2*i:], uint16(s))
	}
	return len(src) * 2
}
