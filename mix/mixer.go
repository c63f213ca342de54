// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"sync"

	"github.com/ik5/gamemix/pcm"
	"github.com/ik5/gamemix/utils"
)

// Mixer is the block producer: each Read call sums every mixable
// voice into one interleaved stereo block.
//
// Two locks order all access. cb excludes the whole callback against
// Update (with the stream swaps it forces) and Shutdown, like an audio
// device lock; voice addition takes only mu.
// mu guards the voice table and shared parameters; the callback takes
// it per voice and releases it for the heavy ramp and mix work, so
// host calls interleave with a running callback.
type Mixer struct {
	freq         int
	blockSamples int // samples per full callback block (frames * 2)
	callbackSecs float64

	cb sync.Mutex
	mu sync.Mutex

	reg      registry
	groups   []float64
	master   float64
	listener struct{ x, y float32 }

	seq      uint64
	scratch  []float32
	master16 []float32

	finished func(Handle)
}

// NewMixer creates a mixer producing blocks of blockFrames stereo
// frames at the given sample rate.
func NewMixer(freq, blockFrames int) *Mixer {
	m := &Mixer{
		freq:         freq,
		blockSamples: blockFrames * 2,
		callbackSecs: float64(blockFrames) / float64(freq),
		master:       1,
	}
	m.scratch = make([]float32, m.blockSamples)
	return m
}

// Frequency is the output sample rate in Hz.
func (m *Mixer) Frequency() int { return m.freq }

// BlockFrames is the stereo frame count of one full callback block.
func (m *Mixer) BlockFrames() int { return m.blockSamples / 2 }

// CallbackSecs is the seconds of audio one full block covers.
func (m *Mixer) CallbackSecs() float64 { return m.callbackSecs }

// SetFinishedFunc installs a callback invoked (outside the mixer
// mutex, on the audio goroutine) whenever a voice finishes during a
// Read.
func (m *Mixer) SetFinishedFunc(fn func(Handle)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finished = fn
}

//
// Groups, listener, master volume
//

func (m *Mixer) MasterVolume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.master
}

func (m *Mixer) SetMasterVolume(volume float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.master = volume
}

func (m *Mixer) ListenerPos() (x, y float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listener.x, m.listener.y
}

func (m *Mixer) SetListenerPos(x, y float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listener.x = x
	m.listener.y = y
}

// CreateGroup allocates a new volume group at volume 1. Group IDs are
// never invalidated.
func (m *Mixer) CreateGroup() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.groups = append(m.groups, 1)
	return len(m.groups) - 1
}

func (m *Mixer) SetGroupVolume(group int, volume float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if group >= 0 && group < len(m.groups) {
		m.groups[group] = volume
	}
}

func (m *Mixer) GroupVolume(group int) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if group >= 0 && group < len(m.groups) {
		return m.groups[group]
	}
	return 1
}

// NumberPlaying counts live voices. Finished voices that have not
// been swept yet are included.
func (m *Mixer) NumberPlaying() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reg.live
}

//
// Voice creation
//

// Options configure a new voice.
type Options struct {
	Loops    int // -1 infinite, 0 play once, n to loop n more times
	StartPos int // sample offset into the presented source block
	FadeSecs float64
	Paused   bool
	Params   Params
}

// AddBuffer starts a voice over a whole decoded sound. The voice is
// picked up by the first Read that begins after the call returns; a
// Read already in progress skips it.
func (m *Mixer) AddBuffer(buf *pcm.Buffer, opts Options) Handle {
	v := voice{
		kind:      kindBuffer,
		buffer:    buf,
		loopCount: opts.Loops,
		pos:       opts.StartPos,
	}
	if v.pos < 0 || v.pos >= buf.Len() {
		v.pos = 0
	}
	v.pos = v.pos / buf.BlockSize() * buf.BlockSize()
	return m.addVoice(v, opts)
}

// AddStream starts a voice over a stream buffer. StartPos must be a
// valid offset in the primary side.
func (m *Mixer) AddStream(sb *pcm.StreamBuffer, opts Options) Handle {
	v := voice{
		kind:      kindStream,
		stream:    sb,
		loopCount: opts.Loops,
		pos:       opts.StartPos,
	}
	if v.pos < 0 || v.pos > sb.Size() {
		v.pos = 0
	}
	return m.addVoice(v, opts)
}

func (m *Mixer) addVoice(v voice, opts Options) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	v.params = opts.Params
	v.setFadein(opts.FadeSecs, m.callbackSecs)
	if opts.Paused {
		v.state = statePaused
	} else {
		v.state = statePlaying
	}
	v.seq = m.seq
	m.refresh(&v)
	panL, panR := pan(v.x, v.y)
	v.lvol = v.newVolume * panL
	v.rvol = v.newVolume * panR
	return m.reg.add(v)
}

// refresh folds a voice's params, the master and group volumes and
// the listener position into its target gain and relative position.
// Called with mu held.
func (m *Mixer) refresh(v *voice) {
	p := &v.params
	nv := p.Volume * m.master
	if p.Group >= 0 && p.Group < len(m.groups) {
		nv *= m.groups[p.Group]
	}
	v.newVolume = nv

	if p.MaxDistance > 0 {
		v.x = (p.X - m.listener.x) / p.MaxDistance
		v.y = (p.Y - m.listener.y) / p.MaxDistance
	} else {
		v.x = 0
		v.y = 0
	}
}

//
// Voice operations
//

// Halt finishes a voice immediately; it produces no further samples
// and is reaped on the next Update.
func (m *Mixer) Halt(h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v := m.reg.get(h); v != nil {
		v.state = stateFinished
	}
}

// FadeOut ramps a voice to silence over fade seconds and finishes it.
// fade < 0 means the minimum fade of one callback; fade == 0 halts.
func (m *Mixer) FadeOut(h Handle, fade float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := m.reg.get(h)
	if v == nil {
		return
	}
	if fade == 0 {
		v.state = stateFinished
		return
	}
	v.setFadeout(fade, m.callbackSecs)
}

// Pause ramps a voice down over the next callback and holds it.
func (m *Mixer) Pause(h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := m.reg.get(h)
	if v == nil {
		return
	}
	if v.playing() {
		v.state = statePausing
	} else if v.unpausing() {
		v.state = statePaused
	}
}

// Unpause ramps a paused voice back up over the next callback.
func (m *Mixer) Unpause(h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := m.reg.get(h)
	if v == nil {
		return
	}
	if v.paused() {
		v.state = stateUnpausing
	} else if v.pausing() {
		v.state = statePlaying
	}
}

// IsPlaying reports whether the voice still exists and has not
// finished. Paused voices count as playing.
func (m *Mixer) IsPlaying(h Handle) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := m.reg.get(h)
	return v != nil && !v.finished()
}

// IsPaused reports whether the voice is paused or pausing.
func (m *Mixer) IsPaused(h Handle) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := m.reg.get(h)
	return v != nil && (v.paused() || v.pausing())
}

// IsFinished reports whether the voice finished or no longer exists.
func (m *Mixer) IsFinished(h Handle) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := m.reg.get(h)
	return v == nil || v.finished()
}

func (m *Mixer) SetLoopCount(h Handle, loops int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v := m.reg.get(h); v != nil {
		v.loopCount = loops
	}
}

// SetVolume sets the voice's pre-pan, pre-group volume. The new value
// is folded in on the next Update.
func (m *Mixer) SetVolume(h Handle, volume float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v := m.reg.get(h); v != nil {
		v.params.Volume = volume
	}
}

// Volume returns the voice's volume, or 1 when the voice is gone.
func (m *Mixer) Volume(h Handle) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v := m.reg.get(h); v != nil {
		return v.params.Volume
	}
	return 1
}

func (m *Mixer) SetPos(h Handle, x, y float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v := m.reg.get(h); v != nil {
		v.params.X = x
		v.params.Y = y
	}
}

func (m *Mixer) Pos(h Handle) (x, y float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v := m.reg.get(h); v != nil {
		return v.params.X, v.params.Y
	}
	return 0, 0
}

func (m *Mixer) SetMaxDistance(h Handle, distance float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v := m.reg.get(h); v != nil {
		v.params.MaxDistance = distance
	}
}

func (m *Mixer) SetGroup(h Handle, group int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v := m.reg.get(h); v != nil {
		v.params.Group = group
	}
}

//
// Update tick
//

// Update reaps finished voices, folds fresh parameters into every
// live voice, and forces stream swaps the callback could not perform.
// Apart from Shutdown, it is the only operation that returns voice
// slots to the free list. It must be serialized by the host against load and play calls.
func (m *Mixer) Update() {
	m.cb.Lock()
	defer m.cb.Unlock()
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.reg.slots {
		s := &m.reg.slots[i]
		if !s.used {
			continue
		}
		v := &s.voice

		if v.finished() {
			m.reg.retire(int32(i))
			continue
		}

		if v.kind == kindStream && v.pos == v.stream.Size() {
			// The callback failed to advance; swap here, waiting for
			// the decoder if it is mid-fill.
			swapStream(v, true)
			if v.finished() {
				m.reg.retire(int32(i))
				continue
			}
		}

		m.refresh(v)
	}
}

// Shutdown drops every voice and invalidates all handles.
func (m *Mixer) Shutdown() {
	m.cb.Lock()
	defer m.cb.Unlock()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reg.clear()
}

//
// The callback
//

// ReadFloat32 produces one interleaved stereo block of len(dst)
// samples, len(dst) at most one full block. It runs on the audio
// goroutine; it never blocks on disk or the decoder.
func (m *Mixer) ReadFloat32(dst []float32) {
	if len(dst) > m.blockSamples {
		dst = dst[:m.blockSamples]
	}

	m.cb.Lock()
	defer m.cb.Unlock()

	clear(dst)

	m.mu.Lock()
	m.seq++
	seq := m.seq
	// Voices added between the per-voice unlocks get this seq and are
	// deferred to the next callback; the slot count is snapshotted for
	// the same reason.
	count := len(m.reg.slots)

	for i := 0; i < count; i++ {
		s := &m.reg.slots[i]
		if !s.used || s.voice.seq == seq || !s.voice.mixable() {
			continue
		}
		v := &s.voice

		var n int
		if v.kind == kindBuffer {
			n = copyBuffer(v, m.scratch[:len(dst)])
		} else {
			n = copyStream(v, m.scratch[:len(dst)])
		}

		vd := m.volumeData(v)
		justFinished := v.finished()
		h := Handle{idx: int32(i), gen: s.gen}
		fn := m.finished
		m.mu.Unlock()

		// Heavy work happens outside mu with only the scratch block.
		applyVolume(m.scratch[:n], &vd)
		mixInto(dst[:n], m.scratch[:n])
		if justFinished && fn != nil {
			fn(h)
		}

		m.mu.Lock()
	}
	m.mu.Unlock()

	clampBlock(dst)
}

// ReadInt16 is ReadFloat32 for the 16-bit output path: voices are
// summed at full precision, then converted and clamped at the edge.
func (m *Mixer) ReadInt16(dst []int16) {
	if len(dst) > m.blockSamples {
		dst = dst[:m.blockSamples]
	}
	if len(m.master16) < len(dst) {
		m.master16 = make([]float32, m.blockSamples)
	}

	block := m.master16[:len(dst)]
	m.ReadFloat32(block)
	for i, s := range block {
		dst[i] = utils.Float32ToInt16(s)
	}
}
