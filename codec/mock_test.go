package codec

import "io"

// mockSource generates deterministic samples for tests.
type mockSource struct {
	rate     int
	channels int
	frames   int
	read     int
	wave     func(frame, channel int) float32
	closed   bool
}

func newMockSource(rate, channels, frames int, wave func(frame, channel int) float32) *mockSource {
	return &mockSource{rate: rate, channels: channels, frames: frames, wave: wave}
}

func newRampSource(rate, channels, frames int) *mockSource {
	return newMockSource(rate, channels, frames, func(frame, channel int) float32 {
		return float32(frame) / float32(frames)
	})
}

func (m *mockSource) SampleRate() int { return m.rate }
func (m *mockSource) Channels() int   { return m.channels }
func (m *mockSource) Close() error    { m.closed = true; return nil }

func (m *mockSource) ReadSamples(dst []float32) (int, error) {
	if m.read >= m.frames {
		return 0, io.EOF
	}

	want := len(dst) / m.channels
	avail := m.frames - m.read
	if want > avail {
		want = avail
	}

	for f := range want {
		for c := range m.channels {
			dst[f*m.channels+c] = m.wave(m.read+f, c)
		}
	}
	m.read += want

	if m.read >= m.frames {
		return want * m.channels, io.EOF
	}
	return want * m.channels, nil
}

// mockSeekSource adds time seeking over a fixed sample table.
type mockSeekSource struct {
	rate     int
	channels int
	data     []float32 // interleaved, one full pass of the stream
	pos      int       // in samples
	seekErr  error
}

func newMockSeekSource(rate, channels int, data []float32) *mockSeekSource {
	return &mockSeekSource{rate: rate, channels: channels, data: data}
}

func (m *mockSeekSource) SampleRate() int { return m.rate }
func (m *mockSeekSource) Channels() int   { return m.channels }
func (m *mockSeekSource) Close() error    { return nil }

func (m *mockSeekSource) TotalTime() float64 {
	return float64(len(m.data)/m.channels) / float64(m.rate)
}

func (m *mockSeekSource) SeekTime(sec float64) error {
	if m.seekErr != nil {
		return m.seekErr
	}
	pos := int(sec*float64(m.rate)) * m.channels
	if pos < 0 || pos > len(m.data) {
		pos = 0
	}
	m.pos = pos
	return nil
}

func (m *mockSeekSource) ReadSamples(dst []float32) (int, error) {
	if m.pos >= len(m.data) {
		return 0, io.EOF
	}
	n := copy(dst, m.data[m.pos:])
	m.pos += n
	if m.pos >= len(m.data) {
		return n, io.EOF
	}
	return n, nil
}
