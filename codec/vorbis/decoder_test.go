package vorbis

import (
	"bytes"
	"io"
	"testing"
)

// mockOggReader feeds canned samples through the oggReader shim.
type mockOggReader struct {
	rate     int
	channels int
	data     []float32
	pos      int
}

func (m *mockOggReader) SampleRate() int { return m.rate }
func (m *mockOggReader) Channels() int   { return m.channels }

func (m *mockOggReader) Read(dst []float32) (int, error) {
	if m.pos >= len(m.data) {
		return 0, io.EOF
	}
	n := copy(dst, m.data[m.pos:])
	m.pos += n
	return n, nil
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	data := []float32{0.1, -0.1, 0.2, -0.2, 0.3, -0.3}
	s := &source{
		dec:        &mockOggReader{rate: 44100, channels: 2, data: data},
		sampleRate: 44100,
		channels:   2,
	}

	dst := make([]float32, 4)
	n, err := s.ReadSamples(dst)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 4 {
		t.Fatalf("ReadSamples() n = %d, want 4", n)
	}
	for i := range 4 {
		if dst[i] != data[i] {
			t.Errorf("sample %d = %v, want %v", i, dst[i], data[i])
		}
	}

	// Drain the remainder, then expect EOF.
	n, err = s.ReadSamples(dst)
	if n != 2 {
		t.Fatalf("second ReadSamples() n = %d, want 2", n)
	}
	if err != nil && err != io.EOF {
		t.Fatalf("second ReadSamples() error = %v", err)
	}

	n, err = s.ReadSamples(dst)
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() after end = (%d, %v), want (0, io.EOF)", n, err)
	}
}

func TestSource_EmptyDst(t *testing.T) {
	t.Parallel()

	s := &source{
		dec:        &mockOggReader{rate: 44100, channels: 1, data: []float32{0.5}},
		sampleRate: 44100,
		channels:   1,
	}

	n, err := s.ReadSamples(nil)
	if n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = (%d, %v), want (0, nil)", n, err)
	}
}

func TestDecoder_RejectsGarbage(t *testing.T) {
	t.Parallel()

	r := bytes.NewReader([]byte("definitely not an ogg container"))
	if _, err := (Decoder{}).Decode(r); err == nil {
		t.Error("Decode() accepted garbage input")
	}
}
