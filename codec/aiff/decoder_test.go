package aiff

import (
	"bytes"
	"io"
	"testing"

	goaudio "github.com/go-audio/audio"
)

// mockAiffReader feeds canned int samples through the aiffReader shim.
type mockAiffReader struct {
	format *goaudio.Format
	data   []int
	pos    int
}

func (m *mockAiffReader) Format() *goaudio.Format { return m.format }

func (m *mockAiffReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.pos >= len(m.data) {
		return 0, nil
	}
	n := copy(buf.Data, m.data[m.pos:])
	m.pos += n
	return n, nil
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	s := &source{
		dec: &mockAiffReader{
			format: &goaudio.Format{NumChannels: 2, SampleRate: 44100},
			data:   []int{0, 16384, -16384, 32767},
		},
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

	want := []float32{0, 0.5, -0.5, 32767.0 / 32768.0}
	for i, w := range want {
		if dst[i] != w {
			t.Errorf("sample %d = %v, want %v", i, dst[i], w)
		}
	}
}

func TestSource_EOF(t *testing.T) {
	t.Parallel()

	s := &source{
		dec: &mockAiffReader{
			format: &goaudio.Format{NumChannels: 1, SampleRate: 22050},
		},
		sampleRate: 22050,
		channels:   1,
	}

	dst := make([]float32, 8)
	n, err := s.ReadSamples(dst)
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() = (%d, %v), want (0, io.EOF)", n, err)
	}
}

func TestDecoder_RejectsGarbage(t *testing.T) {
	t.Parallel()

	r := bytes.NewReader([]byte("no form chunk in here"))
	if _, err := (Decoder{}).Decode(r); err == nil {
		t.Error("Decode() accepted garbage input")
	}
}
