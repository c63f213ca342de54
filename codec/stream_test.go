package codec

import (
	"testing"
)

func rampData(frames, channels int) []float32 {
	data := make([]float32, frames*channels)
	for f := range frames {
		for c := range channels {
			data[f*channels+c] = float32(f+1) / float32(frames)
		}
	}
	return data
}

func TestStreamSource_FillWrapsOnce(t *testing.T) {
	t.Parallel()

	// 100 frames of stereo at matching rate; a 512-sample fill must
	// wrap and mark the end exactly once.
	base := newMockSeekSource(44100, 2, rampData(100, 2))
	s, err := NewStreamSource(base, 44100)
	if err != nil {
		t.Fatalf("NewStreamSource() error = %v", err)
	}

	dst := make([]float32, 512)
	n, endPos, err := s.Fill(dst, false)
	if err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	if endPos != 200 {
		t.Errorf("Fill() endPos = %d, want 200", endPos)
	}
	if n <= 200 {
		t.Errorf("Fill() n = %d, want more than one pass", n)
	}
	// Data after the end marker restarts from the first frame.
	if dst[endPos] != dst[0] {
		t.Errorf("sample after end = %v, want %v (stream start)", dst[endPos], dst[0])
	}
}

func TestStreamSource_FillStopsAtSecondEnd(t *testing.T) {
	t.Parallel()

	// 32 frames mono: a large fill would cross the end many times but
	// only one end may be reported per call.
	base := newMockSeekSource(44100, 1, rampData(32, 1))
	s, err := NewStreamSource(base, 44100)
	if err != nil {
		t.Fatalf("NewStreamSource() error = %v", err)
	}

	dst := make([]float32, 4096)
	n, endPos, err := s.Fill(dst, false)
	if err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	if endPos != 32 {
		t.Errorf("Fill() endPos = %d, want 32", endPos)
	}
	if n > 64 {
		t.Errorf("Fill() n = %d, want at most two passes", n)
	}
}

func TestStreamSource_FillStopAtEOF(t *testing.T) {
	t.Parallel()

	base := newMockSeekSource(44100, 2, rampData(50, 2))
	s, err := NewStreamSource(base, 44100)
	if err != nil {
		t.Fatalf("NewStreamSource() error = %v", err)
	}

	dst := make([]float32, 1024)
	n, endPos, err := s.Fill(dst, true)
	if err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	if n != 100 {
		t.Errorf("Fill(stopAtEOF) n = %d, want 100", n)
	}
	if endPos != 100 {
		t.Errorf("Fill(stopAtEOF) endPos = %d, want 100", endPos)
	}
}

func TestStreamSource_SeekRestartsOutput(t *testing.T) {
	t.Parallel()

	data := rampData(44100, 1) // one second mono
	base := newMockSeekSource(44100, 1, data)
	s, err := NewStreamSource(base, 44100)
	if err != nil {
		t.Fatalf("NewStreamSource() error = %v", err)
	}

	if err := s.Seek(0.5); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}

	dst := make([]float32, 256)
	n, _, err := s.Fill(dst, true)
	if err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	if n == 0 {
		t.Fatal("Fill() after Seek produced no data")
	}
	if dst[0] != data[22050] {
		t.Errorf("first sample after Seek(0.5) = %v, want %v", dst[0], data[22050])
	}
}

func TestStreamSource_ResamplesToOutputRate(t *testing.T) {
	t.Parallel()

	// Half-rate source: the half-second stream yields about 22050
	// output samples, so a 30000-sample fill crosses its end once.
	base := newMockSeekSource(22050, 1, rampData(11025, 1))
	s, err := NewStreamSource(base, 44100)
	if err != nil {
		t.Fatalf("NewStreamSource() error = %v", err)
	}

	dst := make([]float32, 30000)
	n, endPos, err := s.Fill(dst, false)
	if err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	if endPos < 21000 || endPos > 23000 {
		t.Errorf("Fill() endPos = %d, want about 22050", endPos)
	}
	if n < len(dst)-minFillFrames {
		t.Errorf("Fill() n = %d, want a nearly full buffer", n)
	}
}

func TestStreamSource_RejectsTooManyChannels(t *testing.T) {
	t.Parallel()

	base := newMockSeekSource(44100, 3, make([]float32, 300))
	if _, err := NewStreamSource(base, 44100); err != ErrUnsupportedChannels {
		t.Errorf("NewStreamSource(3ch) error = %v, want ErrUnsupportedChannels", err)
	}
}
