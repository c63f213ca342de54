package codec

import (
	"errors"
	"io"
	"testing"
)

func newTestResampler(t *testing.T, src Source, dstRate int) *Resampler {
	t.Helper()

	r, err := NewResampler(src, dstRate)
	if err != nil {
		t.Fatalf("NewResampler() error = %v", err)
	}
	return r
}

func readAllFrom(t *testing.T, src Source) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, 512)
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
		if n == 0 {
			return out
		}
	}
}

func TestNewResampler_Validation(t *testing.T) {
	t.Parallel()

	if _, err := NewResampler(newRampSource(44100, 3, 30), 22050); !errors.Is(err, ErrUnsupportedChannels) {
		t.Errorf("NewResampler(3ch) error = %v, want ErrUnsupportedChannels", err)
	}
	if _, err := NewResampler(newRampSource(44100, 1, 30), 0); !errors.Is(err, ErrBadRate) {
		t.Errorf("NewResampler(rate 0) error = %v, want ErrBadRate", err)
	}
	if _, err := NewResampler(newRampSource(0, 1, 30), 22050); !errors.Is(err, ErrBadRate) {
		t.Errorf("NewResampler(src rate 0) error = %v, want ErrBadRate", err)
	}
}

func TestResampler_UpsampleLength(t *testing.T) {
	t.Parallel()

	src := newRampSource(22050, 1, 2205) // 100ms mono
	r := newTestResampler(t, src, 44100)

	out := readAllFrom(t, r)
	// Expect roughly twice the input frames.
	if len(out) < 4200 || len(out) > 4500 {
		t.Errorf("upsampled length = %d, want about 4410", len(out))
	}
}

func TestResampler_DownsampleLength(t *testing.T) {
	t.Parallel()

	src := newRampSource(44100, 2, 4410) // 100ms stereo
	r := newTestResampler(t, src, 22050)

	out := readAllFrom(t, r)
	if len(out)%2 != 0 {
		t.Fatalf("downsampled output has partial frame: %d", len(out))
	}
	frames := len(out) / 2
	if frames < 2100 || frames > 2300 {
		t.Errorf("downsampled frames = %d, want about 2205", frames)
	}
}

func TestResampler_ConstantStaysConstant(t *testing.T) {
	t.Parallel()

	// A constant signal survives both the spline and the downsampling
	// smoother exactly.
	src := newMockSource(48000, 1, 4800, func(frame, channel int) float32 {
		return 0.5
	})
	r := newTestResampler(t, src, 44100)

	out := readAllFrom(t, r)
	if len(out) == 0 {
		t.Fatal("no output produced")
	}
	for i, s := range out {
		if s != 0.5 {
			t.Fatalf("sample %d = %v, want 0.5", i, s)
		}
	}
}

func TestResampler_PassthroughRate(t *testing.T) {
	t.Parallel()

	// Equal rates step one source frame per output frame: the output
	// reproduces the input exactly.
	src := newRampSource(44100, 2, 300)
	r := newTestResampler(t, src, 44100)

	out := readAllFrom(t, r)
	want := newRampSource(44100, 2, 300)
	wantOut := readAllFrom(t, want)
	if len(out) != len(wantOut) {
		t.Fatalf("passthrough length = %d, want %d", len(out), len(wantOut))
	}
	for i := range out {
		if out[i] != wantOut[i] {
			t.Fatalf("sample %d = %v, want %v", i, out[i], wantOut[i])
		}
	}
}

func TestResampler_WindowSlideIsContinuous(t *testing.T) {
	t.Parallel()

	// A ramp much longer than the window crosses many refills; the
	// output must stay monotonic through every slide.
	src := newRampSource(32000, 1, 8*resampleWin)
	r := newTestResampler(t, src, 44100)

	out := readAllFrom(t, r)
	if len(out) < 8*resampleWin {
		t.Fatalf("output too short: %d", len(out))
	}
	for i := 1; i < len(out); i++ {
		if out[i] < out[i-1] {
			t.Fatalf("ramp fell at sample %d: %v -> %v", i, out[i-1], out[i])
		}
	}
}

func TestResampler_RejectsPartialFrameDst(t *testing.T) {
	t.Parallel()

	src := newRampSource(44100, 2, 100)
	r := newTestResampler(t, src, 22050)

	buf := make([]float32, 3)
	if _, err := r.ReadSamples(buf); err != ErrInvalidDstSize {
		t.Errorf("ReadSamples(odd dst) error = %v, want ErrInvalidDstSize", err)
	}
}

func TestResampler_EmptySourceEOF(t *testing.T) {
	t.Parallel()

	src := newRampSource(44100, 1, 0)
	r := newTestResampler(t, src, 22050)

	buf := make([]float32, 64)
	n, err := r.ReadSamples(buf)
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples(empty) = (%d, %v), want (0, io.EOF)", n, err)
	}
}

func BenchmarkResampler_Downsample(b *testing.B) {
	b.ReportAllocs()

	buf := make([]float32, 4096)
	for b.Loop() {
		src := newRampSource(48000, 2, 4800)
		r, err := NewResampler(src, 44100)
		if err != nil {
			b.Fatal(err)
		}
		for {
			n, err := r.ReadSamples(buf)
			if err != nil || n == 0 {
				break
			}
		}
	}
}
