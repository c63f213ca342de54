package codec

import (
	"errors"
	"io"
	"testing"
)

type mockDecoder struct{ name string }

func (d *mockDecoder) Decode(r io.Reader) (Source, error) {
	return newRampSource(44100, 2, 100), nil
}

type mockOpener struct{}

func (mockOpener) OpenStream(path string, sampleRate int) (StreamSource, error) {
	return nil, errors.New("not implemented")
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &mockDecoder{name: "wav"}

	registry.Register("wav", decoder)

	got, ok := registry.Get("wav")
	if !ok {
		t.Fatal("Registry.Get() failed to retrieve registered decoder")
	}
	if got != decoder {
		t.Error("Registry.Get() returned different decoder instance")
	}

	if _, ok := registry.Get("flac"); ok {
		t.Error("Registry.Get() returned ok=true for unregistered format")
	}
}

func TestRegistry_StreamOpeners(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.RegisterStream("ogg", mockOpener{})

	if _, ok := registry.GetStream("ogg"); !ok {
		t.Error("Registry.GetStream() failed for registered opener")
	}
	if _, ok := registry.GetStream("wav"); ok {
		t.Error("Registry.GetStream() returned ok=true for unregistered format")
	}
	// Whole-decode and streaming registrations are independent.
	if _, ok := registry.Get("ogg"); ok {
		t.Error("RegisterStream leaked into the decoder table")
	}
}

func TestExt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{"music.ogg", "ogg"},
		{"SOUND.WAV", "wav"},
		{"dir.d/clip.Mp3", "mp3"},
		{"noext", ""},
		{"trailing.", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := Ext(tt.path); got != tt.want {
				t.Errorf("Ext(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestReadAll_Passthrough(t *testing.T) {
	t.Parallel()

	src := newMockSource(44100, 2, 1000, func(frame, channel int) float32 {
		if channel == 0 {
			return 0.25
		}
		return -0.25
	})

	samples, channels, err := ReadAll(src, 44100)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if channels != 2 {
		t.Fatalf("ReadAll() channels = %d, want 2", channels)
	}
	if len(samples) != 2000 {
		t.Fatalf("ReadAll() len = %d, want 2000", len(samples))
	}
	for i := 0; i < len(samples); i += 2 {
		if samples[i] != 0.25 || samples[i+1] != -0.25 {
			t.Fatalf("sample %d = (%v, %v), want (0.25, -0.25)", i/2, samples[i], samples[i+1])
		}
	}
}

func TestReadAll_ResamplesWhenRatesDiffer(t *testing.T) {
	t.Parallel()

	src := newMockSource(22050, 1, 22050, func(frame, channel int) float32 {
		return 0.5
	})

	samples, channels, err := ReadAll(src, 44100)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if channels != 1 {
		t.Fatalf("ReadAll() channels = %d, want 1", channels)
	}
	// One second of source should come out near one second at 44100.
	if len(samples) < 44100-100 || len(samples) > 44100+100 {
		t.Errorf("ReadAll() len = %d, want about 44100", len(samples))
	}
}

func TestReadAll_RejectsTooManyChannels(t *testing.T) {
	t.Parallel()

	src := newMockSource(44100, 6, 100, func(frame, channel int) float32 { return 0 })

	_, _, err := ReadAll(src, 44100)
	if !errors.Is(err, ErrUnsupportedChannels) {
		t.Errorf("ReadAll() error = %v, want ErrUnsupportedChannels", err)
	}
}
