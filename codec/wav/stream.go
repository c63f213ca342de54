package wav

import (
	"fmt"
	"io"
	"os"

	"github.com/go-audio/wav"

	"github.com/ik5/gamemix/codec"
)

// seekSource is a codec.SeekSource over a WAV file. The container has
// no time index, so SeekTime restarts the decoder and discards frames
// up to the target.
type seekSource struct {
	f   *os.File
	src *source
	dec *wav.Decoder

	total   float64
	skipBuf []float32
}

func openSeekSource(path string) (*seekSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening wav stream: %w", err)
	}

	s := &seekSource{f: f}
	if err := s.restart(); err != nil {
		f.Close()
		return nil, err
	}

	dur, err := s.dec.Duration()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("reading wav duration: %w", err)
	}
	s.total = dur.Seconds()

	return s, nil
}

// restart rewinds the file and rebuilds the decoder at the PCM start.
func (s *seekSource) restart() error {
	if _, err := s.f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding wav file: %w", err)
	}

	dec := wav.NewDecoder(s.f)
	if !dec.IsValidFile() {
		return ErrNotWavFile
	}
	if err := dec.FwdToPCM(); err != nil {
		return fmt.Errorf("seeking to pcm data: %w", err)
	}

	channels := int(dec.NumChans)
	if channels < 1 || channels > 2 {
		return ErrUnsupportedChannels
	}

	s.dec = dec
	s.src = &source{
		dec:        dec,
		sampleRate: int(dec.SampleRate),
		channels:   channels,
		bitDepth:   int(dec.BitDepth),
	}
	return nil
}

func (s *seekSource) SampleRate() int    { return s.src.sampleRate }
func (s *seekSource) Channels() int      { return s.src.channels }
func (s *seekSource) TotalTime() float64 { return s.total }
func (s *seekSource) Close() error       { return s.f.Close() }

func (s *seekSource) ReadSamples(dst []float32) (int, error) {
	return s.src.ReadSamples(dst)
}

func (s *seekSource) SeekTime(sec float64) error {
	if err := s.restart(); err != nil {
		return err
	}
	if sec <= 0 {
		return nil
	}

	if s.skipBuf == nil {
		s.skipBuf = make([]float32, 4096)
	}
	left := int(sec*float64(s.src.sampleRate)) * s.src.channels
	for left > 0 {
		want := left
		if want > len(s.skipBuf) {
			want = len(s.skipBuf)
		}
		n, err := s.src.ReadSamples(s.skipBuf[:want])
		left -= n
		if err == io.EOF {
			return nil // past the end; next read reports EOF
		}
		if err != nil {
			return fmt.Errorf("skipping to %.2fs: %w", sec, err)
		}
		if n == 0 {
			return nil
		}
	}
	return nil
}

// Opener opens WAV files for streamed playback.
type Opener struct{}

func (Opener) OpenStream(path string, sampleRate int) (codec.StreamSource, error) {
	base, err := openSeekSource(path)
	if err != nil {
		return nil, err
	}

	ss, err := codec.NewStreamSource(base, sampleRate)
	if err != nil {
		base.Close()
		return nil, err
	}
	return ss, nil
}
