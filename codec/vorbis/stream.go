package vorbis

import (
	"fmt"
	"os"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/gamemix/codec"
)

// seekSource is a codec.SeekSource over an Ogg Vorbis file, using the
// container's sample index for exact time seeks.
type seekSource struct {
	f     *os.File
	dec   *oggvorbis.Reader
	total float64
}

func openSeekSource(path string) (*seekSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening ogg stream: %w", err)
	}

	dec, err := oggvorbis.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("reading ogg header: %w", err)
	}

	if dec.Channels() < 1 || dec.Channels() > 2 {
		f.Close()
		return nil, ErrUnsupportedChannels
	}

	length := dec.Length()
	if length <= 0 {
		f.Close()
		return nil, ErrNotSeekable
	}

	return &seekSource{
		f:     f,
		dec:   dec,
		total: float64(length) / float64(dec.SampleRate()),
	}, nil
}

func (s *seekSource) SampleRate() int    { return s.dec.SampleRate() }
func (s *seekSource) Channels() int      { return s.dec.Channels() }
func (s *seekSource) TotalTime() float64 { return s.total }
func (s *seekSource) Close() error       { return s.f.Close() }

func (s *seekSource) ReadSamples(dst []float32) (int, error) {
	return s.dec.Read(dst)
}

func (s *seekSource) SeekTime(sec float64) error {
	pos := int64(sec * float64(s.dec.SampleRate()))
	if err := s.dec.SetPosition(pos); err != nil {
		return fmt.Errorf("seeking to %.2fs: %w", sec, err)
	}
	return nil
}

// Opener opens Ogg Vorbis files for streamed playback.
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
