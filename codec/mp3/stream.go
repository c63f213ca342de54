package mp3

import (
	"fmt"
	"io"
	"os"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/gamemix/codec"
)

// Decoded frame size in bytes: two channels of 16-bit PCM.
const frameBytes = 4

// seekSource is a codec.SeekSource over an MP3 file. go-mp3 exposes
// the decoded stream as a byte-addressable io.ReadSeeker, so time
// seeks translate to byte offsets directly.
type seekSource struct {
	f     *os.File
	dec   *gomp3.Decoder
	src   *source
	total float64
}

func openSeekSource(path string) (*seekSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening mp3 stream: %w", err)
	}

	dec, err := gomp3.NewDecoder(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("reading mp3 header: %w", err)
	}

	length := dec.Length()
	if length <= 0 {
		f.Close()
		return nil, ErrUnknownLength
	}

	return &seekSource{
		f:     f,
		dec:   dec,
		src:   newSource(dec),
		total: float64(length/frameBytes) / float64(dec.SampleRate()),
	}, nil
}

func (s *seekSource) SampleRate() int    { return s.src.sampleRate }
func (s *seekSource) Channels() int      { return 2 }
func (s *seekSource) TotalTime() float64 { return s.total }
func (s *seekSource) Close() error       { return s.f.Close() }

func (s *seekSource) ReadSamples(dst []float32) (int, error) {
	return s.src.ReadSamples(dst)
}

func (s *seekSource) SeekTime(sec float64) error {
	offset := int64(sec*float64(s.src.sampleRate)) * frameBytes
	if _, err := s.dec.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("seeking to %.2fs: %w", sec, err)
	}
	s.src.reset()
	return nil
}

// Opener opens MP3 files for streamed playback.
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
