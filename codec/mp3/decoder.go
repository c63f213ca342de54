// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/gamemix/codec"
	"github.com/ik5/gamemix/utils"
)

// mp3Reader is the slice of gomp3.Decoder the source needs, kept as
// an interface so tests can script the decoded byte stream.
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

const (
	// bytesPerSample: go-mp3 emits 16-bit little-endian PCM.
	bytesPerSample = 2
	// chunkBytes is the fixed read size against the decoder. Reads
	// are chunked so a request for a large block never asks the
	// decoder for more than one chunk at a time; the stream seeker
	// repositions between chunks, not inside them.
	chunkBytes = 8192
)

// source adapts the decoder's int16 byte stream to float32 samples.
// go-mp3 may return any byte count, including one that splits a
// sample; the trailing half-sample is carried into the next read so
// chunk boundaries never drop data. That matters for the streamed
// path, where byte-offset seeks land between chunks.
type source struct {
	dec        mp3Reader
	sampleRate int

	chunk []byte
	carry []byte // 0 or 1 byte of a split int16
	eof   bool
}

func newSource(dec mp3Reader) *source {
	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		chunk:      make([]byte, chunkBytes+bytesPerSample),
		carry:      make([]byte, 0, bytesPerSample),
	}
}

// reset drops the carry and EOF state after the decoder has been
// repositioned underneath the source.
func (s *source) reset() {
	s.carry = s.carry[:0]
	s.eof = false
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return 2 } // go-mp3 always decodes to stereo
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	written := 0

	for written < len(dst) && !s.eof {
		want := (len(dst) - written) * bytesPerSample
		if want > chunkBytes {
			want = chunkBytes
		}

		buf := s.chunk[:len(s.carry)+want]
		copy(buf, s.carry)
		got, err := s.dec.Read(buf[len(s.carry):])
		n := got + len(s.carry)
		s.carry = s.carry[:0]

		whole := n - n%bytesPerSample
		for i := 0; i < whole; i += bytesPerSample {
			v := int16(binary.LittleEndian.Uint16(buf[i:]))
			dst[written] = utils.Int16ToFloat32(v)
			written++
		}
		if whole < n {
			s.carry = append(s.carry, buf[whole:n]...)
		}

		switch {
		case err == io.EOF:
			s.eof = true
		case err != nil:
			return written, fmt.Errorf("reading mp3 frames: %w", err)
		case got == 0:
			return written, nil
		}
	}

	if s.eof {
		return written, io.EOF
	}
	return written, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (codec.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("reading mp3 header: %w", err)
	}

	return newSource(dec), nil
}
