// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"io"
	"strings"
	"sync"
)

// Source is a pull-based stream of interleaved float32 samples in [-1, 1].
type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0
	// with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// StreamOpener constructs a seekable StreamSource from a file path.
// The source delivers samples at the given rate.
type StreamOpener interface {
	OpenStream(path string, sampleRate int) (StreamSource, error)
}

// StreamSource produces decoded samples for a double-buffered stream.
// All output is interleaved float32 at the rate given to the opener.
type StreamSource interface {
	// TotalTime is the stream duration in seconds.
	TotalTime() float64
	// Channels count (1=mono, 2=stereo).
	Channels() int
	// Seek positions the next Fill at sec seconds from the start.
	Seek(sec float64) error
	// Fill writes decoded samples into dst, wrapping to the start of
	// the stream when its end is crossed. endPos is the offset one past
	// the last sample of the stream in dst, or -1 if the end was not
	// crossed. The end is crossed at most once per call; a second end
	// is left for the next call. With stopAtEOF set, Fill returns at
	// the end instead of wrapping.
	Fill(dst []float32, stopAtEOF bool) (n, endPos int, err error)
	// Close releases the underlying resources.
	Close() error
}

// Registry for decoders by format key (e.g., "wav", "ogg", "mp3").
type Registry struct {
	codecs  map[string]Decoder
	streams map[string]StreamOpener

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs:  make(map[string]Decoder),
		streams: make(map[string]StreamOpener),
		mtx:     &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[format] = d
}

func (r *Registry) RegisterStream(format string, o StreamOpener) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.streams[format] = o
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[format]
	return d, ok
}

func (r *Registry) GetStream(format string) (StreamOpener, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	o, ok := r.streams[format]
	return o, ok
}

// Ext returns the lowercased file extension of path without the dot,
// or "" when path has none.
func Ext(path string) string {
	idx := strings.LastIndexByte(path, '.')
	if idx < 0 || idx == len(path)-1 {
		return ""
	}
	return strings.ToLower(path[idx+1:])
}
