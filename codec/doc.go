// SPDX-License-Identifier: EPL-2.0

// Package codec defines the decoder surface the mixer core consumes.
//
// Decoded audio is always interleaved float32 in [-1.0, 1.0], mono or
// stereo, delivered at the sample rate the mixer was initialized with.
// Format packages (codec/wav, codec/vorbis, codec/mp3, codec/aiff)
// translate their container into this shape; this package supplies the
// pieces they share.
//
// # Source Interface
//
// Source is the pull-based sample stream every decoder produces:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    Close() error
//	}
//
// ReadSamples returns io.EOF when the stream is exhausted; sources can
// be chained (a Resampler is itself a Source over another Source).
//
// # Whole Decoding
//
// ReadAll drains a Source into one slice at a target rate, resampling
// with cubic interpolation when the native rate differs:
//
//	samples, channels, err := codec.ReadAll(src, 44100)
//
// Mono material stays mono; the mixer expands it to stereo at mix
// time, halving memory for effect libraries.
//
// # Streaming
//
// StreamSource feeds the double-buffered stream reader used for music.
// Fill crosses the end of the file at most once per call, wrapping to
// sample zero so that looped playback is seamless. NewStreamSource
// assembles a StreamSource from any SeekSource, inserting a resampler
// when needed and rebuilding it at every wrap or seek.
//
// # Format Registry
//
// The registry maps file extensions to decoders:
//
//	registry := codec.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	registry.RegisterStream("ogg", vorbis.Opener{})
//
// Whole-file decoding and streaming are registered separately because
// not every container supports cheap time seeking.
package codec
