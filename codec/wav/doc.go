// SPDX-License-Identifier: EPL-2.0

// Package wav decodes WAV (RIFF) audio using github.com/go-audio/wav.
//
// The package provides both whole-file decoding (Decoder, for sound
// effects held in memory) and streamed playback (Opener, for music).
// Samples are normalized to float32 in [-1, 1] according to the file's
// bit depth; 8, 16, 24 and 32-bit PCM are supported, mono or stereo.
//
// WAV carries no time index, so stream seeking restarts the decoder
// and discards frames up to the target position. That cost is paid by
// whoever seeks: the goroutine calling LoadStream or PlayStream, or the
// decoder goroutine when a fill wraps; never the audio callback.
package wav
