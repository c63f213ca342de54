// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 audio using github.com/hajimehoshi/go-mp3.
//
// go-mp3 always emits 16-bit stereo PCM at the file's sample rate, so
// sources from this package are always two channels. The decoded
// stream is byte-addressable, which makes streamed time seeks (Opener)
// exact: a position in seconds maps directly to a byte offset in the
// decoded output.
package mp3
