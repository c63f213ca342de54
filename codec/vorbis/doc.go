// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis audio using
// github.com/jfreymuth/oggvorbis.
//
// Vorbis is the preferred music container: the decoder exposes a
// per-sample position index, so streamed seeks (Opener) are exact and
// cheap, unlike WAV's skip-forward seeking. Whole-file decoding
// (Decoder) is also available for short effects.
//
// Mono files stay mono. Files with more than two channels are
// rejected rather than downmixed.
package vorbis
