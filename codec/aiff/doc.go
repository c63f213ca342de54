// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF audio using github.com/go-audio/aiff.
//
// Only whole-file decoding is provided: go-audio's AIFF decoder has no
// duration or seek support, so the package registers no stream opener.
// 16-bit PCM, mono or stereo.
package aiff
