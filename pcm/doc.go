// SPDX-License-Identifier: EPL-2.0

// Package pcm holds the two sample containers voices play from.
//
// # Buffer
//
// Buffer is a whole decoded sound held in memory: interleaved float32
// at the mixer's rate, mono or stereo. It is immutable after load and
// shared freely between the mixer, the host and any number of voices;
// mono material is kept mono and expanded to stereo at mix time.
//
// # StreamBuffer
//
// StreamBuffer is the producer/consumer half-second double buffer that
// feeds long files from a decoder goroutine into the mix callback
// without ever stalling it. The mixer consumes the primary side; a
// detached ReadMore call fills the secondary; one of three swap
// variants exchanges them:
//
//   - Advance takes only data produced by ReadMore (the normal
//     end-of-primary transition while mixing).
//   - UpdatePos takes only data produced by SetPos (a seek).
//   - SwapBuffers takes either.
//
// All three are try-lock and return a Result instead of blocking: the
// audio callback must never wait on disk I/O. If the secondary isn't
// ready, the voice plays out the primary's remainder and retries on
// the next callback or the next host Update (which may use
// SwapBuffersWait, since it doesn't run on the audio thread).
//
// ReadMore crosses the end of the stream at most once per fill,
// wrapping to sample zero and recording the wrap offset in EndPos, so
// loop counting happens at most once per buffer fill and looped
// streams play seamlessly. When the whole stream fits into one side it
// is marked FullyBuffered and no swapping or further decoding happens.
package pcm
