// SPDX-License-Identifier: EPL-2.0

// Package mix implements the playback registry and mix engine: it
// turns any number of concurrently active voices into a single
// interleaved stereo block every time the output device asks for one.
//
// # Voices and handles
//
// A voice is one active playback of a pcm.Buffer (whole sound) or
// pcm.StreamBuffer (streamed music). Voices live in a dense slot
// table addressed by Handle, an index plus generation: retiring a
// voice bumps the generation, so stale handles resolve to "gone"
// instead of to a recycled voice, and every handle-taking operation
// on a gone voice is a harmless no-op.
//
// # The callback
//
// ReadFloat32 (or ReadInt16) is the device callback body. Per voice
// it copies up to a block of source samples into a scratch buffer —
// expanding mono to stereo, rewinding and counting loops at source
// end, try-lock swapping stream sides — then applies the volume ramp
// and sums the scratch into the master block, which is clamped last.
//
// The ramp is piecewise linear with sub-spans bounded to about 2%
// gain change each, and the last applied left/right gains are carried
// from block to block, so pause, unpause, fades, volume changes and
// pan moves are all click-free: across unchanged blocks the applied
// gain is continuous.
//
// # Threads
//
// Three parties touch a mixer: the audio goroutine calling Read, the
// host calling everything else, and decoder goroutines filling stream
// buffers. Update holds the callback lock for its whole sweep (apart
// from Shutdown, it is the only operation that frees voice slots), while Read holds the
// voice mutex only per voice, so host calls — including starting new
// voices — interleave with a running callback. A voice added while a
// callback is in flight is deferred to the next one. No Read path
// ever blocks on the decoder: if a stream's secondary side is not
// ready the voice goes quiet for the rest of the block and retries
// next time.
package mix
