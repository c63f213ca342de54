// SPDX-License-Identifier: EPL-2.0

// Package gamemix is a real-time 2-D audio mixer for games.
//
// A host loads sound effects and music streams from disk, plays them
// with optional loops, fade-ins, stereo panning and mixer groups, and
// the engine produces one interleaved stereo block every time the
// output device asks for samples. A periodic Update tick keeps
// observable state in sync with the playback goroutine.
//
// # Quick start
//
//	engine, err := gamemix.NewEngine(44100, 2048, gamemix.FormatFloat32)
//	if err != nil {
//	    return err
//	}
//	defer engine.Shutdown()
//
//	player, err := device.NewPlayer(engine) // ships blocks to the OS
//	if err != nil {
//	    return err
//	}
//	defer player.Close()
//	player.Play()
//
//	spell, _ := engine.LoadSound("spell.wav")
//	music, _ := engine.LoadStream("music.ogg", 0)
//
//	music.FadeIn(2.0, -1) // loop forever, 2s fade-in
//	spell.Play(0)
//
//	for gameRunning {
//	    engine.Update() // once per rendered frame
//	}
//
// # Sounds and streams
//
// LoadSound decodes a whole file into memory; use it for short
// effects that play often, possibly many at once. LoadStream decodes
// on the fly through a double buffer filled by a background
// goroutine; use it for music and long ambience. Both are played
// either through their object methods (Play, Pause, SetVolume, ...)
// or through the channel-handle surface on Engine, which never
// invalidates: operations on a finished channel are harmless no-ops.
//
// # Positional audio
//
// Every playback carries a 2-D position, a max distance and the
// engine has a listener position. Gain falls off linearly with
// distance and the stereo image skews toward the side the source is
// on; sources at or beyond max distance are silent. Max distance 0
// disables panning for that playback.
//
// # Threads
//
// Engine methods may be called from any goroutine. The audio device
// drives ReadFloat32/ReadInt16 (package device wires this up); the
// mixer never blocks that path on disk or decoding. Update, the only
// operation besides Shutdown that frees voice slots, is meant to be driven by the
// host's frame loop. Sound and Stream objects themselves are
// single-goroutine.
//
// # Formats
//
// WAV, Ogg Vorbis, MP3 and AIFF decode out of the box; WAV, Ogg and
// MP3 can also be streamed. Engine.Codecs returns the registry for
// wiring in custom decoders.
package gamemix
