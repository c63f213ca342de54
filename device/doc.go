// SPDX-License-Identifier: EPL-2.0

// Package device connects a gamemix engine to the operating system's
// audio output using github.com/ebitengine/oto/v3.
//
// oto pulls PCM from an io.Reader on its own goroutine; this package
// adapts the engine's block producer to that reader, so the oto pull
// is exactly the engine's device callback. One Player per engine:
//
//	player, err := device.NewPlayer(engine)
//	if err != nil {
//	    return err
//	}
//	defer player.Close()
//	player.Play()
//
// Hosts embedding gamemix into an application that already owns the
// audio device (an SDL game loop, a Web Audio worklet) can skip this
// package and call Engine.ReadFloat32 or Engine.ReadInt16 from their
// own callback instead.
package device
