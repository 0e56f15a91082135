// ABOUTME: Real-time PCM playback engine
// ABOUTME: Bounded producer/consumer pipeline with lifecycle control
// Package player implements a real-time PCM playback engine.
//
// A Player accepts discrete chunks of PCM bytes from an application
// goroutine and streams them to an audio device on a dedicated worker
// goroutine, under explicit lifecycle control and backpressure:
//
//	p, _ := player.NewPlayer(player.Config{})
//	p.Configure(2, 1, 44100)
//	p.Start()
//	for _, chunk := range chunks {
//	    for !p.TryEnqueue(chunk) {
//	        time.Sleep(10 * time.Millisecond)
//	    }
//	}
//	p.Stop()
//	p.Close()
//
// TryEnqueue never blocks: a false return is the backpressure signal and
// the producer decides how to react. Chunks are played in exactly the
// order they were accepted. Stop is cooperative: it cannot interrupt an
// in-progress device write, and its wait for the worker is bounded.
package player
