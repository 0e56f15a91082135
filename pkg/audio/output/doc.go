// ABOUTME: Audio output package for device playback
// ABOUTME: Provides the Device session interface and backend implementations
// Package output provides audio device session interfaces.
//
// A Device is a scoped resource: opened with a fixed format, started,
// written to with raw PCM chunks, then stopped and closed. Writes block
// until the device accepts the data.
//
// Backends: malgo (default, 16/24/32-bit), oto (16-bit), and PortAudio
// behind the portaudio build tag.
//
// Example:
//
//	dev := output.NewMalgo()
//	err := dev.Open(format, 1024)
//	err = dev.Start()
//	err = dev.Write(chunk)
package output
