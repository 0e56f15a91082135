// ABOUTME: Audio device session interface definition
// ABOUTME: Common interface for audio playback backends
package output

import (
	"fmt"

	"github.com/pcmcast/pcmcast-go/pkg/audio"
)

// Device represents one audio output device session. A session is opened
// with a fixed format, started, written to, and released. Write blocks
// until the device has accepted the data, which throttles the caller to
// real-time playback rate.
type Device interface {
	// Open acquires the device configured for the given format.
	// bufferFrames is the device-side buffer size in frames; 0 selects
	// the backend default.
	Open(format audio.Format, bufferFrames int) error

	// Start begins playback on an opened device.
	Start() error

	// Write plays one chunk of raw PCM bytes, blocking until the device
	// has accepted it.
	Write(chunk []byte) error

	// Stop halts playback. Safe to call on a stopped device.
	Stop() error

	// Close releases the device. Safe to call more than once.
	Close() error
}

// New returns a device for the named backend. An empty name selects the
// default (malgo).
func New(backend string) (Device, error) {
	switch backend {
	case "", "malgo":
		return NewMalgo(), nil
	case "oto":
		return NewOto(), nil
	case "portaudio":
		return NewPortAudio(), nil
	default:
		return nil, fmt.Errorf("unknown audio backend: %q", backend)
	}
}
