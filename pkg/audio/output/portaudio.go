//go:build portaudio

// ABOUTME: PortAudio device session implementation
// ABOUTME: Cross-platform blocking-write output using PortAudio
package output

import (
	"encoding/binary"
	"fmt"

	"github.com/gordonklaus/portaudio"

	"github.com/pcmcast/pcmcast-go/pkg/audio"
)

const defaultPortAudioFrames = 1024

// PortAudio is a Device using the PortAudio blocking API.
type PortAudio struct {
	stream  *portaudio.Stream
	buffer  []int16
	format  audio.Format
	started bool
}

// NewPortAudio creates an unopened PortAudio device session.
func NewPortAudio() Device {
	return &PortAudio{}
}

// Open initializes PortAudio and acquires the default output stream.
func (p *PortAudio) Open(format audio.Format, bufferFrames int) error {
	if p.stream != nil {
		return fmt.Errorf("device already open")
	}
	if format.Encoding() != audio.EncodingS16 {
		return fmt.Errorf("portaudio backend only supports s16le, got %s", format.Encoding())
	}
	if bufferFrames <= 0 {
		bufferFrames = defaultPortAudioFrames
	}

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize portaudio: %w", err)
	}

	p.buffer = make([]int16, bufferFrames*format.Channels)
	stream, err := portaudio.OpenDefaultStream(0, format.Channels, float64(format.SampleRate), bufferFrames, p.buffer)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("failed to open stream: %w", err)
	}

	p.stream = stream
	p.format = format
	return nil
}

// Start begins the stream.
func (p *PortAudio) Start() error {
	if p.stream == nil {
		return fmt.Errorf("device not open")
	}
	if p.started {
		return nil
	}
	if err := p.stream.Start(); err != nil {
		return fmt.Errorf("failed to start stream: %w", err)
	}
	p.started = true
	return nil
}

// Write plays one chunk through the blocking stream, one buffer at a
// time. A trailing partial buffer is zero-padded.
func (p *PortAudio) Write(chunk []byte) error {
	if p.stream == nil || !p.started {
		return fmt.Errorf("device not started")
	}

	// s16 only, enforced in Open.
	samples := make([]int16, len(chunk)/p.format.SampleWidth)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(chunk[i*2:]))
	}

	for off := 0; off < len(samples); off += len(p.buffer) {
		n := copy(p.buffer, samples[off:])
		for i := n; i < len(p.buffer); i++ {
			p.buffer[i] = 0
		}
		if err := p.stream.Write(); err != nil {
			return fmt.Errorf("device write failed: %w", err)
		}
	}
	return nil
}

// Stop halts the stream.
func (p *PortAudio) Stop() error {
	if p.stream == nil || !p.started {
		return nil
	}
	p.started = false
	if err := p.stream.Stop(); err != nil {
		return fmt.Errorf("failed to stop stream: %w", err)
	}
	return nil
}

// Close releases the stream and terminates PortAudio.
func (p *PortAudio) Close() error {
	if p.stream != nil {
		if err := p.stream.Close(); err != nil {
			return err
		}
		p.stream = nil
		p.started = false
	}
	return portaudio.Terminate()
}
