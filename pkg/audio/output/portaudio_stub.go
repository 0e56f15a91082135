//go:build !portaudio

// ABOUTME: PortAudio stub when library not available
// ABOUTME: Provides compile-time placeholder when PortAudio not installed
package output

import (
	"fmt"

	"github.com/pcmcast/pcmcast-go/pkg/audio"
)

// PortAudio device session (stub)
type PortAudio struct{}

// NewPortAudio creates a new PortAudio device session
func NewPortAudio() Device {
	return &PortAudio{}
}

func (p *PortAudio) Open(format audio.Format, bufferFrames int) error {
	return fmt.Errorf("PortAudio support not enabled (build with -tags portaudio)")
}

func (p *PortAudio) Start() error {
	return fmt.Errorf("PortAudio support not enabled (build with -tags portaudio)")
}

func (p *PortAudio) Write(chunk []byte) error {
	return fmt.Errorf("PortAudio support not enabled (build with -tags portaudio)")
}

func (p *PortAudio) Stop() error {
	return nil
}

func (p *PortAudio) Close() error {
	return nil
}
