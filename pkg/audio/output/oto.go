// ABOUTME: Oto-based device session
// ABOUTME: Streams PCM through an io.Pipe into a persistent oto player
package output

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/ebitengine/oto/v3"

	"github.com/pcmcast/pcmcast-go/pkg/audio"
)

// Oto is a Device backed by the oto library. A persistent player reads
// from a pipe; Write blocks on the pipe once the player's internal buffer
// is full. Oto only supports 16-bit output and allows a single context per
// process, so the context is kept across sessions.
type Oto struct {
	mu         sync.Mutex
	player     *oto.Player
	pipeReader *io.PipeReader
	pipeWriter *io.PipeWriter
	format     audio.Format
	open       bool
	started    bool
}

// Shared across sessions: oto does not support context reinitialization.
var (
	otoCtxMu     sync.Mutex
	otoSharedCtx *oto.Context
	otoCtxRate   int
	otoCtxChans  int
)

// NewOto creates an unopened oto device session.
func NewOto() Device {
	return &Oto{}
}

// Open acquires the shared oto context for the given format.
func (o *Oto) Open(format audio.Format, bufferFrames int) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.open {
		return fmt.Errorf("device already open")
	}
	if format.Encoding() != audio.EncodingS16 {
		return fmt.Errorf("oto backend only supports s16le, got %s", format.Encoding())
	}

	otoCtxMu.Lock()
	defer otoCtxMu.Unlock()

	if otoSharedCtx != nil && (otoCtxRate != format.SampleRate || otoCtxChans != format.Channels) {
		return fmt.Errorf("oto context already initialized with %dHz %dch, cannot reopen with %dHz %dch",
			otoCtxRate, otoCtxChans, format.SampleRate, format.Channels)
	}

	if otoSharedCtx == nil {
		op := &oto.NewContextOptions{
			SampleRate:   format.SampleRate,
			ChannelCount: format.Channels,
			Format:       oto.FormatSignedInt16LE,
		}
		ctx, readyChan, err := oto.NewContext(op)
		if err != nil {
			return fmt.Errorf("failed to create oto context: %w", err)
		}
		<-readyChan
		otoSharedCtx = ctx
		otoCtxRate = format.SampleRate
		otoCtxChans = format.Channels
	}

	o.pipeReader, o.pipeWriter = io.Pipe()
	o.player = otoSharedCtx.NewPlayer(o.pipeReader)
	o.format = format
	o.open = true

	log.Debug("audio device opened", "backend", "oto", "format", format.String())

	return nil
}

// Start begins playback from the pipe.
func (o *Oto) Start() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.open {
		return fmt.Errorf("device not open")
	}
	if o.started {
		return nil
	}
	o.player.Play()
	o.started = true
	return nil
}

// Write feeds one chunk into the pipe, blocking until the player has
// consumed enough of its backlog to accept it.
func (o *Oto) Write(chunk []byte) error {
	o.mu.Lock()
	w := o.pipeWriter
	started := o.started
	o.mu.Unlock()

	if w == nil || !started {
		return fmt.Errorf("device not started")
	}
	if _, err := w.Write(chunk); err != nil {
		return fmt.Errorf("device write failed: %w", err)
	}
	return nil
}

// Stop pauses the player.
func (o *Oto) Stop() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.open || !o.started {
		return nil
	}
	o.player.Pause()
	o.started = false
	return nil
}

// Close releases the session resources. The shared oto context stays
// alive for the next session.
func (o *Oto) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.pipeWriter != nil {
		o.pipeWriter.Close()
		o.pipeWriter = nil
	}
	if o.player != nil {
		o.player.Close()
		o.player = nil
	}
	if o.pipeReader != nil {
		o.pipeReader.Close()
		o.pipeReader = nil
	}
	o.open = false
	o.started = false
	return nil
}
