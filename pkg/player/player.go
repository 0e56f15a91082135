// ABOUTME: Playback lifecycle controller and worker
// ABOUTME: Coordinates format configuration, device session and queue draining
package player

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/pcmcast/pcmcast-go/pkg/audio"
	"github.com/pcmcast/pcmcast-go/pkg/audio/output"
)

const (
	// DefaultBufferFrames is the device-side buffer size in frames.
	DefaultBufferFrames = 1024
	// DefaultDequeueTimeout bounds the worker's wait for a chunk so it
	// can re-check its run flag.
	DefaultDequeueTimeout = 500 * time.Millisecond
	// DefaultStopTimeout bounds the wait for worker termination.
	DefaultStopTimeout = time.Second
)

// Config holds player configuration.
type Config struct {
	// Backend selects the output backend by name ("malgo", "oto",
	// "portaudio"). Empty selects the default. Ignored when NewDevice
	// is set.
	Backend string

	// NewDevice builds the device session acquired on each Start.
	NewDevice func() (output.Device, error)

	// QueueCapacity is the maximum number of queued chunks (default 100).
	QueueCapacity int

	// BufferFrames is the device buffer size in frames (default 1024).
	BufferFrames int

	// DequeueTimeout is the worker's bounded dequeue wait (default 500ms).
	DequeueTimeout time.Duration

	// StopTimeout is the bounded wait for worker termination on Stop
	// (default 1s). When exceeded the worker is abandoned; it still
	// releases the device once it observes the cleared run flag.
	StopTimeout time.Duration
}

// Stats contains playback counters.
type Stats struct {
	Enqueued   int64 // chunks accepted by TryEnqueue
	Played     int64 // chunks written to the device
	Dropped    int64 // chunks rejected by TryEnqueue
	QueueDepth int   // chunks currently queued
}

// Player streams PCM chunks from a producer to an audio device on a
// dedicated worker goroutine. One device session is acquired fresh on
// each Start and released on every exit path.
type Player struct {
	cfg Config

	mu         sync.RWMutex
	state      atomic.Int32
	format     audio.Format
	configured bool
	cur        *session
	lastErr    error

	enqueued atomic.Int64
	played   atomic.Int64
	dropped  atomic.Int64
}

// session is one Start-to-Stop playback run. The worker captures its
// own session, so a worker abandoned by a timed-out Stop keeps its own
// run flag and queue and cannot touch a later session's state.
type session struct {
	id    string
	queue *ChunkQueue
	done  chan struct{}

	// Run flag read cooperatively by the worker between dequeues.
	running atomic.Bool
}

// NewPlayer creates a player with the given configuration.
func NewPlayer(cfg Config) (*Player, error) {
	if cfg.QueueCapacity <= 0 {
		cfg.QueueCapacity = DefaultQueueCapacity
	}
	if cfg.BufferFrames <= 0 {
		cfg.BufferFrames = DefaultBufferFrames
	}
	if cfg.DequeueTimeout <= 0 {
		cfg.DequeueTimeout = DefaultDequeueTimeout
	}
	if cfg.StopTimeout <= 0 {
		cfg.StopTimeout = DefaultStopTimeout
	}
	if cfg.NewDevice == nil {
		backend := cfg.Backend
		cfg.NewDevice = func() (output.Device, error) {
			return output.New(backend)
		}
	}

	return &Player{cfg: cfg}, nil
}

// Configure stores the audio format triple. The device encoding is
// derived from the sample width; no further validation is performed.
// The format cannot change while a session is active.
func (p *Player) Configure(sampleWidth, channels, sampleRate int) error {
	return p.ConfigureFormat(audio.Format{
		SampleWidth: sampleWidth,
		Channels:    channels,
		SampleRate:  sampleRate,
	})
}

// ConfigureFormat stores a format produced elsewhere, typically read
// from a container header. Equivalent to Configure.
func (p *Player) ConfigureFormat(format audio.Format) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.State() {
	case StateIdle, StateStopped:
	case StateClosed:
		return ErrClosed
	default:
		return fmt.Errorf("cannot configure a %s session", p.State())
	}

	p.format = format
	p.configured = true
	return nil
}

// Format returns the configured format, if any.
func (p *Player) Format() (audio.Format, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.format, p.configured
}

// ChunkDurationHint returns the wall-clock duration of a chunk of the
// given frame count at the configured format. It returns a small fixed
// interval when no format is configured, so callers can always use it
// as a polling period.
func (p *Player) ChunkDurationHint(frames int) time.Duration {
	format, ok := p.Format()
	if !ok || format.SampleRate <= 0 {
		return 10 * time.Millisecond
	}
	return time.Duration(frames) * time.Second / time.Duration(format.SampleRate)
}

// Start acquires a device session and launches the playback worker.
// Starting an already active session is a no-op. Starting without a
// configured format fails with ErrNotConfigured and leaves the state
// unchanged.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.State() {
	case StateIdle, StateStopped:
	case StateClosed:
		return ErrClosed
	default:
		return nil
	}

	if !p.configured {
		return ErrNotConfigured
	}

	p.setState(StateStarting)

	dev, err := p.cfg.NewDevice()
	if err != nil {
		p.setState(StateStopped)
		return fmt.Errorf("create device: %w", err)
	}
	if err := dev.Open(p.format, p.cfg.BufferFrames); err != nil {
		if cerr := dev.Close(); cerr != nil {
			log.Warn("device close error", "err", cerr)
		}
		p.setState(StateStopped)
		return fmt.Errorf("open device: %w", err)
	}
	if err := dev.Start(); err != nil {
		if cerr := dev.Close(); cerr != nil {
			log.Warn("device close error", "err", cerr)
		}
		p.setState(StateStopped)
		return fmt.Errorf("start device: %w", err)
	}

	s := &session{
		id:    uuid.NewString(),
		queue: NewChunkQueue(p.cfg.QueueCapacity),
		done:  make(chan struct{}),
	}
	s.running.Store(true)
	p.cur = s
	p.lastErr = nil

	go p.run(dev, s)

	p.setState(StatePlaying)
	log.Info("playback started", "session", s.id, "format", p.format.String())

	return nil
}

// TryEnqueue hands one chunk to the playback queue. It returns false
// without blocking when the session is not playing or the queue is full;
// the producer decides whether to retry, drop or throttle.
func (p *Player) TryEnqueue(chunk []byte) bool {
	p.mu.RLock()
	s := p.cur
	playing := p.State() == StatePlaying
	p.mu.RUnlock()

	if !playing || s == nil {
		p.dropped.Add(1)
		return false
	}
	if !s.queue.TryEnqueue(chunk) {
		p.dropped.Add(1)
		return false
	}
	p.enqueued.Add(1)
	return true
}

// Stop signals the worker to terminate after draining chunks enqueued
// before the call, waits a bounded time for it, and discards whatever
// remains in the queue. Stopping a session that is not playing is a
// no-op. Returns ErrShutdownTimeout when the worker had to be abandoned.
func (p *Player) Stop() error {
	p.mu.Lock()
	if p.State() != StatePlaying {
		p.mu.Unlock()
		return nil
	}
	p.setState(StateStopping)
	s := p.cur
	p.mu.Unlock()

	s.queue.SignalStop()

	var err error
	select {
	case <-s.done:
	case <-time.After(p.cfg.StopTimeout):
		// Soft bound: give up the join and force the worker out at its
		// next run-flag check. It still owns the device until then.
		s.running.Store(false)
		log.Warn("playback worker did not stop in time, abandoning",
			"session", s.id, "timeout", p.cfg.StopTimeout)
		err = ErrShutdownTimeout
	}

	if discarded := s.queue.Drain(); discarded > 0 {
		log.Debug("discarded queued chunks", "session", s.id, "count", discarded)
	}

	p.mu.Lock()
	p.setState(StateStopped)
	p.mu.Unlock()

	log.Info("playback stopped", "session", s.id)

	return err
}

// Close stops any active session and closes the player for good. Safe to
// call more than once.
func (p *Player) Close() error {
	if p.State() == StateClosed {
		return nil
	}

	err := p.Stop()

	p.mu.Lock()
	p.setState(StateClosed)
	p.mu.Unlock()

	return err
}

// Err returns the device error that ended the last session, if any.
func (p *Player) Err() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastErr
}

// Stats returns playback counters for the player's lifetime.
func (p *Player) Stats() Stats {
	p.mu.RLock()
	s := p.cur
	p.mu.RUnlock()

	depth := 0
	if s != nil {
		depth = s.queue.Len()
	}
	return Stats{
		Enqueued:   p.enqueued.Load(),
		Played:     p.played.Load(),
		Dropped:    p.dropped.Load(),
		QueueDepth: depth,
	}
}

// State returns the current session state.
func (p *Player) State() State {
	return State(p.state.Load())
}

func (p *Player) setState(s State) {
	p.state.Store(int32(s))
}

// run is the playback worker. It exclusively owns the device session
// from here until it returns, and releases it on every exit path.
func (p *Player) run(dev output.Device, s *session) {
	defer close(s.done)
	defer func() {
		if err := dev.Stop(); err != nil {
			log.Warn("device stop error", "session", s.id, "err", err)
		}
		if err := dev.Close(); err != nil {
			log.Warn("device close error", "session", s.id, "err", err)
		}
		s.running.Store(false)
	}()

	for s.running.Load() {
		item, ok := s.queue.Dequeue(p.cfg.DequeueTimeout)
		if !ok {
			// Timeout: re-check the run flag.
			continue
		}
		if item.Stop {
			return
		}
		if err := dev.Write(item.Chunk); err != nil {
			log.Error("device write failed", "session", s.id, "err", err)
			p.fail(s, fmt.Errorf("device write: %w", err))
			return
		}
		p.played.Add(1)
	}
}

// fail records a fatal device error and moves the session to Stopped so
// subsequent TryEnqueue calls fail fast. Called from the worker only. A
// worker whose session has already been superseded only cleans up after
// itself; the current session is untouched.
func (p *Player) fail(s *session, err error) {
	p.mu.Lock()
	if p.cur != s {
		p.mu.Unlock()
		s.queue.Drain()
		return
	}
	p.lastErr = err
	if st := p.State(); st == StatePlaying || st == StateStopping {
		p.setState(StateStopped)
	}
	p.mu.Unlock()

	s.queue.Drain()
}
