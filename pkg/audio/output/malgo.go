// ABOUTME: Malgo-based device session with 16/24/32-bit support
// ABOUTME: Uses miniaudio via malgo with a blocking byte ring buffer
package output

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gen2brain/malgo"

	"github.com/pcmcast/pcmcast-go/pkg/audio"
)

// Malgo is a Device backed by the miniaudio library. Playback is
// callback-driven: Write queues bytes in a ring buffer and blocks while
// the buffer is full, which throttles the writer to the device rate.
type Malgo struct {
	mu       sync.Mutex
	malgoCtx *malgo.AllocatedContext
	device   *malgo.Device
	format   audio.Format
	ring     *ringBuffer
	started  bool
}

// ringBuffer is a bounded byte FIFO. Writers block while it is full;
// the device callback reads without blocking and zero-fills on underrun.
type ringBuffer struct {
	mu       sync.Mutex
	notFull  *sync.Cond
	buf      []byte
	readPos  int
	writePos int
	count    int
	closed   bool
}

func newRingBuffer(capacity int) *ringBuffer {
	rb := &ringBuffer{buf: make([]byte, capacity)}
	rb.notFull = sync.NewCond(&rb.mu)
	return rb
}

// Write appends p to the buffer, blocking until every byte is queued or
// the buffer is closed.
func (rb *ringBuffer) Write(p []byte) (int, error) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	written := 0
	for written < len(p) {
		for rb.count == len(rb.buf) && !rb.closed {
			rb.notFull.Wait()
		}
		if rb.closed {
			return written, fmt.Errorf("ring buffer closed")
		}
		for written < len(p) && rb.count < len(rb.buf) {
			rb.buf[rb.writePos] = p[written]
			rb.writePos = (rb.writePos + 1) % len(rb.buf)
			rb.count++
			written++
		}
	}
	return written, nil
}

// read fills p from the buffer without blocking, zero-filling any
// shortfall.
func (rb *ringBuffer) read(p []byte) int {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	n := 0
	for n < len(p) && rb.count > 0 {
		p[n] = rb.buf[rb.readPos]
		rb.readPos = (rb.readPos + 1) % len(rb.buf)
		rb.count--
		n++
	}
	for i := n; i < len(p); i++ {
		p[i] = 0
	}
	if n > 0 {
		rb.notFull.Broadcast()
	}
	return n
}

// close wakes any blocked writers and marks the buffer unusable.
func (rb *ringBuffer) close() {
	rb.mu.Lock()
	rb.closed = true
	rb.notFull.Broadcast()
	rb.mu.Unlock()
}

// NewMalgo creates an unopened malgo device session.
func NewMalgo() Device {
	return &Malgo{}
}

// Open acquires the playback device for the given format.
func (m *Malgo) Open(format audio.Format, bufferFrames int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.device != nil {
		return fmt.Errorf("device already open")
	}

	var malgoFormat malgo.FormatType
	switch format.Encoding() {
	case audio.EncodingS16:
		malgoFormat = malgo.FormatS16
	case audio.EncodingS24:
		malgoFormat = malgo.FormatS24
	case audio.EncodingS32:
		malgoFormat = malgo.FormatS32
	default:
		return fmt.Errorf("unsupported encoding: %s (supported: s16le, s24le, s32le)", format.Encoding())
	}

	if m.malgoCtx == nil {
		ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
		if err != nil {
			return fmt.Errorf("failed to initialize malgo context: %w", err)
		}
		m.malgoCtx = ctx
	}

	// Ring buffer holds 500ms of audio; Write blocks once it is full.
	m.ring = newRingBuffer(format.BytesPerSecond() / 2)

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = malgoFormat
	deviceConfig.Playback.Channels = uint32(format.Channels)
	deviceConfig.SampleRate = uint32(format.SampleRate)
	deviceConfig.Alsa.NoMMap = 1
	if bufferFrames > 0 {
		deviceConfig.PeriodSizeInFrames = uint32(bufferFrames)
	}

	ring := m.ring
	deviceCallbacks := malgo.DeviceCallbacks{
		Data: func(pOutput, pInput []byte, frameCount uint32) {
			ring.read(pOutput)
		},
	}

	device, err := malgo.InitDevice(m.malgoCtx.Context, deviceConfig, deviceCallbacks)
	if err != nil {
		return fmt.Errorf("failed to initialize playback device: %w", err)
	}

	m.device = device
	m.format = format

	log.Debug("audio device opened", "backend", "malgo", "format", format.String())

	return nil
}

// Start begins pulling data from the ring buffer.
func (m *Malgo) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.device == nil {
		return fmt.Errorf("device not open")
	}
	if m.started {
		return nil
	}
	if err := m.device.Start(); err != nil {
		return fmt.Errorf("failed to start device: %w", err)
	}
	m.started = true
	return nil
}

// Write queues one chunk, blocking while the ring buffer is full.
func (m *Malgo) Write(chunk []byte) error {
	m.mu.Lock()
	ring := m.ring
	started := m.started
	m.mu.Unlock()

	if ring == nil || !started {
		return fmt.Errorf("device not started")
	}
	if _, err := ring.Write(chunk); err != nil {
		return fmt.Errorf("device write failed: %w", err)
	}
	return nil
}

// Stop halts playback.
func (m *Malgo) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.device == nil || !m.started {
		return nil
	}
	m.started = false
	if err := m.device.Stop(); err != nil {
		return fmt.Errorf("failed to stop device: %w", err)
	}
	return nil
}

// Close releases the device and wakes any blocked writer.
func (m *Malgo) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ring != nil {
		m.ring.close()
	}
	if m.device != nil {
		m.device.Uninit()
		m.device = nil
		m.started = false
	}
	if m.malgoCtx != nil {
		if err := m.malgoCtx.Uninit(); err != nil {
			log.Warn("malgo context uninit error", "err", err)
		}
		m.malgoCtx.Free()
		m.malgoCtx = nil
	}
	return nil
}
