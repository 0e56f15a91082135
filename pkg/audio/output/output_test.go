// ABOUTME: Audio device interface tests
// ABOUTME: Verifies Device implementations and backend selection
package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pcmcast/pcmcast-go/pkg/audio"
)

func TestBackendsImplementDevice(t *testing.T) {
	var _ Device = (*Malgo)(nil)
	var _ Device = (*Oto)(nil)
	var _ Device = (*PortAudio)(nil)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		wantErr bool
	}{
		{"default", "", false},
		{"malgo", "malgo", false},
		{"oto", "oto", false},
		{"portaudio", "portaudio", false},
		{"unknown", "pulseaudio", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev, err := New(tt.backend)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, dev)
		})
	}
}

func TestWriteBeforeOpen(t *testing.T) {
	assert.Error(t, NewMalgo().Write([]byte{0, 0}))
	assert.Error(t, NewOto().Write([]byte{0, 0}))
}

func TestMalgoRejectsUnsupportedEncoding(t *testing.T) {
	m := &Malgo{}
	err := m.Open(audio.Format{SampleWidth: 1, Channels: 1, SampleRate: 8000}, 0)
	assert.ErrorContains(t, err, "unsupported encoding")
}

func TestOtoRejectsWideSamples(t *testing.T) {
	o := &Oto{}
	err := o.Open(audio.Format{SampleWidth: 3, Channels: 2, SampleRate: 96000}, 0)
	assert.ErrorContains(t, err, "only supports s16le")
}

func TestRingBufferWriteRead(t *testing.T) {
	rb := newRingBuffer(8)

	n, err := rb.Write([]byte{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	out := make([]byte, 6)
	got := rb.read(out)
	assert.Equal(t, 4, got)
	assert.Equal(t, []byte{1, 2, 3, 4, 0, 0}, out)
}

func TestRingBufferBlocksUntilDrained(t *testing.T) {
	rb := newRingBuffer(4)

	_, err := rb.Write([]byte{1, 2, 3, 4})
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		// Blocks until the reader makes room.
		_, _ = rb.Write([]byte{5, 6})
	}()

	out := make([]byte, 4)
	rb.read(out)
	<-done

	got := make([]byte, 2)
	assert.Equal(t, 2, rb.read(got))
	assert.Equal(t, []byte{5, 6}, got)
}

func TestRingBufferCloseUnblocksWriter(t *testing.T) {
	rb := newRingBuffer(2)

	_, err := rb.Write([]byte{1, 2})
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() {
		_, err := rb.Write([]byte{3})
		errCh <- err
	}()

	rb.close()
	assert.Error(t, <-errCh)
}
