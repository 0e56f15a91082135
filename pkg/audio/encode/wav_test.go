// ABOUTME: Tests for the WAV chunk writer
// ABOUTME: Verifies header fields and sample payload
package encode

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pcmcast/pcmcast-go/pkg/audio"
)

func TestWAVWriterHeader(t *testing.T) {
	format := audio.Format{SampleWidth: 2, Channels: 2, SampleRate: 48000}
	path := filepath.Join(t.TempDir(), "out.wav")

	w, err := NewWAVWriter(path, format)
	require.NoError(t, err)

	chunk := make([]byte, 1024*format.FrameBytes())
	require.NoError(t, w.WriteChunk(chunk))
	require.NoError(t, w.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	dec.ReadInfo()
	require.True(t, dec.IsValidFile())
	assert.Equal(t, uint32(48000), dec.SampleRate)
	assert.Equal(t, uint16(2), dec.NumChans)
	assert.Equal(t, uint16(16), dec.BitDepth)
}

func TestWAVWriterPayload(t *testing.T) {
	format := audio.Format{SampleWidth: 2, Channels: 1, SampleRate: 8000}
	path := filepath.Join(t.TempDir(), "ramp.wav")

	chunk := make([]byte, 16)
	for i := 0; i < 8; i++ {
		audio.PutSample(chunk[i*2:], audio.EncodingS16, i*100-400)
	}

	w, err := NewWAVWriter(path, format)
	require.NoError(t, err)
	require.NoError(t, w.WriteChunk(chunk))
	require.NoError(t, w.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)
	require.Len(t, buf.Data, 8)
	for i, v := range buf.Data {
		assert.Equal(t, i*100-400, v)
	}
}
