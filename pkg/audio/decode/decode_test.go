// ABOUTME: Tests for chunk sources
// ABOUTME: Covers WAV round trips, raw PCM sources and file dispatch
package decode

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pcmcast/pcmcast-go/pkg/audio"
	"github.com/pcmcast/pcmcast-go/pkg/audio/encode"
)

var mono16 = audio.Format{SampleWidth: 2, Channels: 1, SampleRate: 44100}

// writeTestWAV creates a WAV file holding the given PCM bytes.
func writeTestWAV(t *testing.T, format audio.Format, pcm []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.wav")
	w, err := encode.NewWAVWriter(path, format)
	require.NoError(t, err)
	require.NoError(t, w.WriteChunk(pcm))
	require.NoError(t, w.Close())
	return path
}

func testPCM(frames int) []byte {
	pcm := make([]byte, frames*2)
	for i := 0; i < frames; i++ {
		audio.PutSample(pcm[i*2:], audio.EncodingS16, i-frames/2)
	}
	return pcm
}

func TestWAVSourceFormatFromHeader(t *testing.T) {
	path := writeTestWAV(t, mono16, testPCM(256))

	src, err := OpenWAV(path)
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, mono16, src.Format())
}

func TestWAVSourceRoundTrip(t *testing.T) {
	pcm := testPCM(1000)
	path := writeTestWAV(t, mono16, pcm)

	src, err := OpenWAV(path)
	require.NoError(t, err)
	defer src.Close()

	var got []byte
	for {
		chunk, err := src.ReadChunk(256)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, chunk...)
	}

	assert.Equal(t, pcm, got)
}

func TestWAVSourceChunkBounded(t *testing.T) {
	path := writeTestWAV(t, mono16, testPCM(1000))

	src, err := OpenWAV(path)
	require.NoError(t, err)
	defer src.Close()

	chunk, err := src.ReadChunk(256)
	require.NoError(t, err)
	assert.Len(t, chunk, 256*mono16.FrameBytes())
}

func TestOpenWAVRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.wav")
	require.NoError(t, os.WriteFile(path, []byte("not a wav file"), 0o644))

	_, err := OpenWAV(path)
	assert.Error(t, err)
}

func TestOpenDispatch(t *testing.T) {
	path := writeTestWAV(t, mono16, testPCM(16))

	src, err := Open(path)
	require.NoError(t, err)
	src.Close()

	_, err = Open("track.flac")
	assert.ErrorContains(t, err, "unsupported audio file")
}

func TestOpenMP3RejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.mp3")
	require.NoError(t, os.WriteFile(path, []byte("definitely not mpeg audio"), 0o644))

	_, err := OpenMP3(path)
	assert.Error(t, err)
}

func TestRawSource(t *testing.T) {
	pcm := testPCM(100)
	src := NewRaw(bytes.NewReader(pcm), mono16)
	defer src.Close()

	assert.Equal(t, mono16, src.Format())

	chunk, err := src.ReadChunk(60)
	require.NoError(t, err)
	assert.Equal(t, pcm[:120], chunk)

	chunk, err = src.ReadChunk(60)
	require.NoError(t, err)
	assert.Equal(t, pcm[120:], chunk)

	_, err = src.ReadChunk(60)
	assert.Equal(t, io.EOF, err)
}
