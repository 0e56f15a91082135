// ABOUTME: WAV chunk writer
// ABOUTME: Streams raw PCM chunks into a WAV container
package encode

import (
	"fmt"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/pcmcast/pcmcast-go/pkg/audio"
)

// WAVWriter streams PCM chunks into a WAV file. The header is finalized
// on Close.
type WAVWriter struct {
	file   *os.File
	enc    *wav.Encoder
	format audio.Format
}

// NewWAVWriter creates path and prepares a WAV encoder for the format.
func NewWAVWriter(path string, format audio.Format) (*WAVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create wav: %w", err)
	}

	enc := wav.NewEncoder(f, format.SampleRate, format.SampleWidth*8, format.Channels, 1)

	return &WAVWriter{file: f, enc: enc, format: format}, nil
}

// WriteChunk appends one chunk of raw little-endian PCM bytes.
func (w *WAVWriter) WriteChunk(chunk []byte) error {
	enc := w.format.Encoding()
	width := enc.Bytes()
	n := len(chunk) / width

	buf := &goaudio.IntBuffer{
		Data: make([]int, n),
		Format: &goaudio.Format{
			NumChannels: w.format.Channels,
			SampleRate:  w.format.SampleRate,
		},
		SourceBitDepth: width * 8,
	}
	for i := 0; i < n; i++ {
		buf.Data[i] = audio.Sample(chunk[i*width:], enc)
	}

	if err := w.enc.Write(buf); err != nil {
		return fmt.Errorf("write wav: %w", err)
	}
	return nil
}

// Close finalizes the WAV header and closes the file.
func (w *WAVWriter) Close() error {
	if err := w.enc.Close(); err != nil {
		w.file.Close()
		return fmt.Errorf("finalize wav: %w", err)
	}
	return w.file.Close()
}
