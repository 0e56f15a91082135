// ABOUTME: WAV chunk source
// ABOUTME: Reads container header info and streams raw PCM frames
package decode

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/pcmcast/pcmcast-go/pkg/audio"
)

// WAVSource streams PCM chunks from a WAV file. The format triple is
// taken from the container header.
type WAVSource struct {
	file   *os.File
	dec    *wav.Decoder
	format audio.Format
}

// OpenWAV opens a WAV file and reads its header.
func OpenWAV(path string) (*WAVSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wav: %w", err)
	}

	dec := wav.NewDecoder(f)
	dec.ReadInfo()
	if !dec.IsValidFile() {
		f.Close()
		return nil, errors.New("not a valid WAV file")
	}

	return &WAVSource{
		file: f,
		dec:  dec,
		format: audio.Format{
			SampleWidth: int(dec.BitDepth) / 8,
			Channels:    int(dec.NumChans),
			SampleRate:  int(dec.SampleRate),
		},
	}, nil
}

// Format returns the format read from the container header.
func (s *WAVSource) Format() audio.Format {
	return s.format
}

// Duration returns the total play time of the file.
func (s *WAVSource) Duration() (time.Duration, error) {
	return s.dec.Duration()
}

// ReadChunk reads up to frames frames and packs them little-endian at
// the source's sample width.
func (s *WAVSource) ReadChunk(frames int) ([]byte, error) {
	buf := &goaudio.IntBuffer{
		Data: make([]int, frames*s.format.Channels),
		Format: &goaudio.Format{
			NumChannels: s.format.Channels,
			SampleRate:  s.format.SampleRate,
		},
		SourceBitDepth: s.format.SampleWidth * 8,
	}

	n, err := s.dec.PCMBuffer(buf)
	if err != nil {
		return nil, fmt.Errorf("read wav: %w", err)
	}
	if n == 0 {
		return nil, io.EOF
	}

	enc := s.format.Encoding()
	width := enc.Bytes()
	chunk := make([]byte, n*width)
	for i, v := range buf.Data[:n] {
		audio.PutSample(chunk[i*width:], enc, v)
	}
	return chunk, nil
}

// Close closes the underlying file.
func (s *WAVSource) Close() error {
	return s.file.Close()
}
