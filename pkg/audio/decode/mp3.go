// ABOUTME: MP3 chunk source
// ABOUTME: Decodes MP3 files to 16-bit stereo PCM chunks
package decode

import (
	"fmt"
	"io"
	"os"

	"github.com/hajimehoshi/go-mp3"

	"github.com/pcmcast/pcmcast-go/pkg/audio"
)

// MP3Source streams PCM chunks decoded from an MP3 file. go-mp3 always
// produces 16-bit little-endian stereo at the file's sample rate.
type MP3Source struct {
	file   *os.File
	dec    *mp3.Decoder
	format audio.Format
}

// OpenMP3 opens an MP3 file and prepares the decoder.
func OpenMP3(path string) (*MP3Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mp3: %w", err)
	}

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create mp3 decoder: %w", err)
	}

	return &MP3Source{
		file: f,
		dec:  dec,
		format: audio.Format{
			SampleWidth: 2,
			Channels:    2,
			SampleRate:  dec.SampleRate(),
		},
	}, nil
}

// Format returns the decoded stream format.
func (s *MP3Source) Format() audio.Format {
	return s.format
}

// ReadChunk decodes up to frames frames of PCM.
func (s *MP3Source) ReadChunk(frames int) ([]byte, error) {
	buf := make([]byte, frames*s.format.FrameBytes())
	n, err := io.ReadFull(s.dec, buf)
	if err == io.ErrUnexpectedEOF {
		err = nil
	}
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("mp3 decode error: %w", err)
	}
	if n == 0 {
		return nil, io.EOF
	}
	return buf[:n], nil
}

// Close closes the underlying file.
func (s *MP3Source) Close() error {
	return s.file.Close()
}
