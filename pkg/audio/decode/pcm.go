// ABOUTME: Raw PCM chunk source
// ABOUTME: Wraps any reader of headerless PCM at a caller-supplied format
package decode

import (
	"fmt"
	"io"

	"github.com/pcmcast/pcmcast-go/pkg/audio"
)

// RawSource streams chunks from a reader of headerless PCM bytes. The
// format is supplied by the caller and trusted as-is.
type RawSource struct {
	r      io.Reader
	format audio.Format
}

// NewRaw wraps r as a chunk source at the given format.
func NewRaw(r io.Reader, format audio.Format) *RawSource {
	return &RawSource{r: r, format: format}
}

// Format returns the caller-supplied format.
func (s *RawSource) Format() audio.Format {
	return s.format
}

// ReadChunk reads up to frames frames of raw bytes.
func (s *RawSource) ReadChunk(frames int) ([]byte, error) {
	buf := make([]byte, frames*s.format.FrameBytes())
	n, err := io.ReadFull(s.r, buf)
	if err == io.ErrUnexpectedEOF {
		err = nil
	}
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read pcm: %w", err)
	}
	return buf[:n], nil
}

// Close closes the reader when it is closable.
func (s *RawSource) Close() error {
	if c, ok := s.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
