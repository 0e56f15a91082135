// ABOUTME: Chunk source interface definition
// ABOUTME: Common interface for streaming PCM chunks from containers
package decode

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pcmcast/pcmcast-go/pkg/audio"
)

// Source streams raw PCM chunks from a container or codec. Chunks carry
// whole frames at the source's format.
type Source interface {
	// Format returns the PCM format of the decoded stream.
	Format() audio.Format

	// ReadChunk returns the next chunk of at most frames frames of raw
	// PCM bytes. It returns io.EOF when the stream is exhausted.
	ReadChunk(frames int) ([]byte, error)

	// Close releases source resources.
	Close() error
}

// Open creates a source for the file at path, selected by extension.
func Open(path string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return OpenWAV(path)
	case ".mp3":
		return OpenMP3(path)
	default:
		return nil, fmt.Errorf("unsupported audio file: %s", path)
	}
}
