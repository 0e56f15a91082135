// ABOUTME: Player error definitions
// ABOUTME: Sentinel errors for configuration, lifecycle and shutdown conditions
package player

import "errors"

var (
	// ErrNotConfigured is returned by Start when no audio format has
	// been configured.
	ErrNotConfigured = errors.New("audio format not configured")

	// ErrClosed is returned when an operation is attempted on a closed
	// player.
	ErrClosed = errors.New("player is closed")

	// ErrShutdownTimeout is returned when the worker does not terminate
	// within the configured stop timeout. The worker is abandoned and
	// will release the device on its own once it observes the cleared
	// run flag.
	ErrShutdownTimeout = errors.New("timed out waiting for playback worker")
)
