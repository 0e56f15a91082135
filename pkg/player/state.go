// ABOUTME: Playback session state definitions
// ABOUTME: Defines the lifecycle states of a Player
package player

// State represents the lifecycle state of a playback session.
type State int32

const (
	// StateIdle indicates no session is active.
	StateIdle State = iota
	// StateStarting indicates the device session is being acquired.
	StateStarting
	// StatePlaying indicates the worker is draining the queue.
	StatePlaying
	// StateStopping indicates shutdown has been requested.
	StateStopping
	// StateStopped indicates the worker has terminated. A stopped
	// session can be started again.
	StateStopped
	// StateClosed indicates the player has been closed for good.
	StateClosed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarting:
		return "starting"
	case StatePlaying:
		return "playing"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}
