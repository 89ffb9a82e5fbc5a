package player

import (
	"image"
	"time"

	"github.com/user/roiplayer/pkg/ports"
	"github.com/user/roiplayer/pkg/tracking"
)

// State is the controller state.
type State int

const (
	// StateEmpty has no source open.
	StateEmpty State = iota
	// StateLoaded has a source open at a rest position.
	StateLoaded
	// StatePlaying has the clock armed.
	StatePlaying
	// StatePaused has the clock disarmed after playing.
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoaded:
		return "loaded"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Session is a read-only snapshot of the controller's session record.
type Session struct {
	State  State
	Source string
	Info   ports.SourceInfo

	CurrentFrame int
	TotalFrames  int
	NativeRate   float64
	Interval     time.Duration
	TimeText     string

	Playing bool

	// TrackingRegion is the committed selection in frame pixels, valid when HasRegion is set.
	TrackingRegion image.Rectangle
	HasRegion      bool
	TrackerArmed   bool
	TrackerState   tracking.State
}

// StopReason tells why playback stopped on its own.
type StopReason int

const (
	// StopEndOfStream means the last frame was played.
	StopEndOfStream StopReason = iota
	// StopReadError means the decoder failed mid-stream.
	StopReadError
)

func (r StopReason) String() string {
	if r == StopReadError {
		return "read error"
	}
	return "end of stream"
}

// Stats counts what happened while one source was open.
type Stats struct {
	Source string
	Info   ports.SourceInfo

	FramesPlayed     int
	LastFrame        int
	Seeks            int
	TrackerArms      int
	TrackerFailures  int
	ZoomFrames       int
	SnapshotsWritten int
	SnapshotErrors   int

	// EndReason is empty while the source is still playable.
	EndReason string
}
