// Package tracking holds the single-object tracker lifecycle and the pointer-driven region selection
// that precedes it.
package tracking

import (
	"errors"
	"fmt"
	"image"

	"github.com/user/roiplayer/pkg/ports"
)

var (
	// ErrDegenerateRegion is returned by Arm for a region with zero width or height.
	ErrDegenerateRegion = errors.New("tracking: degenerate region")

	// ErrTrackerInit is returned when a tracker cannot be created or initialised.
	ErrTrackerInit = errors.New("tracking: tracker init failed")

	// ErrTrackerUpdate is returned when the tracker loses the target on a frame.
	ErrTrackerUpdate = errors.New("tracking: tracker update failed")

	// ErrNotArmed is returned by Update when no tracker is armed.
	ErrNotArmed = errors.New("tracking: not armed")
)

// State is the tracker session state.
type State int

const (
	// StateIdle holds no tracker.
	StateIdle State = iota
	// StateArmed holds a tracker initialised on a frame but not yet updated.
	StateArmed
	// StateTracking means the last update located the target.
	StateTracking
	// StateLost means the last update failed. The tracker is kept.
	StateLost
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArmed:
		return "armed"
	case StateTracking:
		return "tracking"
	case StateLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Session holds at most one tracker.
type Session struct {
	factory ports.TrackerFactory
	logger  ports.Logger

	tracker ports.Tracker
	state   State
	region  image.Rectangle
	box     image.Rectangle

	arms        int
	failures    int
	consecutive int
}

// NewSession creates an idle session that builds trackers with factory.
func NewSession(factory ports.TrackerFactory, logger ports.Logger) *Session {
	return &Session{
		factory: factory,
		logger:  logger.WithComponent("tracker"),
	}
}

// Arm replaces any current tracker with a new one initialised on frame at region.
// A region with zero width or height leaves the session untouched and returns ErrDegenerateRegion.
func (s *Session) Arm(frame image.Image, region image.Rectangle) error {
	region = region.Canon()
	if region.Dx() == 0 || region.Dy() == 0 {
		return ErrDegenerateRegion
	}

	s.drop()

	tracker, err := s.factory.NewTracker()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTrackerInit, err)
	}
	if err := tracker.Init(frame, region); err != nil {
		tracker.Close()
		return fmt.Errorf("%w: %v", ErrTrackerInit, err)
	}

	s.tracker = tracker
	s.state = StateArmed
	s.region = region
	s.box = region
	s.consecutive = 0
	s.arms++
	s.logger.Info("Tracker armed on %dx%d region at (%d,%d)", region.Dx(), region.Dy(), region.Min.X, region.Min.Y)
	return nil
}

// Update feeds frame to the tracker and returns the located rectangle.
// A failed update keeps the tracker armed and returns ErrTrackerUpdate.
func (s *Session) Update(frame image.Image) (image.Rectangle, error) {
	if s.tracker == nil {
		return image.Rectangle{}, ErrNotArmed
	}

	box, ok := s.tracker.Update(frame)
	if !ok || box.Empty() {
		s.failures++
		s.consecutive++
		if s.state != StateLost {
			s.logger.Warn("Tracker lost the target")
		}
		s.state = StateLost
		return image.Rectangle{}, ErrTrackerUpdate
	}

	if s.state == StateLost {
		s.logger.Info("Tracker recovered after %d frames", s.consecutive)
	}
	s.consecutive = 0
	s.state = StateTracking
	s.box = box
	return box, nil
}

// Disarm drops the tracker but remembers the region it was armed with.
func (s *Session) Disarm() {
	if s.tracker == nil {
		return
	}
	s.drop()
	s.logger.Debug("Tracker disarmed")
}

// Clear drops the tracker and forgets the region.
func (s *Session) Clear() {
	s.drop()
	s.region = image.Rectangle{}
	s.box = image.Rectangle{}
}

func (s *Session) drop() {
	if s.tracker != nil {
		if err := s.tracker.Close(); err != nil {
			s.logger.Warn("Failed to close tracker: %s", err.Error())
		}
		s.tracker = nil
	}
	s.state = StateIdle
	s.consecutive = 0
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Armed reports whether a tracker is held.
func (s *Session) Armed() bool {
	return s.tracker != nil
}

// Region returns the region the tracker was last armed with.
func (s *Session) Region() image.Rectangle {
	return s.region
}

// Box returns the last successfully tracked rectangle.
func (s *Session) Box() image.Rectangle {
	return s.box
}

// Arms returns how many times a tracker has been armed.
func (s *Session) Arms() int {
	return s.arms
}

// Failures returns the total number of failed updates.
func (s *Session) Failures() int {
	return s.failures
}

// ConsecutiveFailures returns the number of failed updates since the last success or arm.
func (s *Session) ConsecutiveFailures() int {
	return s.consecutive
}
