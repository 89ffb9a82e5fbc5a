package mocks

import (
	"image"

	"github.com/user/roiplayer/pkg/ports"
)

// View is a mock implementation of ports.View that records everything it receives.
type View struct {
	Frames     []ports.FrameUpdate
	Selections []image.Rectangle
}

func (m *View) ShowFrame(update ports.FrameUpdate) {
	m.Frames = append(m.Frames, update)
}

func (m *View) ShowSelection(rect image.Rectangle) {
	m.Selections = append(m.Selections, rect)
}

// Last returns the most recent frame update.
func (m *View) Last() (ports.FrameUpdate, bool) {
	if len(m.Frames) == 0 {
		return ports.FrameUpdate{}, false
	}
	return m.Frames[len(m.Frames)-1], true
}

var _ ports.View = (*View)(nil)
