package mocks

import (
	"image"
	"sync"

	"github.com/user/roiplayer/pkg/ports"
)

// SnapshotSink is a mock implementation of ports.SnapshotSink.
type SnapshotSink struct {
	mu sync.RWMutex

	enabled bool

	SaveZoomFunc func(index int, img image.Image) error

	Zooms  map[int]image.Image
	Frames map[int]image.Image
}

// NewSnapshotSink creates a new mock SnapshotSink.
func NewSnapshotSink(enabled bool) *SnapshotSink {
	return &SnapshotSink{
		enabled: enabled,
		Zooms:   make(map[int]image.Image),
		Frames:  make(map[int]image.Image),
	}
}

func (m *SnapshotSink) Enabled() bool {
	return m.enabled
}

func (m *SnapshotSink) SaveZoom(index int, img image.Image) error {
	if m.SaveZoomFunc != nil {
		return m.SaveZoomFunc(index, img)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Zooms[index] = img
	return nil
}

func (m *SnapshotSink) SaveFrame(index int, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Frames[index] = img
	return nil
}

var _ ports.SnapshotSink = (*SnapshotSink)(nil)
