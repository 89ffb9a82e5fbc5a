// Package nullsink provides a no-op snapshot sink implementation.
package nullsink

import (
	"image"

	"github.com/user/roiplayer/pkg/ports"
)

// Sink is a no-op implementation of ports.SnapshotSink.
// It discards all snapshots.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// SaveZoom does nothing.
func (s *Sink) SaveZoom(index int, img image.Image) error {
	return nil
}

// SaveFrame does nothing.
func (s *Sink) SaveFrame(index int, img image.Image) error {
	return nil
}

// Ensure Sink implements ports.SnapshotSink
var _ ports.SnapshotSink = (*Sink)(nil)
