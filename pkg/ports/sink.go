package ports

import (
	"image"
)

// SnapshotSink receives per-tick images for offline inspection.
type SnapshotSink interface {
	// Enabled returns true if snapshots are written.
	Enabled() bool

	// SaveZoom saves the zoom view rendered for frame index.
	SaveZoom(index int, img image.Image) error

	// SaveFrame saves the fitted main view rendered for frame index.
	SaveFrame(index int, img image.Image) error
}
