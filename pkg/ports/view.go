package ports

import (
	"image"
)

// FrameUpdate is what the engine pushes to the UI after every rendered frame.
type FrameUpdate struct {
	// Main is the frame fitted to the render surface. Nil after a reset.
	Main image.Image
	// Offset is the letterbox offset of Main inside the surface.
	Offset image.Point
	// Zoom is the cropped view of the tracked region, nil when there is none this frame.
	Zoom image.Image
	// Tracked is the tracked region in frame pixels, empty when there is none this frame.
	Tracked image.Rectangle

	Progress int // 0..Total
	Total    int
	TimeText string // "elapsed / total"
}

// View is the UI boundary the engine renders into.
type View interface {
	// ShowFrame receives every rendered frame.
	ShowFrame(update FrameUpdate)

	// ShowSelection receives the live selection preview in surface coordinates.
	// An empty rectangle clears the preview.
	ShowSelection(rect image.Rectangle)
}
