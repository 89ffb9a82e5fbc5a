// Package ports defines interfaces for the capabilities the playback engine depends on.
package ports

import (
	"image"
)

// Decoder abstracts the video decoding capability.
// It opens a decode handle bound to a file path or a device index.
type Decoder interface {
	// Open opens the source named by uri.
	// A uri made only of digits is treated as a capture device index by decoders that support devices.
	Open(uri string) (DecodeHandle, error)
}

// DecodeHandle is an open, positioned cursor into a video source.
type DecodeHandle interface {
	// Info returns the container metadata read when the handle was opened.
	Info() SourceInfo

	// SetPosition moves the decode cursor to the given zero-based frame index.
	SetPosition(frame int) error

	// Read decodes the frame under the cursor and advances the cursor by one.
	// ok is false when no more frames exist.
	Read() (img image.Image, ok bool, err error)

	// Close releases the handle. Calling Close more than once is safe.
	Close() error
}

// SourceInfo contains metadata of an opened source.
type SourceInfo struct {
	FrameCount int     // Total frames, 0 when unknown (live devices)
	FPS        float64 // Native frame rate
	Width      int
	Height     int
	Live       bool // Capture device rather than a file
}
