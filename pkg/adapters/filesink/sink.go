// Package filesink provides a file-based snapshot sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/roiplayer/pkg/ports"
)

// Sink saves zoom views and fitted frames to files under baseDir.
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
	format   ports.ImageFormat
	quality  int
}

// New creates a new FileSink writing images in format at quality (JPEG only).
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer, format ports.ImageFormat, quality int) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
		format:   format,
		quality:  quality,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveZoom saves the zoom view of frame index as zoom/zoom-NNNNNN.ext.
func (s *Sink) SaveZoom(index int, img image.Image) error {
	return s.save("zoom", index, img)
}

// SaveFrame saves the fitted main view of frame index as frames/frame-NNNNNN.ext.
func (s *Sink) SaveFrame(index int, img image.Image) error {
	return s.save("frames", index, img)
}

func (s *Sink) save(kind string, index int, img image.Image) error {
	dir := filepath.Join(s.baseDir, kind)
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	data, err := s.renderer.EncodeImage(img, s.format, s.quality)
	if err != nil {
		return fmt.Errorf("encode %s %d: %w", kind, index, err)
	}
	name := fmt.Sprintf("%s-%06d.%s", prefix(kind), index, s.format.Extension())
	return s.fs.WriteFile(filepath.Join(dir, name), data)
}

func prefix(kind string) string {
	if kind == "frames" {
		return "frame"
	}
	return kind
}

// Ensure Sink implements ports.SnapshotSink
var _ ports.SnapshotSink = (*Sink)(nil)
