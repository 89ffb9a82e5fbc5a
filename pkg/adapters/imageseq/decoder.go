// Package imageseq provides a pure-Go decoder over a directory of still images, one image per frame.
//
// Frames are ordered by file name. Supported formats are PNG, JPEG, GIF, BMP, TIFF and WebP.
package imageseq

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	// Register decoders for image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/user/roiplayer/pkg/ports"
)

var (
	// ErrNoFrames is returned when the directory holds no supported image.
	ErrNoFrames = errors.New("imageseq: no frames")

	// ErrInvalidRate is returned for a non-positive frame rate.
	ErrInvalidRate = errors.New("imageseq: invalid frame rate")
)

var extensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".bmp": true, ".tif": true, ".tiff": true, ".webp": true,
}

// Decoder implements ports.Decoder over image directories.
type Decoder struct {
	fs       ports.FileSystem
	renderer ports.Renderer
	rate     float64
}

// New creates a Decoder that plays every directory at rate frames per second.
func New(fs ports.FileSystem, renderer ports.Renderer, rate float64) *Decoder {
	return &Decoder{fs: fs, renderer: renderer, rate: rate}
}

// Open lists the images in dir. The first image is decoded to learn the frame size.
func (d *Decoder) Open(dir string) (ports.DecodeHandle, error) {
	if d.rate <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRate, d.rate)
	}

	names, err := d.fs.ListFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	var paths []string
	for _, name := range names {
		if extensions[strings.ToLower(filepath.Ext(name))] {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFrames, dir)
	}

	h := &handle{decoder: d, paths: paths}
	first, err := h.decode(0)
	if err != nil {
		return nil, err
	}
	b := first.Bounds()
	h.info = ports.SourceInfo{
		FrameCount: len(paths),
		FPS:        d.rate,
		Width:      b.Dx(),
		Height:     b.Dy(),
	}
	return h, nil
}

// Ensure Decoder implements ports.Decoder
var _ ports.Decoder = (*Decoder)(nil)

type handle struct {
	decoder *Decoder
	paths   []string
	info    ports.SourceInfo
	cursor  int
	closed  bool
}

func (h *handle) Info() ports.SourceInfo {
	return h.info
}

func (h *handle) SetPosition(frame int) error {
	if frame < 0 || frame > len(h.paths) {
		return fmt.Errorf("position %d out of range [0, %d]", frame, len(h.paths))
	}
	h.cursor = frame
	return nil
}

func (h *handle) Read() (image.Image, bool, error) {
	if h.closed {
		return nil, false, errors.New("imageseq: read after close")
	}
	if h.cursor >= len(h.paths) {
		return nil, false, nil
	}
	img, err := h.decode(h.cursor)
	if err != nil {
		return nil, false, err
	}
	h.cursor++
	return img, true, nil
}

func (h *handle) Close() error {
	h.closed = true
	return nil
}

func (h *handle) decode(i int) (image.Image, error) {
	data, err := h.decoder.fs.ReadFile(h.paths[i])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", h.paths[i], err)
	}
	img, err := h.decoder.renderer.DecodeImage(data, ports.FormatAuto)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", h.paths[i], err)
	}
	return img, nil
}
