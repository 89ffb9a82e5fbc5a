package mocks

import (
	"image"
	"image/color"

	"github.com/user/roiplayer/pkg/ports"
)

// Box records one DrawBox call.
type Box struct {
	Rect  image.Rectangle
	Color color.Color
	Width float64
}

// Renderer is a mock implementation of ports.Renderer.
// DrawBox returns img unchanged and records the box.
type Renderer struct {
	DecodeImageFunc func(data []byte, format ports.ImageFormat) (image.Image, error)
	EncodeImageFunc func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)

	Boxes []Box
}

func (m *Renderer) DecodeImage(data []byte, format ports.ImageFormat) (image.Image, error) {
	if m.DecodeImageFunc != nil {
		return m.DecodeImageFunc(data, format)
	}
	return image.NewRGBA(image.Rect(0, 0, 100, 100)), nil
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	return []byte{}, nil
}

func (m *Renderer) DrawBox(img image.Image, box image.Rectangle, c color.Color, width float64) image.Image {
	m.Boxes = append(m.Boxes, Box{Rect: box, Color: c, Width: width})
	return img
}

var _ ports.Renderer = (*Renderer)(nil)
