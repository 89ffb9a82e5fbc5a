// Package mocks provides func-field mock implementations of the ports interfaces.
package mocks

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/user/roiplayer/pkg/ports"
)

// Decoder is a mock implementation of ports.Decoder producing synthetic frames.
type Decoder struct {
	mu sync.Mutex

	// Info is returned by every handle opened from this decoder.
	Info ports.SourceInfo

	OpenFunc func(uri string) (ports.DecodeHandle, error)
	// ReadFunc overrides DecodeHandle.Read when set. index is the cursor before the read.
	ReadFunc func(index int) (image.Image, bool, error)

	Opened  []string
	Handles []*DecodeHandle
}

// NewDecoder creates a mock decoder whose sources hold frames frames of w x h at fps.
func NewDecoder(frames int, fps float64, w, h int) *Decoder {
	return &Decoder{
		Info: ports.SourceInfo{FrameCount: frames, FPS: fps, Width: w, Height: h},
	}
}

func (m *Decoder) Open(uri string) (ports.DecodeHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Opened = append(m.Opened, uri)
	if m.OpenFunc != nil {
		return m.OpenFunc(uri)
	}
	h := &DecodeHandle{info: m.Info, readFunc: m.ReadFunc}
	m.Handles = append(m.Handles, h)
	return h, nil
}

// LastHandle returns the most recently opened handle, nil if none.
func (m *Decoder) LastHandle() *DecodeHandle {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Handles) == 0 {
		return nil
	}
	return m.Handles[len(m.Handles)-1]
}

var _ ports.Decoder = (*Decoder)(nil)

// DecodeHandle is a mock implementation of ports.DecodeHandle.
// Each frame carries its index, readable with FrameIndex.
type DecodeHandle struct {
	info     ports.SourceInfo
	readFunc func(index int) (image.Image, bool, error)

	Cursor     int
	Reads      int
	Closed     bool
	CloseCalls int
}

func (h *DecodeHandle) Info() ports.SourceInfo {
	return h.info
}

func (h *DecodeHandle) SetPosition(frame int) error {
	if h.Closed {
		return fmt.Errorf("handle closed")
	}
	h.Cursor = frame
	return nil
}

func (h *DecodeHandle) Read() (image.Image, bool, error) {
	if h.Closed {
		return nil, false, fmt.Errorf("read after close")
	}
	h.Reads++
	if h.readFunc != nil {
		img, ok, err := h.readFunc(h.Cursor)
		if ok && err == nil {
			h.Cursor++
		}
		return img, ok, err
	}
	if !h.info.Live && h.Cursor >= h.info.FrameCount {
		return nil, false, nil
	}
	img := NewFrame(h.info.Width, h.info.Height, h.Cursor)
	h.Cursor++
	return img, true, nil
}

func (h *DecodeHandle) Close() error {
	h.CloseCalls++
	h.Closed = true
	return nil
}

var _ ports.DecodeHandle = (*DecodeHandle)(nil)

// NewFrame creates a w x h frame whose top-left pixel encodes index.
func NewFrame(w, h, index int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.SetRGBA(0, 0, color.RGBA{R: uint8(index >> 8), G: uint8(index), A: 255})
	return img
}

// FrameIndex returns the index encoded by NewFrame, -1 when img is nil.
func FrameIndex(img image.Image) int {
	if img == nil {
		return -1
	}
	b := img.Bounds()
	r, g, _, _ := img.At(b.Min.X, b.Min.Y).RGBA()
	return int(r>>8)<<8 | int(g>>8)
}
