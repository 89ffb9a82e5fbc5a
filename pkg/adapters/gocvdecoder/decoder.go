// Package gocvdecoder provides a decoder implementation over OpenCV's VideoCapture.
package gocvdecoder

import (
	"errors"
	"fmt"
	"image"
	"os"
	"strconv"

	"gocv.io/x/gocv"

	"github.com/user/roiplayer/pkg/adapters/mp4probe"
	"github.com/user/roiplayer/pkg/ports"
)

// ErrOpenFailed is returned when neither a file nor a capture device can be opened for a URI.
var ErrOpenFailed = errors.New("gocvdecoder: open failed")

// Decoder implements ports.Decoder with gocv.
type Decoder struct {
	logger ports.Logger
	probe  func(path string) (mp4probe.Info, error)
}

// New creates a new Decoder.
func New(logger ports.Logger) *Decoder {
	return &Decoder{
		logger: logger.WithComponent("gocv"),
		probe:  mp4probe.ProbeFile,
	}
}

// Open opens uri as a file when it exists on disk, otherwise as a numeric capture device index.
func (d *Decoder) Open(uri string) (ports.DecodeHandle, error) {
	var (
		vc   *gocv.VideoCapture
		err  error
		live bool
	)
	if _, statErr := os.Stat(uri); statErr == nil {
		vc, err = gocv.VideoCaptureFile(uri)
	} else if id, convErr := strconv.Atoi(uri); convErr == nil {
		vc, err = gocv.VideoCaptureDevice(id)
		live = true
	} else {
		return nil, fmt.Errorf("%w: %s: %v", ErrOpenFailed, uri, statErr)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrOpenFailed, uri, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("%w: %s", ErrOpenFailed, uri)
	}

	info := ports.SourceInfo{
		FrameCount: int(vc.Get(gocv.VideoCaptureFrameCount)),
		FPS:        vc.Get(gocv.VideoCaptureFPS),
		Width:      int(vc.Get(gocv.VideoCaptureFrameWidth)),
		Height:     int(vc.Get(gocv.VideoCaptureFrameHeight)),
		Live:       live,
	}
	if live {
		info.FrameCount = 0
	} else if info.FPS <= 0 || info.FrameCount <= 0 {
		info = d.fillFromContainer(uri, info)
	}

	return &handle{vc: vc, mat: gocv.NewMat(), info: info}, nil
}

// fillFromContainer fills missing rate and frame count from MP4 metadata.
// Backends that cannot report them for some containers otherwise leave the clock without a rate.
func (d *Decoder) fillFromContainer(uri string, info ports.SourceInfo) ports.SourceInfo {
	probed, err := d.probe(uri)
	if err != nil {
		d.logger.Debug("Container probe of %s failed: %s", uri, err.Error())
		return info
	}
	if info.FPS <= 0 {
		info.FPS = probed.FPS
	}
	if info.FrameCount <= 0 {
		info.FrameCount = probed.FrameCount
	}
	if info.Width == 0 || info.Height == 0 {
		info.Width, info.Height = probed.Width, probed.Height
	}
	return info
}

// Ensure Decoder implements ports.Decoder
var _ ports.Decoder = (*Decoder)(nil)

type handle struct {
	vc   *gocv.VideoCapture
	mat  gocv.Mat
	info ports.SourceInfo
}

func (h *handle) Info() ports.SourceInfo {
	return h.info
}

func (h *handle) SetPosition(frame int) error {
	if h.info.Live {
		return nil
	}
	h.vc.Set(gocv.VideoCapturePosFrames, float64(frame))
	return nil
}

func (h *handle) Read() (image.Image, bool, error) {
	if ok := h.vc.Read(&h.mat); !ok || h.mat.Empty() {
		return nil, false, nil
	}
	img, err := h.mat.ToImage()
	if err != nil {
		return nil, false, fmt.Errorf("convert frame: %w", err)
	}
	return img, true, nil
}

func (h *handle) Close() error {
	h.mat.Close()
	return h.vc.Close()
}
