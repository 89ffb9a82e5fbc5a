// Package gocvtracker provides single-object trackers backed by OpenCV.
package gocvtracker

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"gocv.io/x/gocv"
	"gocv.io/x/gocv/contrib"

	"github.com/user/roiplayer/pkg/ports"
)

// ErrUnknownKind is returned for an unsupported tracker name.
var ErrUnknownKind = errors.New("gocvtracker: unknown tracker kind")

// Kind selects the tracking algorithm.
type Kind string

const (
	KindCSRT Kind = "csrt"
	KindKCF  Kind = "kcf"
	KindMIL  Kind = "mil"
)

// ParseKind parses a tracker name, case-insensitively. An empty name yields KindCSRT.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return KindCSRT, nil
	case KindCSRT, KindKCF, KindMIL:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Factory creates trackers of one kind.
type Factory struct {
	kind Kind
}

// NewFactory creates a Factory for kind.
func NewFactory(kind Kind) *Factory {
	return &Factory{kind: kind}
}

// Kind returns the algorithm the factory builds.
func (f *Factory) Kind() Kind {
	return f.kind
}

// NewTracker creates a new, uninitialised tracker.
func (f *Factory) NewTracker() (ports.Tracker, error) {
	var t gocv.Tracker
	switch f.kind {
	case KindCSRT:
		t = contrib.NewTrackerCSRT()
	case KindKCF:
		t = contrib.NewTrackerKCF()
	case KindMIL:
		t = gocv.NewTrackerMIL()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, f.kind)
	}
	return &Tracker{tracker: t}, nil
}

// Ensure Factory implements ports.TrackerFactory
var _ ports.TrackerFactory = (*Factory)(nil)

// Tracker adapts a gocv.Tracker to ports.Tracker.
type Tracker struct {
	tracker gocv.Tracker
}

// Init initialises the tracker on frame at region.
func (t *Tracker) Init(frame image.Image, region image.Rectangle) error {
	mat, err := toMat(frame)
	if err != nil {
		return err
	}
	defer mat.Close()

	if !t.tracker.Init(mat, region) {
		return fmt.Errorf("init rejected region %v", region)
	}
	return nil
}

// Update locates the target in frame.
func (t *Tracker) Update(frame image.Image) (image.Rectangle, bool) {
	mat, err := toMat(frame)
	if err != nil {
		return image.Rectangle{}, false
	}
	defer mat.Close()

	return t.tracker.Update(mat)
}

// Close releases the native tracker.
func (t *Tracker) Close() error {
	return t.tracker.Close()
}

// Ensure Tracker implements ports.Tracker
var _ ports.Tracker = (*Tracker)(nil)

// toMat converts frame to a BGR Mat with its origin at (0,0).
func toMat(frame image.Image) (gocv.Mat, error) {
	mat, err := gocv.ImageToMatRGB(frame)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("convert frame: %w", err)
	}
	return mat, nil
}
