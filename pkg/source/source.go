// Package source implements the frame source of the playback engine: a decode handle plus the
// position bookkeeping, clamping and metadata validation the engine relies on.
package source

import (
	"errors"
	"fmt"
	"image"

	"github.com/user/roiplayer/pkg/ports"
)

var (
	// ErrSourceUnavailable is returned when a source cannot be opened or reports unusable metadata.
	ErrSourceUnavailable = errors.New("source: unavailable")

	// ErrEndOfStream is returned by ReadNext when no more frames exist. It is not a failure.
	ErrEndOfStream = errors.New("source: end of stream")

	// ErrReleased is returned when a released source is used.
	ErrReleased = errors.New("source: released")
)

// FrameSource owns one decode handle and its cursor.
type FrameSource struct {
	uri      string
	handle   ports.DecodeHandle
	info     ports.SourceInfo
	position int
	logger   ports.Logger
}

// Open opens uri with decoder and validates its metadata.
// A non-positive frame rate, or a file source without a frame count, is treated as ErrSourceUnavailable.
func Open(decoder ports.Decoder, uri string, logger ports.Logger) (*FrameSource, error) {
	log := logger.WithComponent("source")

	handle, err := decoder.Open(uri)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, uri, err)
	}

	info := handle.Info()
	if info.FPS <= 0 {
		handle.Close()
		return nil, fmt.Errorf("%w: %s: frame rate %.2f", ErrSourceUnavailable, uri, info.FPS)
	}
	if info.Live {
		info.FrameCount = 0
	} else if info.FrameCount <= 0 {
		handle.Close()
		return nil, fmt.Errorf("%w: %s: frame count %d", ErrSourceUnavailable, uri, info.FrameCount)
	}

	log.Debug("Opened %s: %d frames at %.2f fps", uri, info.FrameCount, info.FPS)

	return &FrameSource{
		uri:    uri,
		handle: handle,
		info:   info,
		logger: log,
	}, nil
}

// URI returns the path or device the source was opened from.
func (s *FrameSource) URI() string {
	return s.uri
}

// Info returns the metadata read at open time. It never changes for the lifetime of the source.
func (s *FrameSource) Info() ports.SourceInfo {
	return s.info
}

// TotalFrames returns the frame count, 0 for live sources.
func (s *FrameSource) TotalFrames() int {
	return s.info.FrameCount
}

// Rate returns the native frame rate in frames per second.
func (s *FrameSource) Rate() float64 {
	return s.info.FPS
}

// Position returns the number of frames consumed, which is the index of the next frame to be read.
func (s *FrameSource) Position() int {
	return s.position
}

// Seekable reports whether Seek can move the cursor.
func (s *FrameSource) Seekable() bool {
	return !s.info.Live && s.info.FrameCount > 0
}

// Released reports whether the decode handle has been released.
func (s *FrameSource) Released() bool {
	return s.handle == nil
}

// Seek moves the cursor to frame, clamped to [0, TotalFrames]. It does not read a frame.
// It returns the position actually set.
func (s *FrameSource) Seek(frame int) (int, error) {
	if s.handle == nil {
		return s.position, ErrReleased
	}
	if !s.Seekable() {
		return s.position, nil
	}

	frame = clamp(frame, 0, s.info.FrameCount)
	if err := s.handle.SetPosition(frame); err != nil {
		return s.position, fmt.Errorf("seek to %d: %w", frame, err)
	}
	s.position = frame
	return frame, nil
}

// ReadNext decodes the frame under the cursor and advances the position by one.
// It returns ErrEndOfStream when no more frames exist; the position is unchanged on any error.
func (s *FrameSource) ReadNext() (image.Image, error) {
	if s.handle == nil {
		return nil, ErrReleased
	}
	if s.Seekable() && s.position >= s.info.FrameCount {
		return nil, ErrEndOfStream
	}

	img, ok, err := s.handle.Read()
	if err != nil {
		return nil, fmt.Errorf("read frame %d: %w", s.position, err)
	}
	if !ok || img == nil {
		return nil, ErrEndOfStream
	}

	s.position++
	return img, nil
}

// Release closes the decode handle. It is safe to call on an already released source and on a nil source.
func (s *FrameSource) Release() error {
	if s == nil || s.handle == nil {
		return nil
	}
	err := s.handle.Close()
	s.handle = nil
	s.logger.Debug("Released %s", s.uri)
	return err
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
