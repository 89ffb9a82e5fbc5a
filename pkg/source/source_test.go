package source

import (
	"errors"
	"image"
	"testing"

	"github.com/user/roiplayer/pkg/adapters/logger"
	"github.com/user/roiplayer/pkg/mocks"
	"github.com/user/roiplayer/pkg/ports"
)

func openMock(t *testing.T, frames int, fps float64) (*FrameSource, *mocks.Decoder) {
	t.Helper()
	dec := mocks.NewDecoder(frames, fps, 64, 48)
	src, err := Open(dec, "clip.mp4", logger.NewNoop())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return src, dec
}

func TestOpen_Metadata(t *testing.T) {
	src, _ := openMock(t, 100, 25)

	if src.TotalFrames() != 100 {
		t.Errorf("TotalFrames = %d, want 100", src.TotalFrames())
	}
	if src.Rate() != 25 {
		t.Errorf("Rate = %v, want 25", src.Rate())
	}
	if src.Position() != 0 {
		t.Errorf("Position = %d, want 0", src.Position())
	}
	if !src.Seekable() {
		t.Error("file source should be seekable")
	}
	if src.URI() != "clip.mp4" {
		t.Errorf("URI = %q", src.URI())
	}
}

func TestOpen_DecoderFailure(t *testing.T) {
	dec := &mocks.Decoder{
		OpenFunc: func(uri string) (ports.DecodeHandle, error) {
			return nil, errors.New("no such file")
		},
	}

	_, err := Open(dec, "missing.mp4", logger.NewNoop())
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestOpen_NonPositiveRate(t *testing.T) {
	for _, fps := range []float64{0, -1} {
		dec := mocks.NewDecoder(10, fps, 64, 48)
		_, err := Open(dec, "bad.mp4", logger.NewNoop())
		if !errors.Is(err, ErrSourceUnavailable) {
			t.Errorf("fps %v: expected ErrSourceUnavailable, got %v", fps, err)
		}
		if h := dec.LastHandle(); h == nil || !h.Closed {
			t.Errorf("fps %v: handle should be closed after rejection", fps)
		}
	}
}

func TestOpen_MissingFrameCount(t *testing.T) {
	for _, frames := range []int{0, -5} {
		dec := mocks.NewDecoder(frames, 30, 64, 48)
		_, err := Open(dec, "clip.avi", logger.NewNoop())
		if !errors.Is(err, ErrSourceUnavailable) {
			t.Errorf("frames %d: expected ErrSourceUnavailable, got %v", frames, err)
		}
		if h := dec.LastHandle(); h == nil || !h.Closed {
			t.Errorf("frames %d: handle should be closed after rejection", frames)
		}
	}
}

func TestOpen_LiveIgnoresFrameCount(t *testing.T) {
	dec := &mocks.Decoder{Info: ports.SourceInfo{FrameCount: 12, FPS: 30, Width: 8, Height: 8, Live: true}}
	src, err := Open(dec, "0", logger.NewNoop())
	if err != nil {
		t.Fatal(err)
	}
	if src.TotalFrames() != 0 {
		t.Errorf("TotalFrames = %d, want 0", src.TotalFrames())
	}
}

func TestSeek_Clamps(t *testing.T) {
	tests := []struct {
		name  string
		frame int
		want  int
	}{
		{"inside", 42, 42},
		{"negative", -3, 0},
		{"past end", 500, 100},
		{"at end", 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, dec := openMock(t, 100, 25)
			got, err := src.Seek(tt.frame)
			if err != nil {
				t.Fatalf("Seek failed: %v", err)
			}
			if got != tt.want || src.Position() != tt.want {
				t.Errorf("Seek(%d) = %d (position %d), want %d", tt.frame, got, src.Position(), tt.want)
			}
			if dec.LastHandle().Cursor != tt.want {
				t.Errorf("decode cursor = %d, want %d", dec.LastHandle().Cursor, tt.want)
			}
			if dec.LastHandle().Reads != 0 {
				t.Error("Seek must not read a frame")
			}
		})
	}
}

func TestReadNext_AdvancesByOne(t *testing.T) {
	src, _ := openMock(t, 100, 25)
	if _, err := src.Seek(10); err != nil {
		t.Fatal(err)
	}

	img, err := src.ReadNext()
	if err != nil {
		t.Fatalf("ReadNext failed: %v", err)
	}
	if idx := mocks.FrameIndex(img); idx != 10 {
		t.Errorf("frame index = %d, want 10", idx)
	}
	if src.Position() != 11 {
		t.Errorf("Position = %d, want 11", src.Position())
	}
}

func TestReadNext_EndOfStream(t *testing.T) {
	src, _ := openMock(t, 3, 25)

	for i := 0; i < 3; i++ {
		if _, err := src.ReadNext(); err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
	}
	if _, err := src.ReadNext(); !errors.Is(err, ErrEndOfStream) {
		t.Errorf("expected ErrEndOfStream, got %v", err)
	}
	if src.Position() != 3 {
		t.Errorf("Position = %d, want 3", src.Position())
	}
}

func TestReadNext_DecoderReportsNoFrame(t *testing.T) {
	dec := mocks.NewDecoder(10, 25, 8, 8)
	dec.ReadFunc = func(index int) (image.Image, bool, error) {
		return nil, false, nil
	}
	src, err := Open(dec, "short.mp4", logger.NewNoop())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := src.ReadNext(); !errors.Is(err, ErrEndOfStream) {
		t.Errorf("expected ErrEndOfStream, got %v", err)
	}
	if src.Position() != 0 {
		t.Errorf("Position = %d, want 0 after failed read", src.Position())
	}
}

func TestReadNext_DecodeErrorKeepsPosition(t *testing.T) {
	dec := mocks.NewDecoder(10, 25, 8, 8)
	dec.ReadFunc = func(index int) (image.Image, bool, error) {
		return nil, false, errors.New("corrupt packet")
	}
	src, err := Open(dec, "broken.mp4", logger.NewNoop())
	if err != nil {
		t.Fatal(err)
	}

	_, err = src.ReadNext()
	if err == nil || errors.Is(err, ErrEndOfStream) {
		t.Errorf("expected decode error, got %v", err)
	}
	if src.Position() != 0 {
		t.Errorf("Position = %d, want 0", src.Position())
	}
}

func TestRelease_Idempotent(t *testing.T) {
	src, dec := openMock(t, 10, 25)

	if err := src.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if err := src.Release(); err != nil {
		t.Fatalf("second Release failed: %v", err)
	}
	if dec.LastHandle().CloseCalls != 1 {
		t.Errorf("Close called %d times, want 1", dec.LastHandle().CloseCalls)
	}
	if !src.Released() {
		t.Error("Released should be true")
	}

	if _, err := src.ReadNext(); !errors.Is(err, ErrReleased) {
		t.Errorf("ReadNext after release: expected ErrReleased, got %v", err)
	}
	if _, err := src.Seek(1); !errors.Is(err, ErrReleased) {
		t.Errorf("Seek after release: expected ErrReleased, got %v", err)
	}

	var never *FrameSource
	if err := never.Release(); err != nil {
		t.Errorf("Release on nil source: %v", err)
	}
}

func TestLiveSource(t *testing.T) {
	dec := &mocks.Decoder{Info: ports.SourceInfo{FPS: 30, Width: 8, Height: 8, Live: true}}
	src, err := Open(dec, "0", logger.NewNoop())
	if err != nil {
		t.Fatal(err)
	}

	if src.Seekable() {
		t.Error("live source should not be seekable")
	}
	if pos, _ := src.Seek(20); pos != 0 {
		t.Errorf("Seek on live source moved to %d", pos)
	}
	for i := 0; i < 5; i++ {
		if _, err := src.ReadNext(); err != nil {
			t.Fatalf("live read %d: %v", i, err)
		}
	}
	if src.Position() != 5 {
		t.Errorf("Position = %d, want 5", src.Position())
	}
}
