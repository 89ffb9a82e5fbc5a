// Package render provides the stateless frame transforms of the playback engine:
// fitting a frame into a display surface and cropping a zoom view out of it.
package render

import (
	"image"

	"golang.org/x/image/draw"
)

// Fit describes how a frame was placed inside a surface.
type Fit struct {
	FrameWidth  int
	FrameHeight int
	Width       int // Scaled width
	Height      int // Scaled height
	Offset      image.Point
}

// Scale returns the uniform scale factor applied to the frame.
func (f Fit) Scale() float64 {
	if f.FrameWidth == 0 {
		return 1
	}
	return float64(f.Width) / float64(f.FrameWidth)
}

// IsZero reports whether f describes no placement at all.
func (f Fit) IsZero() bool {
	return f.FrameWidth == 0 || f.FrameHeight == 0 || f.Width == 0 || f.Height == 0
}

// ToFrame maps a surface point into frame pixels, clamped to the frame.
// A zero Fit maps points unchanged.
func (f Fit) ToFrame(p image.Point) image.Point {
	if f.IsZero() {
		return p
	}
	x := (p.X - f.Offset.X) * f.FrameWidth / f.Width
	y := (p.Y - f.Offset.Y) * f.FrameHeight / f.Height
	return image.Pt(clamp(x, 0, f.FrameWidth), clamp(y, 0, f.FrameHeight))
}

// ToSurface maps a frame rectangle into surface coordinates.
func (f Fit) ToSurface(r image.Rectangle) image.Rectangle {
	if f.IsZero() {
		return r
	}
	lo := image.Pt(r.Min.X*f.Width/f.FrameWidth, r.Min.Y*f.Height/f.FrameHeight)
	hi := image.Pt(r.Max.X*f.Width/f.FrameWidth, r.Max.Y*f.Height/f.FrameHeight)
	return image.Rectangle{Min: lo, Max: hi}.Add(f.Offset)
}

// ComputeFit computes the letterboxed placement of a frameW x frameH frame in a surfaceW x surfaceH surface.
//
// scale = min(surfaceW/frameW, surfaceH/frameH); the scaled size is floored and centred with integer division.
// The result is zero when any dimension is not positive.
func ComputeFit(frameW, frameH, surfaceW, surfaceH int) Fit {
	if frameW <= 0 || frameH <= 0 || surfaceW <= 0 || surfaceH <= 0 {
		return Fit{}
	}

	// Integer form of floor(frame * scale), exact on the limiting axis.
	var w, h int
	if surfaceW*frameH <= surfaceH*frameW {
		w = surfaceW
		h = frameH * surfaceW / frameW
	} else {
		h = surfaceH
		w = frameW * surfaceH / frameH
	}

	return Fit{
		FrameWidth:  frameW,
		FrameHeight: frameH,
		Width:       w,
		Height:      h,
		Offset:      image.Pt((surfaceW-w)/2, (surfaceH-h)/2),
	}
}

// ScaleToFit resizes frame uniformly so it fits the surface and returns it with its placement.
// It returns a nil image when the frame or the surface is empty.
func ScaleToFit(frame image.Image, surfaceW, surfaceH int) (image.Image, Fit) {
	if frame == nil {
		return nil, Fit{}
	}
	b := frame.Bounds()
	fit := ComputeFit(b.Dx(), b.Dy(), surfaceW, surfaceH)
	if fit.IsZero() {
		return nil, fit
	}
	return resize(frame, b, fit.Width, fit.Height), fit
}

// CropAndZoom crops frame to region and resizes the crop to targetW x targetH.
//
// region is in frame pixels relative to the frame origin and is clamped to the frame bounds.
// ok is false when nothing is left after clamping or the target is empty; callers show no zoom view then.
func CropAndZoom(frame image.Image, region image.Rectangle, targetW, targetH int) (image.Image, bool) {
	if frame == nil || targetW <= 0 || targetH <= 0 {
		return nil, false
	}
	b := frame.Bounds()
	src := region.Add(b.Min).Intersect(b)
	if src.Empty() {
		return nil, false
	}
	return resize(frame, src, targetW, targetH), true
}

// resize scales the sr part of src to a new w x h image whose bounds start at (0,0).
func resize(src image.Image, sr image.Rectangle, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if sr.Dx() == w && sr.Dy() == h {
		draw.Draw(dst, dst.Bounds(), src, sr.Min, draw.Src)
		return dst
	}
	draw.BiLinear.Scale(dst, dst.Bounds(), src, sr, draw.Src, nil)
	return dst
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
