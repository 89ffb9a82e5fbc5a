package ggrenderer

import (
	"image"
	"image/color"
	"testing"

	"github.com/user/roiplayer/pkg/ports"
)

func TestRenderer_EncodeDecodeJPEG(t *testing.T) {
	r := New()

	// Create test image
	img := image.NewRGBA(image.Rect(0, 0, 50, 50))
	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			img.Set(x, y, color.RGBA{R: 255, G: 0, B: 0, A: 255})
		}
	}

	// Encode
	data, err := r.EncodeImage(img, ports.FormatJPEG, 80)
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected non-empty data")
	}

	// Decode
	decoded, err := r.DecodeImage(data, ports.FormatJPEG)
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}

	bounds := decoded.Bounds()
	if bounds.Dx() != 50 || bounds.Dy() != 50 {
		t.Errorf("expected 50x50, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestRenderer_DecodeAuto(t *testing.T) {
	r := New()

	data, err := r.EncodeImage(image.NewRGBA(image.Rect(0, 0, 30, 20)), ports.FormatPNG, 0)
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}

	decoded, err := r.DecodeImage(data, ports.FormatAuto)
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 30 || b.Dy() != 20 {
		t.Errorf("expected 30x20, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestRenderer_EncodeUnsupported(t *testing.T) {
	r := New()
	if _, err := r.EncodeImage(image.NewRGBA(image.Rect(0, 0, 2, 2)), ports.FormatAuto, 0); err == nil {
		t.Error("expected error for FormatAuto")
	}
}

func white(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	return img
}

func TestRenderer_DrawBox(t *testing.T) {
	r := New()
	src := white(20, 20)
	blue := color.RGBA{B: 255, A: 255}

	out := r.DrawBox(src, image.Rect(5, 5, 15, 15), blue, 2)

	if out.Bounds() != src.Bounds() {
		t.Fatalf("bounds = %v, want %v", out.Bounds(), src.Bounds())
	}
	edge := color.RGBAModel.Convert(out.At(5, 10)).(color.RGBA)
	if edge.B < 200 || edge.R > 50 {
		t.Errorf("edge pixel = %v, want blue", edge)
	}
	inside := color.RGBAModel.Convert(out.At(10, 10)).(color.RGBA)
	if inside != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("inside pixel = %v, want white", inside)
	}
	if src.RGBAAt(5, 10) != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Error("source image must not be modified")
	}
}

func TestRenderer_DrawBoxNonZeroOrigin(t *testing.T) {
	r := New()
	src := white(40, 40).SubImage(image.Rect(10, 10, 30, 30))

	out := r.DrawBox(src, image.Rect(5, 5, 15, 15), color.RGBA{B: 255, A: 255}, 2)

	if out.Bounds() != image.Rect(0, 0, 20, 20) {
		t.Fatalf("bounds = %v, want origin-based 20x20", out.Bounds())
	}
	edge := color.RGBAModel.Convert(out.At(5, 10)).(color.RGBA)
	if edge.B < 200 || edge.R > 50 {
		t.Errorf("edge pixel = %v, want blue", edge)
	}
}

func TestRenderer_DrawBoxEmpty(t *testing.T) {
	r := New()
	src := white(10, 10)

	out := r.DrawBox(src, image.Rectangle{}, color.Black, 2)
	if got := color.RGBAModel.Convert(out.At(0, 0)).(color.RGBA); got.R != 255 {
		t.Errorf("pixel = %v, want untouched white", got)
	}
}
