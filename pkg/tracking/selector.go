package tracking

import "image"

// Selector turns a press, drag, release pointer sequence into a rectangle in frame coordinates.
type Selector struct {
	anchor  image.Point
	current image.Point
	active  bool
}

// Press records the anchor point.
func (s *Selector) Press(p image.Point) {
	s.anchor = p
	s.current = p
	s.active = true
}

// Drag returns the preview rectangle from the anchor to p. ok is false without a preceding Press.
func (s *Selector) Drag(p image.Point) (preview image.Rectangle, ok bool) {
	if !s.active {
		return image.Rectangle{}, false
	}
	s.current = p
	return normalize(s.anchor, p), true
}

// Release ends the selection and returns the final rectangle, which may have zero area.
// ok is false without a preceding Press.
func (s *Selector) Release(p image.Point) (region image.Rectangle, ok bool) {
	if !s.active {
		return image.Rectangle{}, false
	}
	s.active = false
	return normalize(s.anchor, p), true
}

// Cancel abandons an in-progress selection.
func (s *Selector) Cancel() {
	s.active = false
}

// Active reports whether a press has not yet been released.
func (s *Selector) Active() bool {
	return s.active
}

// normalize builds (min(x0,x1), min(y0,y1), |x0-x1|, |y0-y1|).
func normalize(a, b image.Point) image.Rectangle {
	return image.Rect(a.X, a.Y, b.X, b.Y)
}
