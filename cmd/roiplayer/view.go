package main

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/user/roiplayer/pkg/ports"
)

// progressView is the headless ports.View: it prints the time text and tracking state on one line.
// Nothing is printed when out is not a terminal.
type progressView struct {
	out       io.Writer
	tty       bool
	frames    int
	tracked   int
	selection image.Rectangle
	last      ports.FrameUpdate
}

func newProgressView(out io.Writer) *progressView {
	v := &progressView{out: out}
	if f, ok := out.(*os.File); ok {
		v.tty = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return v
}

func (v *progressView) ShowFrame(update ports.FrameUpdate) {
	v.last = update
	if update.Main == nil {
		return
	}
	v.frames++
	if !update.Tracked.Empty() {
		v.tracked++
	}
	if v.tty {
		fmt.Fprintf(v.out, "\r%s  %s", update.TimeText, v.status())
	}
}

func (v *progressView) ShowSelection(rect image.Rectangle) {
	v.selection = rect
}

// Done ends the progress line.
func (v *progressView) Done() {
	if v.tty && v.frames > 0 {
		fmt.Fprintln(v.out)
	}
}

func (v *progressView) status() string {
	if v.last.Tracked.Empty() {
		return fmt.Sprintf("[%d/%d]        ", v.last.Progress, v.last.Total)
	}
	r := v.last.Tracked
	return fmt.Sprintf("[%d/%d] %dx%d@%d,%d", v.last.Progress, v.last.Total, r.Dx(), r.Dy(), r.Min.X, r.Min.Y)
}

var _ ports.View = (*progressView)(nil)
