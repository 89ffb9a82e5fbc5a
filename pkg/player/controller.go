// Package player orchestrates frame source, clock, tracker and render transforms into the playback
// controller the UI calls into.
//
// A Controller is not safe for concurrent use. Every method, and every scheduler callback, must run
// on the host's event loop.
package player

import (
	"errors"
	"image"
	"image/color"

	"github.com/user/roiplayer/pkg/clock"
	"github.com/user/roiplayer/pkg/ports"
	"github.com/user/roiplayer/pkg/render"
	"github.com/user/roiplayer/pkg/source"
	"github.com/user/roiplayer/pkg/tracking"
)

// Config contains the rendering options of the controller.
type Config struct {
	SurfaceWidth  int
	SurfaceHeight int
	ZoomWidth     int
	ZoomHeight    int

	BoxColor color.Color
	BoxWidth float64

	// SaveFrames also sends the fitted main view to the snapshot sink.
	SaveFrames bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		SurfaceWidth:  640,
		SurfaceHeight: 480,
		ZoomWidth:     640,
		ZoomHeight:    480,
		BoxColor:      color.RGBA{B: 255, A: 255},
		BoxWidth:      2,
	}
}

// Controller owns the session record and sequences every playback operation.
type Controller struct {
	cfg      Config
	decoder  ports.Decoder
	renderer ports.Renderer
	view     ports.View
	sink     ports.SnapshotSink
	logger   ports.Logger

	clock    *clock.PlaybackClock
	tracker  *tracking.Session
	selector tracking.Selector

	src        *source.FrameSource
	state      State
	region     image.Rectangle
	hasRegion  bool
	armPending bool
	fit        render.Fit
	stats      Stats
	armsBase   int
	failsBase  int
	onStop     func(StopReason)
}

// New creates a Controller with no source open.
func New(
	decoder ports.Decoder,
	trackers ports.TrackerFactory,
	scheduler ports.Scheduler,
	renderer ports.Renderer,
	view ports.View,
	sink ports.SnapshotSink,
	logger ports.Logger,
	cfg Config,
) *Controller {
	c := &Controller{
		cfg:      cfg,
		decoder:  decoder,
		renderer: renderer,
		view:     view,
		sink:     sink,
		logger:   logger.WithComponent("player"),
		tracker:  tracking.NewSession(trackers, logger),
	}
	c.clock = clock.New(scheduler, c.tick, logger)
	return c
}

// OnStop registers fn to be called when playback stops by itself.
// The clock is already disarmed when fn runs, so fn may Seek and Play again.
func (c *Controller) OnStop(fn func(StopReason)) {
	c.onStop = fn
}

// Open replaces the session with a new one for uri. Any open source is released first.
// On failure the controller is left empty and the error wraps source.ErrSourceUnavailable.
func (c *Controller) Open(uri string) error {
	c.teardown()

	src, err := source.Open(c.decoder, uri, c.logger)
	if err != nil {
		c.logger.Error("Failed to open %s: %s", uri, err.Error())
		return err
	}

	c.src = src
	c.state = StateLoaded
	c.stats = Stats{Source: uri, Info: src.Info()}
	c.armsBase = c.tracker.Arms()
	c.failsBase = c.tracker.Failures()
	c.logger.Info("Opened %s: %d frames at %.2f fps", uri, src.TotalFrames(), src.Rate())
	c.pushEmpty()
	return nil
}

// Play arms the clock. A committed region without a tracker is armed on the first frame read.
// It does nothing without a source or while already playing.
func (c *Controller) Play() {
	if c.src == nil || c.clock.Armed() {
		return
	}
	if c.hasRegion && !c.tracker.Armed() {
		c.armPending = true
	}
	c.selector.Cancel()
	c.state = StatePlaying
	c.stats.EndReason = ""
	c.clock.Arm(clock.IntervalFor(c.src.Rate()))
	c.logger.Info("Playing from frame %d", c.src.Position())
}

// Pause disarms the clock and keeps the position and tracker.
func (c *Controller) Pause() {
	if !c.clock.Armed() {
		return
	}
	c.clock.Disarm()
	c.armPending = false
	c.state = StatePaused
	c.logger.Info("Paused at frame %d", c.src.Position())
}

// Reset stops playback, rewinds to frame 0 and clears tracking. The source stays open.
func (c *Controller) Reset() {
	if c.src == nil {
		return
	}
	c.clock.Disarm()
	if _, err := c.src.Seek(0); err != nil {
		c.logger.Warn("Failed to rewind: %s", err.Error())
	}
	c.clearTracking()
	c.state = StateLoaded
	c.logger.Info("Reset")
	c.pushEmpty()
}

// Seek moves to frame, clamped to the source. It only acts while not playing and on seekable sources.
// An armed tracker is dropped; the region is kept and re-armed on the next Play.
func (c *Controller) Seek(frame int) {
	if c.src == nil || c.clock.Armed() || !c.src.Seekable() {
		return
	}
	pos, err := c.src.Seek(frame)
	if err != nil {
		c.logger.Warn("Failed to seek to %d: %s", frame, err.Error())
		return
	}
	c.tracker.Disarm()
	c.armPending = false
	c.stats.Seeks++
	c.logger.Debug("Seeked to frame %d", pos)
}

// ClearTracking drops the tracker and the committed region. Playback is not affected.
func (c *Controller) ClearTracking() {
	c.clearTracking()
	c.logger.Info("Tracking cleared")
}

func (c *Controller) clearTracking() {
	c.tracker.Clear()
	c.selector.Cancel()
	c.region = image.Rectangle{}
	c.hasRegion = false
	c.armPending = false
	c.view.ShowSelection(image.Rectangle{})
}

// SetSurface changes the size of the render surface used from the next frame on.
// Pointer events map through the new size right away.
func (c *Controller) SetSurface(width, height int) {
	c.cfg.SurfaceWidth = width
	c.cfg.SurfaceHeight = height
	if !c.fit.IsZero() {
		c.fit = render.ComputeFit(c.fit.FrameWidth, c.fit.FrameHeight, width, height)
	}
}

// selecting reports whether pointer events may change the selection.
func (c *Controller) selecting() bool {
	return !c.clock.Armed() && !c.tracker.Armed()
}

// PointerPress starts a selection at surface point p.
func (c *Controller) PointerPress(p image.Point) {
	if !c.selecting() {
		return
	}
	c.selector.Press(c.fit.ToFrame(p))
}

// PointerDrag previews the selection up to surface point p.
func (c *Controller) PointerDrag(p image.Point) {
	if !c.selecting() {
		return
	}
	if preview, ok := c.selector.Drag(c.fit.ToFrame(p)); ok {
		c.view.ShowSelection(c.fit.ToSurface(preview))
	}
}

// PointerRelease commits the selection ending at surface point p as the tracking region.
// A zero-area region is committed but never arms a tracker.
func (c *Controller) PointerRelease(p image.Point) {
	if !c.selecting() {
		return
	}
	region, ok := c.selector.Release(c.fit.ToFrame(p))
	if !ok {
		return
	}
	c.region = region
	c.hasRegion = true
	c.view.ShowSelection(c.fit.ToSurface(region))
	c.logger.Info("Selected region %dx%d at (%d,%d)", region.Dx(), region.Dy(), region.Min.X, region.Min.Y)
}

// Close releases the tracker and the source and returns the statistics of the session.
func (c *Controller) Close() Stats {
	stats := c.Stats()
	c.teardown()
	return stats
}

// teardown disarms the clock before anything it could touch is released.
func (c *Controller) teardown() {
	c.clock.Disarm()
	c.clearTracking()
	if c.src != nil {
		if err := c.src.Release(); err != nil {
			c.logger.Warn("Failed to release %s: %s", c.src.URI(), err.Error())
		}
		c.src = nil
	}
	c.fit = render.Fit{}
	c.state = StateEmpty
}

// State returns the controller state.
func (c *Controller) State() State {
	return c.state
}

// Session returns a snapshot of the session record.
func (c *Controller) Session() Session {
	s := Session{
		State:          c.state,
		Playing:        c.clock.Armed(),
		TrackingRegion: c.region,
		HasRegion:      c.hasRegion,
		TrackerArmed:   c.tracker.Armed(),
		TrackerState:   c.tracker.State(),
	}
	if c.src != nil {
		s.Source = c.src.URI()
		s.Info = c.src.Info()
		s.CurrentFrame = c.src.Position()
		s.TotalFrames = c.src.TotalFrames()
		s.NativeRate = c.src.Rate()
		s.Interval = clock.IntervalFor(c.src.Rate())
		s.TimeText = FormatTime(s.CurrentFrame, s.TotalFrames, s.NativeRate)
	}
	return s
}

// Stats returns the statistics of the current session.
func (c *Controller) Stats() Stats {
	s := c.stats
	s.TrackerArms = c.tracker.Arms() - c.armsBase
	s.TrackerFailures = c.tracker.Failures() - c.failsBase
	return s
}

// tick runs one frame through read, tracker and render, in that order.
func (c *Controller) tick() bool {
	if c.src == nil {
		return false
	}

	frame, err := c.src.ReadNext()
	if err != nil {
		reason := StopEndOfStream
		if errors.Is(err, source.ErrEndOfStream) {
			c.logger.Info("End of stream at frame %d", c.src.Position())
		} else {
			reason = StopReadError
			c.logger.Warn("Failed to read frame: %s", err.Error())
		}
		c.stop(reason)
		return false
	}

	index := c.src.Position()
	c.stats.FramesPlayed++
	c.stats.LastFrame = index

	tracked := c.track(frame)

	main := frame
	if !tracked.Empty() {
		main = c.renderer.DrawBox(frame, tracked, c.cfg.BoxColor, c.cfg.BoxWidth)
	}
	fitted, fit := render.ScaleToFit(main, c.cfg.SurfaceWidth, c.cfg.SurfaceHeight)
	c.fit = fit

	var zoom image.Image
	if !tracked.Empty() {
		if z, ok := render.CropAndZoom(frame, tracked, c.cfg.ZoomWidth, c.cfg.ZoomHeight); ok {
			zoom = z
			c.stats.ZoomFrames++
		}
	}

	c.snapshot(index, fitted, zoom)

	c.view.ShowFrame(ports.FrameUpdate{
		Main:     fitted,
		Offset:   fit.Offset,
		Zoom:     zoom,
		Tracked:  tracked,
		Progress: index,
		Total:    c.src.TotalFrames(),
		TimeText: FormatTime(index, c.src.TotalFrames(), c.src.Rate()),
	})
	return true
}

// track arms a pending tracker on frame or updates the armed one.
// It returns the tracked rectangle, empty when there is none for this frame.
func (c *Controller) track(frame image.Image) image.Rectangle {
	if c.armPending {
		c.armPending = false
		err := c.tracker.Arm(frame, c.region)
		switch {
		case errors.Is(err, tracking.ErrDegenerateRegion):
			c.logger.Debug("Ignoring zero-area region")
		case err != nil:
			c.logger.Warn("Failed to arm tracker: %s", err.Error())
		}
		return image.Rectangle{}
	}

	if !c.tracker.Armed() {
		return image.Rectangle{}
	}
	box, err := c.tracker.Update(frame)
	if err != nil {
		return image.Rectangle{}
	}
	return box
}

func (c *Controller) snapshot(index int, main, zoom image.Image) {
	if c.sink == nil || !c.sink.Enabled() {
		return
	}
	if zoom != nil {
		c.save(c.sink.SaveZoom(index, zoom))
	}
	if c.cfg.SaveFrames {
		c.save(c.sink.SaveFrame(index, main))
	}
}

func (c *Controller) save(err error) {
	if err != nil {
		c.stats.SnapshotErrors++
		c.logger.Warn("Failed to write snapshot: %s", err.Error())
		return
	}
	c.stats.SnapshotsWritten++
}

func (c *Controller) stop(reason StopReason) {
	c.clock.Disarm()
	c.state = StatePaused
	c.stats.EndReason = reason.String()
	if c.onStop != nil {
		c.onStop(reason)
	}
}

// pushEmpty tells the view the position without a frame.
func (c *Controller) pushEmpty() {
	if c.src == nil {
		return
	}
	pos := c.src.Position()
	c.view.ShowFrame(ports.FrameUpdate{
		Progress: pos,
		Total:    c.src.TotalFrames(),
		TimeText: FormatTime(pos, c.src.TotalFrames(), c.src.Rate()),
	})
}
