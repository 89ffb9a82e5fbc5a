package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/roiplayer/pkg/adapters/eventloop"
	"github.com/user/roiplayer/pkg/adapters/filesink"
	"github.com/user/roiplayer/pkg/adapters/ggrenderer"
	"github.com/user/roiplayer/pkg/adapters/gocvdecoder"
	"github.com/user/roiplayer/pkg/adapters/gocvtracker"
	"github.com/user/roiplayer/pkg/adapters/imageseq"
	"github.com/user/roiplayer/pkg/adapters/logger"
	"github.com/user/roiplayer/pkg/adapters/nullsink"
	"github.com/user/roiplayer/pkg/adapters/osfilesystem"
	"github.com/user/roiplayer/pkg/config"
	"github.com/user/roiplayer/pkg/player"
	"github.com/user/roiplayer/pkg/ports"
	"github.com/user/roiplayer/pkg/report"
)

// errBadROI is returned for a malformed --roi value.
var errBadROI = errors.New("roi must be x,y,w,h")

func playCommand() *cli.Command {
	return &cli.Command{
		Name:      "play",
		Usage:     l10n.T("Play a video file, image directory or capture device"),
		ArgsUsage: "<source>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: l10n.T("YAML configuration file")},
			&cli.StringFlag{Name: "roi", Aliases: []string{"r"}, Usage: l10n.T("Region to track in frame pixels (x,y,w,h)")},
			&cli.IntFlag{Name: "start", Usage: l10n.T("Frame to start playing from")},
			&cli.StringFlag{Name: "surface", Usage: l10n.T("Render surface size (WxH)")},
			&cli.StringFlag{Name: "zoom", Usage: l10n.T("Zoom view size (WxH)")},
			&cli.StringFlag{Name: "tracker", Aliases: []string{"t"}, Usage: l10n.T("Tracker algorithm (csrt, kcf, mil)")},
			&cli.StringFlag{Name: "decoder", Usage: l10n.T("Decoder (gocv, imageseq)")},
			&cli.Float64Flag{Name: "image-rate", Usage: l10n.T("Frame rate of image sequences")},
			&cli.BoolFlag{Name: "snapshots", Aliases: []string{"s"}, Usage: l10n.T("Save zoom views as images")},
			&cli.StringFlag{Name: "snapshot-dir", Usage: l10n.T("Directory for snapshots")},
			&cli.StringFlag{Name: "report", Usage: l10n.T("Write a playback report to file (Markdown format)")},
			&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Usage: l10n.T("Log level (debug, info, warn, error)")},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: l10n.T("Suppress all log output")},
		},
		Action: runPlay,
	}
}

func runPlay(c *cli.Context) error {
	uri := c.Args().First()
	if uri == "" {
		return cli.Exit(l10n.T("Source argument is required"), 2)
	}

	cfg, err := buildConfig(c)
	if err != nil {
		return err
	}

	var roi image.Rectangle
	if s := c.String("roi"); s != "" {
		if roi, err = parseROI(s); err != nil {
			return err
		}
	}

	var log ports.Logger
	if c.Bool("quiet") {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(cfg.LogLevel))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	// Adapters
	fs := osfilesystem.New()
	renderer := ggrenderer.New()

	kind, err := gocvtracker.ParseKind(cfg.Tracker)
	if err != nil {
		return err
	}
	trackers := gocvtracker.NewFactory(kind)

	var decoder ports.Decoder
	switch cfg.Decoder {
	case "imageseq":
		decoder = imageseq.New(fs, renderer, cfg.ImageRate)
	default:
		decoder = gocvdecoder.New(log)
	}

	var sink ports.SnapshotSink
	if cfg.Snapshots {
		if err := fs.MkdirAll(cfg.SnapshotDir); err != nil {
			return fmt.Errorf("create snapshot directory: %w", err)
		}
		sink = filesink.New(cfg.SnapshotDir, fs, renderer, cfg.ImageFormat(), cfg.SnapshotQuality)
	} else {
		sink = nullsink.New()
	}

	loop := eventloop.New(16)
	view := newProgressView(os.Stdout)
	ctrl := player.New(decoder, trackers, loop, renderer, view, sink, log, cfg.ToPlayerConfig())
	ctrl.OnStop(func(player.StopReason) {
		loop.Stop()
	})

	var openErr error
	if err := loop.Post(func() {
		if openErr = ctrl.Open(uri); openErr != nil {
			loop.Stop()
			return
		}
		if start := c.Int("start"); start > 0 {
			ctrl.Seek(start)
		}
		if !roi.Empty() {
			// The surface mapping is the identity until the first frame is shown.
			ctrl.PointerPress(roi.Min)
			ctrl.PointerRelease(roi.Max)
		}
		ctrl.Play()
	}); err != nil {
		return err
	}

	started := time.Now()
	runErr := loop.Run(ctx)
	loop.Stop()
	elapsed := time.Since(started)
	view.Done()

	if openErr != nil {
		return openErr
	}
	stats := ctrl.Close()

	if cfg.Report != "" {
		summary := report.NewBuilder().
			WithStats(stats).
			WithDecoder(cfg.Decoder).
			WithTracker(string(kind)).
			WithSnapshots(cfg.Snapshots, cfg.SnapshotDir).
			WithWallTime(elapsed).
			Build()
		formatter := report.NewMarkdownFormatter(report.WithTranslator(translate), report.WithVersion(version))
		if err := report.NewWriter(formatter, fs).Write(cfg.Report, summary); err != nil {
			log.Error("Failed to write report: %s", err.Error())
		} else {
			log.Info("Report saved to %s", cfg.Report)
		}
	}

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}

// buildConfig loads the configuration file, if any, and applies flag overrides.
func buildConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if c.IsSet("surface") {
		w, h, err := parseSize(c.String("surface"))
		if err != nil {
			return cfg, err
		}
		cfg.SurfaceWidth, cfg.SurfaceHeight = w, h
	}
	if c.IsSet("zoom") {
		w, h, err := parseSize(c.String("zoom"))
		if err != nil {
			return cfg, err
		}
		cfg.ZoomWidth, cfg.ZoomHeight = w, h
	}
	if c.IsSet("tracker") {
		cfg.Tracker = c.String("tracker")
	}
	if c.IsSet("decoder") {
		cfg.Decoder = c.String("decoder")
	}
	if c.IsSet("image-rate") {
		cfg.ImageRate = c.Float64("image-rate")
	}
	if c.IsSet("snapshots") {
		cfg.Snapshots = c.Bool("snapshots")
	}
	if c.IsSet("snapshot-dir") {
		cfg.SnapshotDir = c.String("snapshot-dir")
	}
	if c.IsSet("report") {
		cfg.Report = c.String("report")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}

	return cfg, cfg.Validate()
}

// parseROI parses "x,y,w,h" into a rectangle.
func parseROI(s string) (image.Rectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, fmt.Errorf("%w: %q", errBadROI, s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return image.Rectangle{}, fmt.Errorf("%w: %q", errBadROI, s)
		}
		v[i] = n
	}
	return image.Rect(v[0], v[1], v[0]+v[2], v[1]+v[3]), nil
}

// parseSize parses "WxH".
func parseSize(s string) (int, int, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size must be WxH: %q", s)
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return 0, 0, fmt.Errorf("size must be WxH: %q", s)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return 0, 0, fmt.Errorf("size must be WxH: %q", s)
	}
	return width, height, nil
}

func translate(s string) string {
	return l10n.T(s)
}
