package report

import (
	"strings"
	"testing"
	"time"
)

func sampleSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		Source: SourceInfo{
			URI:        "clip.mp4",
			Decoder:    "gocv",
			FrameCount: 300,
			FPS:        30,
			Width:      1280,
			Height:     720,
		},
		Playback: PlaybackInfo{
			FramesPlayed: 300,
			LastFrame:    300,
			Seeks:        1,
			WallTime:     10*time.Second + 4*time.Millisecond,
			EndReason:    "end of stream",
		},
		Tracking: TrackingInfo{
			Tracker:    "csrt",
			Arms:       2,
			Failures:   3,
			ZoomFrames: 250,
		},
	}
}

func TestMarkdownFormatter_Format_Basic(t *testing.T) {
	result := NewMarkdownFormatter().Format(sampleSummary())

	checks := []string{
		"# Playback Report",
		"## Source",
		"| Source | clip.mp4 |",
		"| Decoder | gocv |",
		"| Frame Size | 1280x720 |",
		"| Frame Rate | 30.00 fps |",
		"| Frames | 300 |",
		"| Duration | 10s |",
		"| Frames Played | 300 |",
		"| Wall Time | 10.004s |",
		"| Ended By | end of stream |",
		"| Tracker | csrt |",
		"| Tracker Arms | 2 |",
		"| Lost Frames | 3 |",
		"| Zoom Frames | 250 |",
		"2024-01-15 10:30:00",
	}
	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q", check)
		}
	}

	if strings.Contains(result, "## Snapshots") {
		t.Error("snapshot section should be omitted when snapshots are disabled")
	}
}

func TestMarkdownFormatter_Format_Live(t *testing.T) {
	s := sampleSummary()
	s.Source.Live = true
	s.Source.FrameCount = 0
	s.Playback.EndReason = ""

	result := NewMarkdownFormatter().Format(s)

	for _, check := range []string{"| Frames | Live |", "| Duration | N/A |", "| Ended By | Interrupted |"} {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q", check)
		}
	}
}

func TestMarkdownFormatter_Format_Snapshots(t *testing.T) {
	s := sampleSummary()
	s.Snapshots = SnapshotInfo{Enabled: true, Dir: "out", Written: 250, Errors: 1}

	result := NewMarkdownFormatter().Format(s)

	for _, check := range []string{"## Snapshots", "| Directory | out |", "| Written | 250 |", "| Errors | 1 |"} {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q", check)
		}
	}
}

func TestMarkdownFormatter_WithTranslator(t *testing.T) {
	translations := map[string]string{
		"Playback Report": "播放報告",
		"Tracker":         "追蹤器",
	}
	translator := func(s string) string {
		if v, ok := translations[s]; ok {
			return v
		}
		return s
	}

	result := NewMarkdownFormatter(WithTranslator(translator)).Format(sampleSummary())

	if !strings.Contains(result, "# 播放報告") {
		t.Error("expected translated title")
	}
	if !strings.Contains(result, "| 追蹤器 | csrt |") {
		t.Error("expected translated label")
	}
}

func TestMarkdownFormatter_WithVersion(t *testing.T) {
	result := NewMarkdownFormatter(WithVersion("v1.2.3")).Format(sampleSummary())

	if !strings.Contains(result, "roiplayer v1.2.3") {
		t.Error("expected version in footer")
	}
}

func TestFormatFunc(t *testing.T) {
	f := FormatFunc(func(s *Summary) string { return s.Source.URI })

	if got := f.Format(sampleSummary()); got != "clip.mp4" {
		t.Errorf("Format() = %q, want clip.mp4", got)
	}
}
