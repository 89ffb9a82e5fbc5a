// Package report builds and writes the end-of-session playback report.
package report

import (
	"time"

	"github.com/user/roiplayer/pkg/player"
)

// Summary contains all data collected while one source was open.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	Source    SourceInfo
	Playback  PlaybackInfo
	Tracking  TrackingInfo
	Snapshots SnapshotInfo
}

// SourceInfo describes the opened source.
type SourceInfo struct {
	URI        string
	Decoder    string
	FrameCount int
	FPS        float64
	Width      int
	Height     int
	Live       bool
}

// PlaybackInfo describes how far playback went.
type PlaybackInfo struct {
	FramesPlayed int
	LastFrame    int
	Seeks        int
	WallTime     time.Duration
	EndReason    string // empty when playback was interrupted
}

// TrackingInfo describes tracker activity.
type TrackingInfo struct {
	Tracker    string
	Arms       int
	Failures   int
	ZoomFrames int
}

// SnapshotInfo describes snapshot output.
type SnapshotInfo struct {
	Enabled bool
	Dir     string
	Written int
	Errors  int
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithStats copies the controller statistics into the summary.
func (b *Builder) WithStats(stats player.Stats) *Builder {
	s := b.summary
	s.Source.URI = stats.Source
	s.Source.FrameCount = stats.Info.FrameCount
	s.Source.FPS = stats.Info.FPS
	s.Source.Width = stats.Info.Width
	s.Source.Height = stats.Info.Height
	s.Source.Live = stats.Info.Live

	s.Playback.FramesPlayed = stats.FramesPlayed
	s.Playback.LastFrame = stats.LastFrame
	s.Playback.Seeks = stats.Seeks
	s.Playback.EndReason = stats.EndReason

	s.Tracking.Arms = stats.TrackerArms
	s.Tracking.Failures = stats.TrackerFailures
	s.Tracking.ZoomFrames = stats.ZoomFrames

	s.Snapshots.Written = stats.SnapshotsWritten
	s.Snapshots.Errors = stats.SnapshotErrors
	return b
}

// WithDecoder sets the decoder name.
func (b *Builder) WithDecoder(name string) *Builder {
	b.summary.Source.Decoder = name
	return b
}

// WithTracker sets the tracker algorithm name.
func (b *Builder) WithTracker(name string) *Builder {
	b.summary.Tracking.Tracker = name
	return b
}

// WithSnapshots sets whether snapshots were written and where.
func (b *Builder) WithSnapshots(enabled bool, dir string) *Builder {
	b.summary.Snapshots.Enabled = enabled
	b.summary.Snapshots.Dir = dir
	return b
}

// WithWallTime sets the wall-clock time spent playing.
func (b *Builder) WithWallTime(d time.Duration) *Builder {
	b.summary.Playback.WallTime = d
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
