// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/user/roiplayer/pkg/player"
	"github.com/user/roiplayer/pkg/ports"
)

// ErrInvalid is returned by Validate for an unusable configuration.
var ErrInvalid = errors.New("config: invalid")

// Config represents the full configuration for roiplayer.
type Config struct {
	// Surfaces
	SurfaceWidth  int `yaml:"surface_width"`
	SurfaceHeight int `yaml:"surface_height"`
	ZoomWidth     int `yaml:"zoom_width"`
	ZoomHeight    int `yaml:"zoom_height"`

	// Capabilities
	Tracker   string  `yaml:"tracker"`
	Decoder   string  `yaml:"decoder"`
	ImageRate float64 `yaml:"image_rate"`

	// Overlay
	BoxColor string  `yaml:"box_color"`
	BoxWidth float64 `yaml:"box_width"`

	// Snapshots
	Snapshots       bool   `yaml:"snapshots"`
	SnapshotFrames  bool   `yaml:"snapshot_frames"`
	SnapshotDir     string `yaml:"snapshot_dir"`
	SnapshotFormat  string `yaml:"snapshot_format"`
	SnapshotQuality int    `yaml:"snapshot_quality"`

	// Output
	LogLevel string `yaml:"log_level"`
	Report   string `yaml:"report"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		SurfaceWidth:  640,
		SurfaceHeight: 480,
		ZoomWidth:     640,
		ZoomHeight:    480,

		Tracker:   "csrt",
		Decoder:   "gocv",
		ImageRate: 25,

		BoxColor: "#0000ff",
		BoxWidth: 2,

		SnapshotDir:     "./snapshots",
		SnapshotFormat:  "png",
		SnapshotQuality: 90,

		LogLevel: "info",
	}
}

// LoadFromFile loads configuration from a YAML file. Keys missing from the file keep their defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	switch {
	case c.SurfaceWidth <= 0 || c.SurfaceHeight <= 0:
		return fmt.Errorf("%w: surface %dx%d", ErrInvalid, c.SurfaceWidth, c.SurfaceHeight)
	case c.ZoomWidth <= 0 || c.ZoomHeight <= 0:
		return fmt.Errorf("%w: zoom %dx%d", ErrInvalid, c.ZoomWidth, c.ZoomHeight)
	case c.Decoder != "gocv" && c.Decoder != "imageseq":
		return fmt.Errorf("%w: decoder %q", ErrInvalid, c.Decoder)
	case c.Decoder == "imageseq" && c.ImageRate <= 0:
		return fmt.Errorf("%w: image_rate %v", ErrInvalid, c.ImageRate)
	case c.SnapshotFormat != "png" && c.SnapshotFormat != "jpeg" && c.SnapshotFormat != "jpg":
		return fmt.Errorf("%w: snapshot_format %q", ErrInvalid, c.SnapshotFormat)
	case c.SnapshotQuality < 1 || c.SnapshotQuality > 100:
		return fmt.Errorf("%w: snapshot_quality %d", ErrInvalid, c.SnapshotQuality)
	}
	return nil
}

// ParseColor parses a "#rrggbb" hex color string. Malformed input yields black.
func ParseColor(hex string) color.Color {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return color.Black
	}

	var rgb [3]uint8
	for i := range rgb {
		rgb[i] = hexValue(hex[2*i])<<4 | hexValue(hex[2*i+1])
	}
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}
}

func hexValue(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}

// ImageFormat returns the snapshot encoding format.
func (c Config) ImageFormat() ports.ImageFormat {
	return ports.ParseImageFormat(c.SnapshotFormat)
}

// ToPlayerConfig converts Config to player.Config.
func (c Config) ToPlayerConfig() player.Config {
	return player.Config{
		SurfaceWidth:  c.SurfaceWidth,
		SurfaceHeight: c.SurfaceHeight,
		ZoomWidth:     c.ZoomWidth,
		ZoomHeight:    c.ZoomHeight,
		BoxColor:      ParseColor(c.BoxColor),
		BoxWidth:      c.BoxWidth,
		SaveFrames:    c.SnapshotFrames,
	}
}
