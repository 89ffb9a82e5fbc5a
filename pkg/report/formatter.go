package report

import (
	"fmt"
	"strings"
	"time"
)

// Formatter defines the interface for formatting a Summary.
type Formatter interface {
	// Format converts a Summary to a formatted string.
	Format(summary *Summary) string
}

// FormatFunc is a function adapter for the Formatter interface.
type FormatFunc func(summary *Summary) string

// Format implements the Formatter interface.
func (f FormatFunc) Format(summary *Summary) string {
	return f(summary)
}

// MarkdownFormatter renders a Summary as markdown tables.
type MarkdownFormatter struct {
	translate func(string) string
	version   string
}

// Option configures a MarkdownFormatter.
type Option func(*MarkdownFormatter)

// WithTranslator translates headings and labels.
func WithTranslator(t func(string) string) Option {
	return func(f *MarkdownFormatter) {
		f.translate = t
	}
}

// WithVersion adds the program version to the footer.
func WithVersion(v string) Option {
	return func(f *MarkdownFormatter) {
		f.version = v
	}
}

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter(opts ...Option) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements the Formatter interface.
func (f *MarkdownFormatter) Format(s *Summary) string {
	t := f.translate
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", t("Playback Report"))

	f.section(&sb, "Source", [][2]string{
		{"Source", s.Source.URI},
		{"Decoder", orNA(t, s.Source.Decoder)},
		{"Frame Size", fmt.Sprintf("%dx%d", s.Source.Width, s.Source.Height)},
		{"Frame Rate", fmt.Sprintf("%.2f fps", s.Source.FPS)},
		{"Frames", f.frames(s.Source)},
		{"Duration", f.duration(s.Source)},
	})

	end := s.Playback.EndReason
	if end == "" {
		end = "Interrupted"
	}
	f.section(&sb, "Playback", [][2]string{
		{"Frames Played", fmt.Sprintf("%d", s.Playback.FramesPlayed)},
		{"Last Frame", fmt.Sprintf("%d", s.Playback.LastFrame)},
		{"Seeks", fmt.Sprintf("%d", s.Playback.Seeks)},
		{"Wall Time", s.Playback.WallTime.Round(time.Millisecond).String()},
		{"Ended By", t(end)},
	})

	f.section(&sb, "Tracking", [][2]string{
		{"Tracker", orNA(t, s.Tracking.Tracker)},
		{"Tracker Arms", fmt.Sprintf("%d", s.Tracking.Arms)},
		{"Lost Frames", fmt.Sprintf("%d", s.Tracking.Failures)},
		{"Zoom Frames", fmt.Sprintf("%d", s.Tracking.ZoomFrames)},
	})

	if s.Snapshots.Enabled {
		f.section(&sb, "Snapshots", [][2]string{
			{"Directory", s.Snapshots.Dir},
			{"Written", fmt.Sprintf("%d", s.Snapshots.Written)},
			{"Errors", fmt.Sprintf("%d", s.Snapshots.Errors)},
		})
	}

	sb.WriteString("---\n\n")
	footer := "roiplayer"
	if f.version != "" {
		footer += " " + f.version
	}
	fmt.Fprintf(&sb, "%s %s, %s\n", t("Generated by"), footer, s.GeneratedAt.Format("2006-01-02 15:04:05"))

	return sb.String()
}

func (f *MarkdownFormatter) section(sb *strings.Builder, title string, rows [][2]string) {
	t := f.translate
	fmt.Fprintf(sb, "## %s\n\n", t(title))
	fmt.Fprintf(sb, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	for _, row := range rows {
		fmt.Fprintf(sb, "| %s | %s |\n", t(row[0]), row[1])
	}
	sb.WriteString("\n")
}

func (f *MarkdownFormatter) frames(src SourceInfo) string {
	if src.Live {
		return f.translate("Live")
	}
	return fmt.Sprintf("%d", src.FrameCount)
}

func (f *MarkdownFormatter) duration(src SourceInfo) string {
	if src.Live || src.FPS <= 0 {
		return orNA(f.translate, "")
	}
	seconds := float64(src.FrameCount) / src.FPS
	return (time.Duration(seconds * float64(time.Second))).Truncate(time.Second).String()
}

func orNA(t func(string) string, v string) string {
	if v == "" {
		return t("N/A")
	}
	return v
}
