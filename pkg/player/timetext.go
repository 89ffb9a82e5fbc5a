package player

import "fmt"

// FormatTime renders "elapsed / total" for a position in a source of totalFrames at fps.
// Seconds are truncated. Durations of an hour or more use H:MM:SS for both sides.
// Live sources (totalFrames 0) show elapsed time only.
func FormatTime(position, totalFrames int, fps float64) string {
	if fps <= 0 {
		return ""
	}
	elapsed := int(float64(position) / fps)
	if totalFrames <= 0 {
		return clockText(elapsed, elapsed >= 3600)
	}
	total := int(float64(totalFrames) / fps)
	long := total >= 3600
	return clockText(elapsed, long) + " / " + clockText(total, long)
}

func clockText(seconds int, long bool) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if long {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m+h*60, s)
}
