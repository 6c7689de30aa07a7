package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// meterColor shades the level bar from green at silence to red at full scale.
func meterColor(level float64) color.RGBA {
	level = min(max(level, 0), 1)
	r, g, b := colorful.Hsv(120*(1-level), 0.8, 0.9).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// formatDuration formats a duration as HH:MM:SS, or MM:SS under an hour
func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
