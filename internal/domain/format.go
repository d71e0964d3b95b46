package domain

import (
	"fmt"
	"time"
)

// FormatClock renders d as HH:MM:SS. Hours are not capped at 99.
// Sub-second precision is truncated and negative values render as zero.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// FormatHoursMinutes renders d as "Xh Ym", the compact form used in history totals
func FormatHoursMinutes(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Minute)
	return fmt.Sprintf("%dh %dm", total/60, total%60)
}
