package views

import (
	"fmt"
	"time"
)

const deadlineLayout = "Jan 2, 2006 15:04 MST"

// FormatDeadline renders an absolute deadline in UTC
func FormatDeadline(t time.Time) string {
	return t.UTC().Format(deadlineLayout)
}

// TimeRemaining renders the time left until deadline as "3d 4h", "4h 12m", "12m" or "ended"
func TimeRemaining(now, deadline time.Time) string {
	d := deadline.Sub(now)
	if d <= 0 {
		return "ended"
	}

	days := int(d / (24 * time.Hour))
	hours := int(d%(24*time.Hour)) / int(time.Hour)
	minutes := int(d%time.Hour) / int(time.Minute)

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}
