package util

import (
	"fmt"
	"time"
)

// RelativeTimeShort formats a time as a short relative string (e.g., "2h ago"),
// used by the explorer's status bar as a quick hint alongside the selected
// commit's absolute timestamp.
func RelativeTimeShort(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	case diff < 30*24*time.Hour:
		return fmt.Sprintf("%dw ago", int(diff.Hours()/24/7))
	default:
		return t.Format("Jan 2")
	}
}
