package utils

import (
	"fmt"
	"time"
)

// FormatRoundedUnit renders a duration in its largest sensible unit,
// rounded down: "45s", "12m", "3h".
func FormatRoundedUnit(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	seconds := int64(d.Seconds())
	switch {
	case seconds < 60:
		return fmt.Sprintf("%ds", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%dm", seconds/60)
	default:
		return fmt.Sprintf("%dh", seconds/3600)
	}
}
