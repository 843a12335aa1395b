// Package utils provides utility functions for markwatch
package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SessionID generates a unique ID for a watch session
func SessionID() string {
	return fmt.Sprintf("watch-%s", uuid.NewString())
}

// FormatRelativeTime formats a timestamp relative to now for display
func FormatRelativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
