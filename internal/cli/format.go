// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatMinutes formats a minute count as hours and minutes.
// e.g., 95 -> "1h 35m", 45 -> "45m", 0 -> "0m"
func FormatMinutes(minutes int) string {
	neg := minutes < 0
	if neg {
		minutes = -minutes
	}

	var s string
	hours := minutes / 60
	mins := minutes % 60
	if hours > 0 {
		s = fmt.Sprintf("%dh %dm", hours, mins)
	} else {
		s = fmt.Sprintf("%dm", mins)
	}
	if neg {
		return "-" + s
	}
	return s
}

// FormatSignedMinutes formats an ahead/behind delta with an explicit sign.
func FormatSignedMinutes(minutes int) string {
	if minutes >= 0 {
		return "+" + FormatMinutes(minutes)
	}
	return FormatMinutes(minutes)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}

// TruncateText shortens s to limit runes with an ellipsis.
func TruncateText(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
