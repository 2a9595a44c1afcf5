package format

import (
	"fmt"
	"strings"
)

// FormatNumberString inserts thousands separators into a decimal number
// string (e.g. "1234567" -> "1,234,567"). The input must contain only
// decimal digits, optionally preceded by a sign.
func FormatNumberString(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	n := len(s)
	if n <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}

	var builder strings.Builder
	builder.Grow(n + n/3 + 1)
	if neg {
		builder.WriteByte('-')
	}
	head := n % 3
	if head > 0 {
		builder.WriteString(s[:head])
	}
	for i := head; i < n; i += 3 {
		if i > 0 {
			builder.WriteByte(',')
		}
		builder.WriteString(s[i : i+3])
	}
	return builder.String()
}

// FormatBytes formats a byte count as a human-readable string using binary
// units (e.g. 1536 -> "1.50 KiB").
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
