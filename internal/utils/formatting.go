package utils

import (
	"fmt"
	"regexp"
	"time"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func StripANSI(input string) string {
	return ansiPattern.ReplaceAllString(input, "")
}

func GetMaxWidth(lines []string) int {
	maxWidth := 0
	for _, line := range lines {
		length := len([]rune(StripANSI(line)))
		if length > maxWidth {
			maxWidth = length
		}
	}
	return maxWidth
}

const lastCheckLayout = "Jan 02, 15:04"

// FormatLastCheck renders a unix-millis timestamp, "never" for zero.
func FormatLastCheck(ms int64) string {
	if ms <= 0 {
		return "never"
	}
	return time.UnixMilli(ms).Local().Format(lastCheckLayout)
}

func HumanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
