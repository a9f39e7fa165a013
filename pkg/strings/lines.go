// Package strings holds small text helpers shared by the exec layer and the
// console report.
package strings

import (
	"strings"
)

// DefaultOutputMaxLen is the default width used when remote command output is
// shown in a single table cell.
const DefaultOutputMaxLen = 80

// MinTruncateLen is the minimum maxLen accepted by Truncate.
const MinTruncateLen = 4

// SplitLines splits line-oriented command output into its non-empty lines.
// Trailing carriage returns are dropped so output produced with a TTY or on
// Windows nodes compares equal to plain output.
func SplitLines(s string) []string {
	raw := strings.Split(s, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// Truncate collapses all whitespace runs to single spaces and cuts the result
// to maxLen runes, ending in "..." when something was removed. maxLen values
// below MinTruncateLen are raised to MinTruncateLen.
func Truncate(s string, maxLen int) string {
	if maxLen < MinTruncateLen {
		maxLen = MinTruncateLen
	}

	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}
