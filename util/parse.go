package util

import (
	"strconv"
	"strings"
	"unicode"
)

// Atoi parses a leading optionally-signed run of digits and ignores the
// rest of the string. Leading whitespace is skipped. It returns 0 when no
// digits are found, and never fails.
func Atoi(s string) int {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// Overflow: saturate the way the digits point.
		n = int(^uint(0) >> 1)
	}
	if neg {
		return -n
	}
	return n
}

// ParseIntList parses a comma separated list of integers such as "1,-2,3".
// Surrounding whitespace around each element is ignored.
func ParseIntList(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// FormatIntList renders values joined by sep.
func FormatIntList(values []int, sep string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, sep)
}

// ParseSize parses a byte size such as "512KB", "10MB" or "1GB". A plain
// number is bytes. Empty or malformed input yields defaultBytes.
func ParseSize(s string, defaultBytes int64) int64 {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return defaultBytes
	}

	var multiplier int64 = 1
	switch {
	case strings.HasSuffix(s, "GB"):
		multiplier = 1 << 30
	case strings.HasSuffix(s, "MB"):
		multiplier = 1 << 20
	case strings.HasSuffix(s, "KB"):
		multiplier = 1 << 10
	}
	if multiplier > 1 {
		s = strings.TrimSpace(s[:len(s)-2])
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return defaultBytes
	}
	return n * multiplier
}
