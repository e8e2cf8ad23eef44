package stats

import (
	"strings"

	"github.com/spf13/cast"

	"github.com/agenthands/eventlens/internal/core/model"
)

const (
	highThreshold   = 50
	mediumThreshold = 10
)

// Severity derives a level from people_killed. Text mentioning "unknown" or
// "not" and text without a leading integer count as low.
func Severity(e *model.EventRecord) model.Severity {
	v := e.PeopleKilled
	switch v.Kind {
	case model.KindNumber:
		return bucket(v.Num)
	case model.KindString:
		lower := strings.ToLower(v.Str)
		if strings.Contains(lower, "unknown") || strings.Contains(lower, "not") {
			return model.SeverityLow
		}
		n, ok := leadingInt(v.Str)
		if !ok {
			return model.SeverityLow
		}
		return bucket(n)
	}
	return model.SeverityLow
}

func bucket(n float64) model.Severity {
	switch {
	case n > highThreshold:
		return model.SeverityHigh
	case n > mediumThreshold:
		return model.SeverityMedium
	}
	return model.SeverityLow
}

// leadingInt parses the decimal integer prefix of s ("12 dead" -> 12,
// "060" -> 60). Runs too long for an int still compare as large numbers.
func leadingInt(s string) (float64, bool) {
	s = strings.TrimLeft(s, " \t\r\n")
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	digits := strings.TrimLeft(s[start:end], "0")
	if digits == "" {
		digits = "0"
	}
	if s[0] == '-' {
		digits = "-" + digits
	}
	n, err := cast.ToFloat64E(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}
