package common

import (
	"math"
	"strconv"
	"strings"
)

// HasAny returns true if s contains any of the substrings, ignoring case.
func HasAny(s string, subs ...string) bool {
	s = strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(s, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}

// RoundHalfUp rounds to the nearest integer, with halves going towards +Inf
// (so -2.5 becomes -2).
func RoundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

// FormatNumber formats v in its shortest form: 22 -> "22", 21.5 -> "21.5".
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
