// Package format holds the fixed display formats used by the storefront and
// inbox templates. None of them are locale aware.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// JustNow is shown whenever a timestamp is missing, unparseable or in the future.
const JustNow = "just now"

// Number renders counts as 1.5K / 2.0M style abbreviations.
func Number(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return strconv.FormatInt(n, 10)
	}
}

// Duration renders seconds as m:ss.
func Duration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// Relative renders t as a compact age relative to now: 5m, 3h, 2d, or the
// calendar date once it is a week old.
func Relative(t, now time.Time) string {
	if t.IsZero() || t.After(now) {
		return JustNow
	}
	age := now.Sub(t)
	switch {
	case age < time.Minute:
		return JustNow
	case age < time.Hour:
		return fmt.Sprintf("%dm", int(age/time.Minute))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh", int(age/time.Hour))
	case age < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(age/(24*time.Hour)))
	default:
		return t.Format("Jan 2")
	}
}

// RelativeString is Relative for RFC3339 input.
func RelativeString(s string, now time.Time) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return JustNow
	}
	return Relative(t, now)
}

// Initials is the avatar fallback: up to two letters from the first and last word.
func Initials(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-' || r == '_'
	})
	if len(words) == 0 {
		return "?"
	}
	first := []rune(words[0])[0]
	if len(words) == 1 {
		return string(unicode.ToUpper(first))
	}
	last := []rune(words[len(words)-1])[0]
	return string([]rune{unicode.ToUpper(first), unicode.ToUpper(last)})
}

func Price(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
