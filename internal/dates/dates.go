// Package dates handles date parsing and formatting for metadata fields
// and command arguments.
package dates

import (
	"fmt"
	"regexp"
	"time"
)

// DateLayout is the canonical on-disk date format.
const DateLayout = "2006-01-02"

var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsValidDate reports whether s is a well-formed calendar date.
func IsValidDate(s string) bool {
	if !dateRegex.MatchString(s) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ParseDate parses a canonical date string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// Today formats now as a canonical date.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// ParseDateArg resolves a user-supplied date argument. It accepts the
// keywords "today", "yesterday", and "tomorrow" as well as an absolute
// YYYY-MM-DD date. An empty argument resolves to today.
func ParseDateArg(arg string, now time.Time) (string, error) {
	switch arg {
	case "", "today":
		return Today(now), nil
	case "yesterday":
		return Today(now.AddDate(0, 0, -1)), nil
	case "tomorrow":
		return Today(now.AddDate(0, 0, 1)), nil
	}
	if !IsValidDate(arg) {
		return "", fmt.Errorf("invalid date %q: expected YYYY-MM-DD, today, yesterday, or tomorrow", arg)
	}
	return arg, nil
}
