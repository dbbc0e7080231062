package utils

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the format of every tournament date in the system.
const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("date must be in YYYY-MM-DD format")

// NormalizeDate checks that s is a calendar date and returns it in canonical form.
func NormalizeDate(s string) (string, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", ErrInvalidDate
	}
	return d.Format(DateLayout), nil
}

// Today returns now's date in DateLayout.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// NormalizeName trims s and collapses runs of whitespace into a single space.
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SplitNames turns pasted text (one name per line, or comma separated) into clean names.
// Blank entries are skipped; order is kept.
func SplitNames(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ','
	})
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		if n := NormalizeName(f); n != "" {
			names = append(names, n)
		}
	}
	return names
}
