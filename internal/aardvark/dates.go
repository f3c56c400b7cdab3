package aardvark

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// parseDate reads the free-form dates portals publish ("2020-05-01", "2020-05-01T12:00:00.000Z",
// "May 1, 2020"). Unzoned values are read as UTC.
func parseDate(raw string) (time.Time, error) {
	return dateparse.ParseIn(strings.TrimSpace(raw), time.UTC)
}

// yearOf returns the year of a date string. When the date does not parse, a leading
// four-digit year is still accepted.
func yearOf(raw string) (int, error) {
	t, err := parseDate(raw)
	if err == nil {
		return t.Year(), nil
	}
	raw = strings.TrimSpace(raw)
	if len(raw) >= 4 {
		if y, convErr := strconv.Atoi(raw[:4]); convErr == nil && y > 0 {
			return y, nil
		}
	}
	return 0, err
}
