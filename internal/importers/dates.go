package importers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var errEmptyDate = errors.New("empty date")

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// ParseDate reads the date formats found in the legacy exports: ISO dates,
// day-first dates separated by / . or -, and Excel serial day numbers.
// Two-digit years resolve to the most recent matching century that is not
// after ref, so a birth date "03/04/67" is 1967 and "03/04/12" is 2012.
func ParseDate(raw string, ref time.Time) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, errEmptyDate
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	if serial, err := strconv.Atoi(s); err == nil && serial >= 20000 && serial < 80000 {
		return excelEpoch.AddDate(0, 0, serial), nil
	}

	// Drop a trailing time component ("12/03/1990 00:00").
	if i := strings.IndexByte(s, ' '); i > 0 {
		s = s[:i]
	}
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '/' || r == '.' || r == '-' })
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
	}

	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
	}

	switch len(parts[2]) {
	case 2:
		year = pivotYear(year, ref)
	case 4:
	default:
		return time.Time{}, fmt.Errorf("unrecognized year in %q", raw)
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, fmt.Errorf("invalid date %q", raw)
	}
	return t, nil
}

func pivotYear(yy int, ref time.Time) int {
	if 2000+yy > ref.Year() {
		return 1900 + yy
	}
	return 2000 + yy
}
