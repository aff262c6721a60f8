package handlers

import (
	"time"
)

var dateTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// parseDateInClinic reads YYYY-MM-DD as midnight in the clinic timezone.
func parseDateInClinic(loc *time.Location, dateStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", dateStr, loc)
}

// parseDateTimeInClinic accepts RFC 3339, or a local date-time without
// offset which is read in the clinic timezone.
func parseDateTimeInClinic(loc *time.Location, s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}

	var lastErr error
	for _, layout := range dateTimeLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// parseDayRange reads optional YYYY-MM-DD bounds. to is moved to the next
// midnight so the last day is included. Any malformed bound is an error.
func parseDayRange(loc *time.Location, fromStr, toStr string) (from, to *time.Time, err error) {
	if fromStr != "" {
		f, err := parseDateInClinic(loc, fromStr)
		if err != nil {
			return nil, nil, err
		}
		from = &f
	}
	if toStr != "" {
		t, err := parseDateInClinic(loc, toStr)
		if err != nil {
			return nil, nil, err
		}
		t = t.AddDate(0, 0, 1)
		to = &t
	}
	return from, to, nil
}
