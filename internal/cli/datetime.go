package cli

import (
	"fmt"
	"time"
)

const (
	dateTimeLayout = "2006-01-02T15:04:05"
	dateLayout     = "2006-01-02"
)

// parseDateTime accepts YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS in the local
// timezone; a date without a time means midnight.
func parseDateTime(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(dateTimeLayout, s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(dateLayout, s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf(
		"invalid datetime %q: want YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS", s)
}

// todayMidnight returns the start of the current local day, the
// default lower bound of a search window.
func todayMidnight() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
}
