package search

import "time"

// Window is an inclusive time range with an optional upper bound.
// A nil End means the window is open-ended. Windows are built once per
// query and never modified.
type Window struct {
	Start time.Time
	End   *time.Time
}

// NewWindow creates a window over [start, end]. Pass a zero end time
// for an open-ended window. An inverted window (end before start) is
// valid and simply matches nothing.
func NewWindow(start, end time.Time) Window {
	w := Window{Start: start}
	if !end.IsZero() {
		w.End = &end
	}
	return w
}

// Contains reports whether t falls inside the window, comparing at
// epoch-second resolution. Both bounds are inclusive.
func (w Window) Contains(t time.Time) bool {
	if t.Unix() < w.Start.Unix() {
		return false
	}
	if w.End != nil && t.Unix() > w.End.Unix() {
		return false
	}
	return true
}

// CoarseQuery returns calendar-day bounds for a server-side date
// search. IMAP SINCE/BEFORE compare internal dates at day granularity
// and BEFORE is exclusive, so the upper bound is the end date plus one
// day; the coarse range is therefore always a superset of the exact
// window and candidates on the boundary days must still pass Contains.
// An open-ended window yields a zero before time.
func (w Window) CoarseQuery() (since, before time.Time) {
	since = truncateToDay(w.Start)
	if w.End != nil {
		before = truncateToDay(*w.End).AddDate(0, 0, 1)
	}
	return since, before
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
