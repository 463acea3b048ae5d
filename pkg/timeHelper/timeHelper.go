package timehelper

import "time"

// WithinWindow reports whether now falls inside the registration window.
// A zero start means the window is only bounded by its end.
func WithinWindow(now, start, end time.Time) bool {
	if !start.IsZero() && now.Before(start) {
		return false
	}
	return !now.After(end)
}
