package window

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrWidth is returned when the window width is not positive.
	ErrWidth = errors.New("window: width must be positive")
	// ErrStride is returned when the stride is not positive.
	ErrStride = errors.New("window: stride must be positive")
)

// Window is the half-open interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Width returns End - Start.
func (w Window) Width() time.Duration {
	return w.End.Sub(w.Start)
}

func (w Window) String() string {
	return w.Start.Format(time.DateOnly) + ".." + w.End.Format(time.DateOnly)
}

// Label renders the start date as year_month_day without zero padding, the
// form used for per-window output file names.
func (w Window) Label() string {
	return DateLabel(w.Start)
}

// DateLabel formats t as year_month_day without zero padding.
func DateLabel(t time.Time) string {
	return fmt.Sprintf("%d_%d_%d", t.Year(), int(t.Month()), t.Day())
}

// Generate returns the windows [t, t+width) for t = start, start+stride, ...
// while t <= end. The end bound is inclusive for window starts.
func Generate(start, end time.Time, width, stride time.Duration) ([]Window, error) {
	if width <= 0 {
		return nil, ErrWidth
	}
	if stride <= 0 {
		return nil, ErrStride
	}
	if end.Before(start) {
		return []Window{}, nil
	}
	count := int(end.Sub(start)/stride) + 1
	windows := make([]Window, 0, count)
	for t := start; !t.After(end); t = t.Add(stride) {
		windows = append(windows, Window{Start: t, End: t.Add(width)})
	}
	return windows, nil
}

// Days converts a day count into a duration.
func Days(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}
