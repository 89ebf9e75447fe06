// Package timerange maps symbolic range names onto a lower time bound.
package timerange

import "time"

const (
	Week  = "week"
	Month = "month"
	Year  = "year"
)

var spans = map[string]time.Duration{
	Week:  7 * 24 * time.Hour,
	Month: 30 * 24 * time.Hour,
	Year:  365 * 24 * time.Hour,
}

// Names lists the accepted range names in the order used by error messages.
var Names = []string{Month, Week, Year}

// Resolve returns now minus the span of name, or nil when name is not a known
// range. Unknown names ("", "all", ...) mean "no lower bound".
func Resolve(name string, now time.Time) *time.Time {
	span, ok := spans[name]
	if !ok {
		return nil
	}
	since := now.Add(-span)
	return &since
}

func Valid(name string) bool {
	_, ok := spans[name]
	return ok
}
