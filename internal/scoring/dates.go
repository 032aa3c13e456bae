package scoring

import (
	"strings"
	"time"
)

// Accepted resume date layouts, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"01/2006",
	"1/2006",
	"Jan 2006",
	"January 2006",
	"2006",
}

// parseResumeDate parses the date formats resume parsers commonly emit.
func parseResumeDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// isOngoing reports whether an end-date string means "still employed".
// An empty end date counts as ongoing.
func isOngoing(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "present", "current", "now", "ongoing":
		return true
	}
	return false
}

// monthsBetween returns the approximate number of months from a to b.
func monthsBetween(a, b time.Time) float64 {
	if b.Before(a) {
		return 0
	}
	return b.Sub(a).Hours() / (24 * 30.44)
}
