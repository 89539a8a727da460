package events

import (
	"slices"
	"strings"
	"time"
)

// Criteria narrows an event list. Zero-valued fields do not constrain.
type Criteria struct {
	Query      string
	Region     string
	Categories []string
	Start      time.Time
	End        time.Time
}

// IsZero reports whether no criterion is set.
func (c Criteria) IsZero() bool {
	return strings.TrimSpace(c.Query) == "" && c.Region == "" && len(c.Categories) == 0 &&
		c.Start.IsZero() && c.End.IsZero()
}

// Filter returns the events matching every criterion, in input order. It never returns nil.
func Filter(events []Event, c Criteria) []Event {
	query := strings.ToLower(strings.TrimSpace(c.Query))
	out := make([]Event, 0, len(events))
	for _, e := range events {
		if query != "" && !matchesQuery(e, query) {
			continue
		}
		if c.Region != "" && e.Region != c.Region {
			continue
		}
		if len(c.Categories) > 0 && !slices.Contains(c.Categories, e.Category) {
			continue
		}
		if !c.Start.IsZero() && (e.StartDate.IsZero() || e.StartDate.Before(c.Start)) {
			continue
		}
		if !c.End.IsZero() && (e.EndDate.IsZero() || e.EndDate.After(c.End)) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func matchesQuery(e Event, q string) bool {
	if strings.Contains(strings.ToLower(e.Title[DefaultLocale]), q) ||
		strings.Contains(strings.ToLower(e.Description[DefaultLocale]), q) ||
		strings.Contains(strings.ToLower(e.City), q) {
		return true
	}
	for _, tag := range e.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}
