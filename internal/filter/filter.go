// Package filter provides listing filters for events.
//
// A filter narrows the events listing by date range, title or location
// substring, or to upcoming events only. Filters can be parsed from a
// compact expression string, e.g.:
//
//	after:2024-05-01 before:2024-06-01 title:party upcoming
package filter

import (
	"fmt"
	"strings"
	"time"

	"eventdesk/internal/event"
)

// Filter represents event filtering criteria. An empty filter matches
// every event.
type Filter struct {
	DateFrom *time.Time `json:"date_from,omitempty"`
	DateTo   *time.Time `json:"date_to,omitempty"`

	// Case-insensitive substring matches; any one match suffices.
	Titles    []string `json:"titles,omitempty"`
	Locations []string `json:"locations,omitempty"`

	UpcomingOnly bool `json:"upcoming_only,omitempty"`
}

// New creates an empty filter.
func New() *Filter {
	return &Filter{}
}

// IsEmpty reports whether the filter has any active criteria.
func (f *Filter) IsEmpty() bool {
	return f.DateFrom == nil &&
		f.DateTo == nil &&
		len(f.Titles) == 0 &&
		len(f.Locations) == 0 &&
		!f.UpcomingOnly
}

// Matches reports whether an event passes all active criteria.
// Events with an unparseable date pass the date criteria (safer default).
func (f *Filter) Matches(evt *event.Event) bool {
	if f.IsEmpty() {
		return true
	}

	date := event.ParseDate(evt.Date)

	if f.DateFrom != nil && !date.IsZero() && date.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && !date.IsZero() && date.After(*f.DateTo) {
		return false
	}
	if f.UpcomingOnly && !evt.IsUpcoming() {
		return false
	}

	if len(f.Titles) > 0 && !containsAny(evt.Title, f.Titles) {
		return false
	}
	if len(f.Locations) > 0 && !containsAny(evt.Location, f.Locations) {
		return false
	}
	return true
}

// Apply returns the events that match the filter, in input order.
func (f *Filter) Apply(events []*event.Event) []*event.Event {
	if f.IsEmpty() {
		return events
	}
	matched := make([]*event.Event, 0, len(events))
	for _, evt := range events {
		if f.Matches(evt) {
			matched = append(matched, evt)
		}
	}
	return matched
}

func containsAny(value string, needles []string) bool {
	lower := strings.ToLower(value)
	for _, needle := range needles {
		if strings.Contains(lower, strings.ToLower(needle)) {
			return true
		}
	}
	return false
}

// Parse builds a filter from a whitespace-separated expression of
// key:value tokens. Supported keys: after, before (dates), title,
// location (substrings); the bare token "upcoming" restricts to future
// events. Unknown keys are an error.
func Parse(input string) (*Filter, error) {
	f := New()

	for _, token := range strings.Fields(input) {
		if token == "upcoming" {
			f.UpcomingOnly = true
			continue
		}

		key, value, ok := strings.Cut(token, ":")
		if !ok || value == "" {
			return nil, fmt.Errorf("invalid filter token %q (use key:value or 'upcoming')", token)
		}

		switch key {
		case "after":
			t := event.ParseDate(value)
			if t.IsZero() {
				return nil, fmt.Errorf("invalid date in %q", token)
			}
			f.DateFrom = &t
		case "before":
			t := event.ParseDate(value)
			if t.IsZero() {
				return nil, fmt.Errorf("invalid date in %q", token)
			}
			f.DateTo = &t
		case "title":
			f.Titles = append(f.Titles, value)
		case "location":
			f.Locations = append(f.Locations, value)
		default:
			return nil, fmt.Errorf("unknown filter key %q", key)
		}
	}

	return f, nil
}
