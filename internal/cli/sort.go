package cli

import (
	"sort"
	"strings"

	"eventdesk/internal/event"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByDate  SortOrder = "date"
	SortByTitle SortOrder = "title"
)

// sortEvents sorts a slice of events based on the specified sort order
func sortEvents(events []*event.Event, order SortOrder) {
	switch order {
	case SortByDate:
		sort.Slice(events, func(i, j int) bool {
			return compareByStart(events[i], events[j])
		})
	case SortByTitle:
		sort.Slice(events, func(i, j int) bool {
			ti := strings.ToLower(events[i].Title)
			tj := strings.ToLower(events[j].Title)
			if ti != tj {
				return ti < tj
			}
			return compareByStart(events[i], events[j])
		})
	}
}

// compareByStart orders events by their combined date and time.
// Events without a parseable date sort last, by title.
func compareByStart(i, j *event.Event) bool {
	si, sj := i.StartsAt(), j.StartsAt()

	if !si.IsZero() && !sj.IsZero() {
		return si.Before(sj)
	}
	if !si.IsZero() {
		return true
	}
	if !sj.IsZero() {
		return false
	}
	return strings.ToLower(i.Title) < strings.ToLower(j.Title)
}
