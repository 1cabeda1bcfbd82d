package filter

import (
	"testing"
	"time"

	"eventdesk/internal/event"
)

func TestFilterMatches(t *testing.T) {
	party := &event.Event{Title: "Launch Party", Date: "2024-05-01", Location: "Main Hall"}
	meetup := &event.Event{Title: "Go Meetup", Date: "2024-06-15", Location: "Conference Room B"}
	undated := &event.Event{Title: "TBD Gathering", Date: "", Location: "Atrium"}

	t.Run("empty filter matches everything", func(t *testing.T) {
		f := New()
		for _, evt := range []*event.Event{party, meetup, undated} {
			if !f.Matches(evt) {
				t.Errorf("empty filter rejected %q", evt.Title)
			}
		}
	})

	t.Run("date range", func(t *testing.T) {
		from := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
		f := &Filter{DateFrom: &from}

		if f.Matches(party) {
			t.Error("event before range matched")
		}
		if !f.Matches(meetup) {
			t.Error("event in range rejected")
		}
		if !f.Matches(undated) {
			t.Error("undated event should pass date criteria")
		}
	})

	t.Run("title substring is case-insensitive", func(t *testing.T) {
		f := &Filter{Titles: []string{"PARTY"}}
		if !f.Matches(party) {
			t.Error("case-insensitive title match failed")
		}
		if f.Matches(meetup) {
			t.Error("non-matching title matched")
		}
	})

	t.Run("location substring", func(t *testing.T) {
		f := &Filter{Locations: []string{"conference"}}
		if !f.Matches(meetup) {
			t.Error("location match failed")
		}
		if f.Matches(party) {
			t.Error("non-matching location matched")
		}
	})
}

func TestFilterApply(t *testing.T) {
	events := []*event.Event{
		{Title: "Launch Party", Date: "2024-05-01"},
		{Title: "Go Meetup", Date: "2024-06-15"},
		{Title: "Party Planning", Date: "2024-07-01"},
	}

	f := &Filter{Titles: []string{"party"}}
	got := f.Apply(events)
	if len(got) != 2 {
		t.Fatalf("Apply() returned %d events, want 2", len(got))
	}
	if got[0].Title != "Launch Party" || got[1].Title != "Party Planning" {
		t.Errorf("Apply() order = %q, %q", got[0].Title, got[1].Title)
	}
}

func TestParse(t *testing.T) {
	t.Run("full expression", func(t *testing.T) {
		f, err := Parse("after:2024-05-01 before:2024-06-01 title:party location:hall upcoming")
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}

		if f.DateFrom == nil || !f.DateFrom.Equal(time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("DateFrom = %v, want 2024-05-01", f.DateFrom)
		}
		if f.DateTo == nil || !f.DateTo.Equal(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("DateTo = %v, want 2024-06-01", f.DateTo)
		}
		if len(f.Titles) != 1 || f.Titles[0] != "party" {
			t.Errorf("Titles = %v, want [party]", f.Titles)
		}
		if len(f.Locations) != 1 || f.Locations[0] != "hall" {
			t.Errorf("Locations = %v, want [hall]", f.Locations)
		}
		if !f.UpcomingOnly {
			t.Error("UpcomingOnly = false, want true")
		}
	})

	t.Run("empty input gives empty filter", func(t *testing.T) {
		f, err := Parse("")
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if !f.IsEmpty() {
			t.Error("Parse(\"\") is not empty")
		}
	})

	t.Run("errors", func(t *testing.T) {
		for _, input := range []string{
			"after:tomorrow",
			"banana:split",
			"title:",
			"loose-token",
		} {
			if _, err := Parse(input); err == nil {
				t.Errorf("Parse(%q) error = nil, want error", input)
			}
		}
	})
}
