package cli

import (
	"testing"

	"eventdesk/internal/event"
)

func titles(events []*event.Event) []string {
	out := make([]string, len(events))
	for i, evt := range events {
		out[i] = evt.Title
	}
	return out
}

func TestSortEvents(t *testing.T) {
	make4 := func() []*event.Event {
		return []*event.Event{
			{Title: "Charlie", Date: "2024-06-01", Time: "10:00"},
			{Title: "alpha", Date: "2024-05-01", Time: "19:00"},
			{Title: "Bravo", Date: "sometime soon"},
			{Title: "delta", Date: "2024-05-01", Time: "09:00"},
		}
	}

	t.Run("by date", func(t *testing.T) {
		events := make4()
		sortEvents(events, SortByDate)

		want := []string{"delta", "alpha", "Charlie", "Bravo"}
		got := titles(events)
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("got order %v, want %v", got, want)
			}
		}
	})

	t.Run("by title", func(t *testing.T) {
		events := make4()
		sortEvents(events, SortByTitle)

		want := []string{"alpha", "Bravo", "Charlie", "delta"}
		got := titles(events)
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("got order %v, want %v", got, want)
			}
		}
	})
}

func TestCompareByStartUnparseableSortsLast(t *testing.T) {
	dated := &event.Event{Title: "Dated", Date: "2024-05-01", Time: "19:00"}
	undated := &event.Event{Title: "Undated", Date: "whenever"}

	if !compareByStart(dated, undated) {
		t.Error("dated event should sort before undated")
	}
	if compareByStart(undated, dated) {
		t.Error("undated event should sort after dated")
	}
}
