package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"eventdesk/internal/event"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ListResult contains a listing to be output
type ListResult struct {
	FetchedAt  time.Time      `json:"fetched_at"`
	Events     []*event.Event `json:"events"`
	EventCount int            `json:"event_count"`
	Filtered   bool           `json:"filtered,omitempty"`
}

// WriteList writes a listing in the specified format
func WriteList(w io.Writer, result *ListResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeListText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteEvent writes a single event in the specified format
func WriteEvent(w io.Writer, evt *event.Event, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, map[string]*event.Event{"event": evt})
	case FormatText:
		writeEventText(w, evt)
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func writeListText(w io.Writer, result *ListResult, verbose bool) error {
	if result.EventCount == 0 {
		if result.Filtered {
			fmt.Fprintln(w, "No events match the filter.")
		} else {
			fmt.Fprintln(w, "No events found.")
		}
		return nil
	}

	for _, evt := range result.Events {
		fmt.Fprintf(w, "%-14s %-6s %s @ %s\n",
			event.FormatDate(evt.Date), evt.Time, evt.Title, evt.Location)
		if verbose {
			fmt.Fprintf(w, "    ID: %s\n", evt.ID)
			if evt.Description != "" {
				fmt.Fprintf(w, "    %s\n", evt.Description)
			}
		}
	}
	fmt.Fprintf(w, "\nTotal: %d events\n", result.EventCount)
	return nil
}

func writeEventText(w io.Writer, evt *event.Event) {
	fmt.Fprintf(w, "%s\n", evt.Title)
	fmt.Fprintf(w, "%s @ %s\n", event.FormatDate(evt.Date), evt.Time)
	fmt.Fprintf(w, "%s\n", evt.Location)
	if evt.Description != "" {
		fmt.Fprintf(w, "\n%s\n", evt.Description)
	}
	if evt.Image != "" {
		fmt.Fprintf(w, "image: %s\n", evt.Image)
	}
	fmt.Fprintf(w, "id: %s\n", evt.ID)
}
