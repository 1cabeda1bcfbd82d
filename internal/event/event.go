package event

import (
	"fmt"
	"strings"
)

// Event represents a single event record as served by the backend.
// Records are owned by the backend; clients treat them as immutable
// and change them only through an explicit update call.
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"` // calendar date, "2006-01-02"
	Time        string `json:"time"` // time of day, "15:04"
	Location    string `json:"location"`
	Image       string `json:"image"` // URL of a hosted image
}

// Fields is a flat key-value set of event fields as gathered from a
// form-style submission. Keys match the Event JSON field names.
type Fields map[string]string

// FieldsFromEvent flattens an event into a submission field set.
func FieldsFromEvent(evt *Event) Fields {
	return Fields{
		"title":       evt.Title,
		"description": evt.Description,
		"date":        evt.Date,
		"time":        evt.Time,
		"location":    evt.Location,
		"image":       evt.Image,
	}
}

// Apply copies the field set onto an event. Only known keys are applied;
// unknown keys are ignored. The event ID is never touched.
func (f Fields) Apply(evt *Event) {
	for key, value := range f {
		switch key {
		case "title":
			evt.Title = value
		case "description":
			evt.Description = value
		case "date":
			evt.Date = value
		case "time":
			evt.Time = value
		case "location":
			evt.Location = value
		case "image":
			evt.Image = value
		}
	}
}

// Merge returns a copy of f with non-empty values from other laid over it.
func (f Fields) Merge(other Fields) Fields {
	merged := make(Fields, len(f))
	for k, v := range f {
		merged[k] = v
	}
	for k, v := range other {
		if v != "" {
			merged[k] = v
		}
	}
	return merged
}

// Validate checks a field set for a create or edit submission.
// Title, date, time and location are required; the date must parse.
func (f Fields) Validate() error {
	var problems []string

	for _, key := range []string{"title", "date", "time", "location"} {
		if strings.TrimSpace(f[key]) == "" {
			problems = append(problems, fmt.Sprintf("%s is required", key))
		}
	}

	if date := strings.TrimSpace(f["date"]); date != "" {
		if ParseDate(date).IsZero() {
			problems = append(problems, fmt.Sprintf("unrecognized date %q", date))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid event: %s", strings.Join(problems, "; "))
	}
	return nil
}
