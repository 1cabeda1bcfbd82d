// Package calendar exports events as iCalendar documents.
package calendar

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"eventdesk/internal/event"
)

// DefaultDuration is assumed for events, which carry only a start time.
const DefaultDuration = 2 * time.Hour

// GenerateICS renders one event as a VCALENDAR with a single VEVENT.
// Events without a parseable date are rejected; a missing time-of-day
// produces an all-day entry.
func GenerateICS(evt *event.Event) (string, error) {
	date := event.ParseDate(evt.Date)
	if date.IsZero() {
		return "", fmt.Errorf("event %s has no usable date (%q)", evt.ID, evt.Date)
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//eventdesk//eventdesk//EN")

	vevent := cal.AddEvent(evt.ID + "@eventdesk")
	vevent.SetDtStampTime(time.Now().UTC())
	vevent.SetSummary(evt.Title)
	vevent.SetStatus(ics.ObjectStatusConfirmed)

	if evt.Location != "" {
		vevent.SetLocation(evt.Location)
	}
	if evt.Description != "" {
		vevent.SetDescription(evt.Description)
	}
	if evt.Image != "" {
		vevent.SetURL(evt.Image)
	}

	if tod := event.ParseTime(evt.Time); !tod.IsZero() {
		start := time.Date(date.Year(), date.Month(), date.Day(),
			tod.Hour(), tod.Minute(), 0, 0, time.UTC)
		vevent.SetStartAt(start)
		vevent.SetEndAt(start.Add(DefaultDuration))
	} else {
		vevent.SetAllDayStartAt(date)
		vevent.SetAllDayEndAt(date.AddDate(0, 0, 1))
	}

	return cal.Serialize(), nil
}
