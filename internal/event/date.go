package event

import "time"

// WireDate is the date layout used on the wire by the backend.
const WireDate = "2006-01-02"

// ParseDate attempts to parse an event date string into a time.Time.
// Returns time.Time{} (zero value) if parsing fails.
// Supports formats: "2024-05-01", "05/01/2024", "May 1 2024", "May 1, 2024"
func ParseDate(text string) time.Time {
	if text == "" {
		return time.Time{}
	}

	// Wire format first, it is what the backend serves
	t, err := time.Parse(WireDate, text)
	if err == nil {
		return t
	}

	// Try "05/01/2024" format
	t, err = time.Parse("01/02/2006", text)
	if err == nil {
		return t
	}

	// Try "May 1 2024" format
	t, err = time.Parse("Jan 2 2006", text)
	if err == nil {
		return t
	}

	// Try "May 1, 2024" format (the display format, accepted back)
	t, err = time.Parse("January 2, 2006", text)
	if err == nil {
		return t
	}

	// Could not parse, return zero time
	return time.Time{}
}

// FormatDate renders a wire date for display, e.g. "2024-05-01" becomes
// "May 1, 2024". Unparseable dates are returned unchanged so the user
// still sees whatever the backend sent.
func FormatDate(text string) string {
	t := ParseDate(text)
	if t.IsZero() {
		return text
	}
	return t.Format("January 2, 2006")
}

// ParseTime parses a "15:04" time-of-day string.
// Returns time.Time{} if parsing fails.
func ParseTime(text string) time.Time {
	if text == "" {
		return time.Time{}
	}
	t, err := time.Parse("15:04", text)
	if err != nil {
		return time.Time{}
	}
	return t
}

// StartsAt combines an event's date and time into a single UTC timestamp.
// Events with an unparseable date report a zero time; a missing or bad
// time-of-day defaults to midnight.
func (e *Event) StartsAt() time.Time {
	d := ParseDate(e.Date)
	if d.IsZero() {
		return time.Time{}
	}
	tod := ParseTime(e.Time)
	return time.Date(d.Year(), d.Month(), d.Day(), tod.Hour(), tod.Minute(), 0, 0, time.UTC)
}

// IsUpcoming reports whether an event is in the future.
// Returns true if the date cannot be parsed (safer default).
func (e *Event) IsUpcoming() bool {
	at := e.StartsAt()
	if at.IsZero() {
		return true
	}
	return at.After(time.Now())
}
