package domain

import "time"

// Urgency enumerates campaign urgency levels.
type Urgency string

const (
	UrgencyVeryHigh Urgency = "Very High"
	UrgencyHigh     Urgency = "High"
	UrgencyMedium   Urgency = "Medium"
	UrgencyLow      Urgency = "Low"
)

var urgencyLabels = map[Urgency]string{
	UrgencyVeryHigh: "Çok Yüksek",
	UrgencyHigh:     "Yüksek",
	UrgencyMedium:   "Orta",
	UrgencyLow:      "Düşük",
}

// Valid reports whether u is a known urgency.
func (u Urgency) Valid() bool {
	_, ok := urgencyLabels[u]
	return ok
}

// Label returns the display label shown to users and in outbound messages.
func (u Urgency) Label() string {
	if label, ok := urgencyLabels[u]; ok {
		return label
	}
	return string(u)
}

// Event is a scheduled campaign task on the calendar.
// Events are immutable once created; they are only ever deleted.
type Event struct {
	ID           string
	Title        string
	Date         time.Time
	Urgency      Urgency
	Description  *string
	AssigneeID   *string
	DepartmentID *string
	CreatedAt    time.Time
}

// CalendarDate drops the clock and zone from t, keeping the calendar day as
// read in t's own location. Event dates are stored and compared in this form.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
