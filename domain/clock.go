package domain

import "time"

const stampLayout = "2006-01-02 15:04:05"

// Clock renders wall-clock timestamps in the board's local timezone. The
// board runs on US Eastern time; when tzdata is unavailable it falls back to
// UTC rather than failing.
type Clock struct {
	loc   *time.Location
	label string
}

// NewClock returns a Clock on America/New_York, or UTC when the zone cannot
// be loaded.
func NewClock() Clock {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return Clock{loc: time.UTC, label: "UTC"}
	}
	return Clock{loc: loc, label: "ET"}
}

// Stamp formats the current time for persisted records.
func (c Clock) Stamp() string {
	return time.Now().In(c.loc).Format(stampLayout)
}

// StampLabeled formats the current time with its timezone label, for display.
func (c Clock) StampLabeled() string {
	return c.Stamp() + " " + c.label
}
