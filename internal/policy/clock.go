// Package policy holds the temporal rules everything else depends on:
// the canonical time zone, the daily booking window, the workday
// predicate and the batch calendar. All predicates are pure functions
// of their inputs; "now" comes from an injected Clock so the rules are
// deterministic under test.
package policy

import "time"

// Zone is the single civil time zone all dates and the booking window
// are interpreted in (UTC+5:30), independent of the host machine zone.
var Zone = time.FixedZone("IST", 5*3600+30*60)

// Clock supplies the current instant. Production code uses SystemClock;
// tests substitute a fixed implementation.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Midnight truncates t to 00:00 of its calendar day in Zone.
func Midnight(t time.Time) time.Time {
	t = t.In(Zone)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, Zone)
}
