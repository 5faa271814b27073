package policy

import "time"

// WindowOpenHour is the local hour from which write actions are
// permitted. The window stays open until midnight.
const WindowOpenHour = 15

// WindowOpen reports whether the booking window is open at the given
// instant: local hour of day >= 15 (3 PM) in Zone.
func WindowOpen(now time.Time) bool {
	return now.In(Zone).Hour() >= WindowOpenHour
}

// Workday reports whether d falls on Monday..Friday in Zone.
func Workday(d time.Time) bool {
	wd := d.In(Zone).Weekday()
	return wd >= time.Monday && wd <= time.Friday
}

// DesignatedDay reports whether date is a designated day for the given
// batch label. B1 owns Monday..Wednesday, B2 owns Thursday..Friday.
// Unknown labels own nothing and fall through to floating eligibility.
func DesignatedDay(batch string, date time.Time) bool {
	wd := date.In(Zone).Weekday()
	switch batch {
	case "B1":
		return wd >= time.Monday && wd <= time.Wednesday
	case "B2":
		return wd == time.Thursday || wd == time.Friday
	}
	return false
}

// AdvanceDays returns the whole-day distance from today to date. Both
// arguments must already be midnight-truncated in Zone; with a fixed
// offset zone the difference is an exact multiple of 24h.
func AdvanceDays(today, date time.Time) int {
	return int(date.Sub(today) / (24 * time.Hour))
}
