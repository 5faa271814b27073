// Package schedule builds the read-only projection the dashboard
// renders: a two-workweek window of per-day summaries joining the
// caller's own booking with the date's aggregate counts. It never
// mutates the ledger, and the engine never trusts these numbers for
// admission — capacity is always recomputed from fresh counts at write
// time.
package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/wissenhq/seatpool/internal/engine"
	"github.com/wissenhq/seatpool/internal/model"
	"github.com/wissenhq/seatpool/internal/policy"
)

// DaySummary is one workday in the schedule view.
type DaySummary struct {
	Date       string             `json:"date"`
	Weekday    string             `json:"weekday"`
	MyBooking  *model.BookingType `json:"my_booking"`
	Designated int                `json:"designated_count"`
	Floating   int                `json:"floating_count"`
	Released   int                `json:"released_count"`
}

// View is the full schedule response. ServerTimeMs carries the
// service's current instant in epoch milliseconds so clients can render
// the booking gate without trusting their own clock.
type View struct {
	ServerTimeMs int64        `json:"server_time_ms"`
	WindowOpen   bool         `json:"window_open"`
	Days         []DaySummary `json:"days"`
}

// Builder joins a user's bookings with per-date aggregates over a fixed
// two-workweek window anchored at the most recent Monday on or before
// today.
type Builder struct {
	ledger engine.Ledger
	clock  policy.Clock
}

// NewBuilder constructs a Builder.
func NewBuilder(ledger engine.Ledger, clock policy.Clock) *Builder {
	if ledger == nil || clock == nil {
		panic("nil dependency passed to schedule.NewBuilder")
	}
	return &Builder{ledger: ledger, clock: clock}
}

// Build assembles the view for one user. The window spans 14 calendar
// days from the anchor Monday; weekends are dropped, leaving 10
// workdays in order.
func (b *Builder) Build(ctx context.Context, userID uint64) (View, error) {
	now := b.clock.Now()
	days := windowDays(policy.Midnight(now))
	first, last := days[0], days[len(days)-1]

	mine, err := b.ledger.FindForUser(ctx, userID, first, last)
	if err != nil {
		return View{}, fmt.Errorf("load user bookings: %w", err)
	}
	myByDay := make(map[string]model.BookingType, len(mine))
	for _, bk := range mine {
		myByDay[engine.DayKey(bk.Date)] = bk.Type
	}

	counts, err := b.ledger.AggregatesForRange(ctx, first, last)
	if err != nil {
		return View{}, fmt.Errorf("load aggregates: %w", err)
	}

	out := make([]DaySummary, 0, len(days))
	for _, d := range days {
		key := engine.DayKey(d)
		s := DaySummary{
			Date:    key,
			Weekday: d.Weekday().String(),
		}
		if t, ok := myByDay[key]; ok {
			t := t
			s.MyBooking = &t
		}
		if c, ok := counts[key]; ok {
			s.Designated = c.Designated
			s.Floating = c.Floating
			s.Released = c.Released
		}
		out = append(out, s)
	}

	return View{
		ServerTimeMs: now.In(policy.Zone).UnixMilli(),
		WindowOpen:   policy.WindowOpen(now),
		Days:         out,
	}, nil
}

// windowDays returns the workdays of the two calendar weeks starting at
// the most recent Monday on or before today.
func windowDays(today time.Time) []time.Time {
	anchor := today
	for anchor.Weekday() != time.Monday {
		anchor = anchor.AddDate(0, 0, -1)
	}
	days := make([]time.Time, 0, 10)
	for i := 0; i < 14; i++ {
		d := anchor.AddDate(0, 0, i)
		if policy.Workday(d) {
			days = append(days, d)
		}
	}
	return days
}
