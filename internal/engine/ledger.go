package engine

import (
	"context"
	"time"

	"github.com/wissenhq/seatpool/internal/model"
)

// Ledger is the persistence contract the engine writes through. The
// store guarantees the uniqueness invariant on (userID, date) and that
// Upsert is an atomic create-or-replace of the single row for that
// pair; it enforces no business rules of its own. Counts must reflect
// every previously committed write — no caching layer may sit between
// the engine and these reads.
type Ledger interface {
	// Upsert atomically creates or replaces the booking row for
	// (userID, date) with the given type.
	Upsert(ctx context.Context, userID uint64, date time.Time, typ model.BookingType) error

	// CountByTypeForDate returns the number of bookings of one type on
	// one date.
	CountByTypeForDate(ctx context.Context, date time.Time, typ model.BookingType) (int, error)

	// FindForUser returns the user's bookings with from <= date <= to.
	FindForUser(ctx context.Context, userID uint64, from, to time.Time) ([]model.Booking, error)

	// AggregatesForRange returns per-date type counts for
	// from <= date <= to, keyed by day in "2006-01-02" form.
	AggregatesForRange(ctx context.Context, from, to time.Time) (map[string]model.TypeCounts, error)
}

// DayKey formats a date the way AggregatesForRange keys its result.
func DayKey(d time.Time) string { return d.Format("2006-01-02") }
