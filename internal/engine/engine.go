package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wissenhq/seatpool/internal/model"
	"github.com/wissenhq/seatpool/internal/policy"
)

// BaseFloatingCapacity is the size of the shared floating pool before
// any designated seats are released back into it.
const BaseFloatingCapacity = 10

// Engine validates book/release requests against the booking window,
// the batch calendar and the ledger's per-date aggregates, then commits
// a single atomic state transition. Every validation failure returns
// one of the sentinel errors from errors.go and leaves the ledger
// untouched.
//
// The floating admission sequence (count, then upsert) is serialized
// per date with a mutex so two concurrent floating bookings cannot both
// observe the last free seat and oversubscribe the pool.
type Engine struct {
	ledger   Ledger
	clock    policy.Clock
	capacity int

	mu        sync.Mutex
	dateLocks map[string]*sync.Mutex
}

// New constructs an Engine. A capacity <= 0 falls back to
// BaseFloatingCapacity.
func New(ledger Ledger, clock policy.Clock, capacity int) *Engine {
	if ledger == nil || clock == nil {
		panic("nil dependency passed to engine.New")
	}
	if capacity <= 0 {
		capacity = BaseFloatingCapacity
	}
	return &Engine{
		ledger:    ledger,
		clock:     clock,
		capacity:  capacity,
		dateLocks: make(map[string]*sync.Mutex),
	}
}

// Book requests a seat for the user on the given calendar day.
//
// On the user's own batch day the upsert is unconditional: it covers
// the first booking of an entitled seat and reclaiming a previously
// released one, and re-booking an already designated day is a no-op
// state-wise. On any other workday the request goes through the
// floating path: exactly one working day of advance (with the
// Friday-to-Monday carry-over) and a free seat in the pool for that
// date, computed as base + released - floating.
//
// The committed type is returned so handlers can echo it back.
func (e *Engine) Book(ctx context.Context, user model.User, date time.Time) (model.BookingType, error) {
	now := e.clock.Now()
	if !policy.WindowOpen(now) {
		return "", ErrWindowClosed
	}

	date = policy.Midnight(date)
	if !policy.Workday(date) {
		return "", ErrNotWorkday
	}
	today := policy.Midnight(now)
	if date.Before(today) {
		return "", ErrPastDate
	}

	if policy.DesignatedDay(user.Batch, date) {
		if err := e.ledger.Upsert(ctx, user.ID, date, model.TypeDesignated); err != nil {
			return "", fmt.Errorf("commit designated booking: %w", err)
		}
		return model.TypeDesignated, nil
	}

	advance := policy.AdvanceDays(today, date)
	fridayToMonday := today.Weekday() == time.Friday &&
		date.Weekday() == time.Monday && advance == 3
	if advance != 1 && !fridayToMonday {
		return "", ErrAdvanceWindow
	}

	lock := e.lockFor(DayKey(date))
	lock.Lock()
	defer lock.Unlock()

	released, err := e.ledger.CountByTypeForDate(ctx, date, model.TypeReleased)
	if err != nil {
		return "", fmt.Errorf("count released seats: %w", err)
	}
	floating, err := e.ledger.CountByTypeForDate(ctx, date, model.TypeFloating)
	if err != nil {
		return "", fmt.Errorf("count floating seats: %w", err)
	}
	if available := e.capacity + released - floating; available <= 0 {
		return "", ErrNoFloatingSeats
	}

	if err := e.ledger.Upsert(ctx, user.ID, date, model.TypeFloating); err != nil {
		return "", fmt.Errorf("commit floating booking: %w", err)
	}
	return model.TypeFloating, nil
}

// Release gives the user's designated seat on the given day back to the
// floating pool. Releasing an already released day is idempotent; a
// reclaim is a subsequent Book on the same day.
func (e *Engine) Release(ctx context.Context, user model.User, date time.Time) error {
	now := e.clock.Now()
	if !policy.WindowOpen(now) {
		return ErrWindowClosed
	}

	date = policy.Midnight(date)
	if !policy.Workday(date) {
		return ErrNotWorkday
	}
	if date.Before(policy.Midnight(now)) {
		return ErrPastDate
	}
	if !policy.DesignatedDay(user.Batch, date) {
		return ErrNotDesignated
	}

	if err := e.ledger.Upsert(ctx, user.ID, date, model.TypeReleased); err != nil {
		return fmt.Errorf("commit release: %w", err)
	}
	return nil
}

// lockFor returns the mutex serializing floating admission for one day,
// creating it on first use. Lock instances are never removed; the key
// space is bounded by the advance window.
func (e *Engine) lockFor(key string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.dateLocks[key]
	if !ok {
		l = &sync.Mutex{}
		e.dateLocks[key] = l
	}
	return l
}
