package engine

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wissenhq/seatpool/internal/model"
	"github.com/wissenhq/seatpool/internal/policy"
)

// fixedClock returns a constant instant.
type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// fakeLedger is an in-memory Ledger keeping one row per (user, day).
type fakeLedger struct {
	mu      sync.Mutex
	rows    map[string]model.BookingType
	upserts int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{rows: map[string]model.BookingType{}}
}

func rowKey(userID uint64, day string) string {
	return fmt.Sprintf("%d|%s", userID, day)
}

func (f *fakeLedger) Upsert(_ context.Context, userID uint64, date time.Time, typ model.BookingType) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[rowKey(userID, DayKey(date))] = typ
	f.upserts++
	return nil
}

func (f *fakeLedger) CountByTypeForDate(_ context.Context, date time.Time, typ model.BookingType) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	day := DayKey(date)
	n := 0
	for k, t := range f.rows {
		if t == typ && k[len(k)-len(day):] == day {
			n++
		}
	}
	return n, nil
}

func (f *fakeLedger) FindForUser(_ context.Context, userID uint64, from, to time.Time) ([]model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Booking
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if t, ok := f.rows[rowKey(userID, DayKey(d))]; ok {
			out = append(out, model.Booking{UserID: userID, Date: d, Type: t})
		}
	}
	return out, nil
}

func (f *fakeLedger) AggregatesForRange(_ context.Context, from, to time.Time) (map[string]model.TypeCounts, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[string]model.TypeCounts{}
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		day := DayKey(d)
		var c model.TypeCounts
		for k, t := range f.rows {
			if k[len(k)-len(day):] != day {
				continue
			}
			switch t {
			case model.TypeDesignated:
				c.Designated++
			case model.TypeFloating:
				c.Floating++
			case model.TypeReleased:
				c.Released++
			}
		}
		if c != (model.TypeCounts{}) {
			out[day] = c
		}
	}
	return out, nil
}

// typeOf reads the current row for (user, day), "" if absent.
func (f *fakeLedger) typeOf(userID uint64, day time.Time) model.BookingType {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[rowKey(userID, DayKey(day))]
}

func ist(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, policy.Zone)
}

// Reference week: Mon 2026-01-05 .. Fri 2026-01-09, following Mon 2026-01-12.
var (
	monday    = ist(2026, time.January, 5, 0)
	tuesday   = ist(2026, time.January, 6, 0)
	wednesday = ist(2026, time.January, 7, 0)
	thursday  = ist(2026, time.January, 8, 0)
	saturday  = ist(2026, time.January, 10, 0)
	nextMon   = ist(2026, time.January, 12, 0)
	nextTue   = ist(2026, time.January, 13, 0)
)

var (
	b1User = model.User{ID: 1, Name: "Rahul Sharma", Batch: "B1"}
	b2User = model.User{ID: 2, Name: "Priya Patel", Batch: "B2"}
)

func newEngine(ledger Ledger, now time.Time) *Engine {
	return New(ledger, fixedClock{t: now}, 0)
}

func TestBookRejectsWhenWindowClosed(t *testing.T) {
	ledger := newFakeLedger()
	e := newEngine(ledger, ist(2026, time.January, 6, 14)) // 2 PM, gate still shut

	_, err := e.Book(context.Background(), b1User, tuesday)
	assert.ErrorIs(t, err, ErrWindowClosed)
	assert.Zero(t, ledger.upserts, "a gated request must not touch the ledger")

	err = e.Release(context.Background(), b1User, tuesday)
	assert.ErrorIs(t, err, ErrWindowClosed)
	assert.Zero(t, ledger.upserts)
}

func TestBookRejectsWeekendAndPastDates(t *testing.T) {
	ledger := newFakeLedger()
	e := newEngine(ledger, ist(2026, time.January, 6, 16))

	_, err := e.Book(context.Background(), b1User, saturday)
	assert.ErrorIs(t, err, ErrNotWorkday)

	_, err = e.Book(context.Background(), b1User, monday) // yesterday
	assert.ErrorIs(t, err, ErrPastDate)

	assert.Zero(t, ledger.upserts)
}

func TestBookDesignatedIsIdempotent(t *testing.T) {
	ledger := newFakeLedger()
	e := newEngine(ledger, ist(2026, time.January, 6, 16))

	typ, err := e.Book(context.Background(), b1User, tuesday)
	require.NoError(t, err)
	assert.Equal(t, model.TypeDesignated, typ)

	typ, err = e.Book(context.Background(), b1User, tuesday)
	require.NoError(t, err)
	assert.Equal(t, model.TypeDesignated, typ)

	assert.Equal(t, model.TypeDesignated, ledger.typeOf(b1User.ID, tuesday))
	assert.Len(t, ledger.rows, 1, "one row per (user, date)")
}

func TestReleaseAndReclaimRoundTrip(t *testing.T) {
	ledger := newFakeLedger()
	e := newEngine(ledger, ist(2026, time.January, 6, 16))
	ctx := context.Background()

	_, err := e.Book(ctx, b1User, tuesday)
	require.NoError(t, err)

	require.NoError(t, e.Release(ctx, b1User, tuesday))
	assert.Equal(t, model.TypeReleased, ledger.typeOf(b1User.ID, tuesday))

	typ, err := e.Book(ctx, b1User, tuesday)
	require.NoError(t, err)
	assert.Equal(t, model.TypeDesignated, typ)
	assert.Len(t, ledger.rows, 1)
}

func TestReleaseRequiresDesignatedDay(t *testing.T) {
	ledger := newFakeLedger()
	e := newEngine(ledger, ist(2026, time.January, 6, 16))

	// Tuesday belongs to B1; a B2 user cannot release it.
	err := e.Release(context.Background(), b2User, tuesday)
	assert.ErrorIs(t, err, ErrNotDesignated)
	assert.Zero(t, ledger.upserts)
}

func TestReleaseIsIdempotent(t *testing.T) {
	ledger := newFakeLedger()
	e := newEngine(ledger, ist(2026, time.January, 6, 16))
	ctx := context.Background()

	require.NoError(t, e.Release(ctx, b1User, tuesday))
	require.NoError(t, e.Release(ctx, b1User, tuesday))
	assert.Equal(t, model.TypeReleased, ledger.typeOf(b1User.ID, tuesday))
	assert.Len(t, ledger.rows, 1)
}

func TestFloatingAdvanceWindow(t *testing.T) {
	ctx := context.Background()

	t.Run("one day ahead succeeds", func(t *testing.T) {
		e := newEngine(newFakeLedger(), ist(2026, time.January, 6, 16)) // Tuesday
		typ, err := e.Book(ctx, b2User, wednesday)
		require.NoError(t, err)
		assert.Equal(t, model.TypeFloating, typ)
	})

	t.Run("two days ahead fails", func(t *testing.T) {
		e := newEngine(newFakeLedger(), ist(2026, time.January, 6, 16)) // Tuesday
		_, err := e.Book(ctx, b1User, thursday)
		assert.ErrorIs(t, err, ErrAdvanceWindow)
	})

	t.Run("same day fails", func(t *testing.T) {
		e := newEngine(newFakeLedger(), ist(2026, time.January, 6, 16)) // Tuesday
		_, err := e.Book(ctx, b2User, tuesday)
		assert.ErrorIs(t, err, ErrAdvanceWindow)
	})

	t.Run("friday to monday carry-over succeeds", func(t *testing.T) {
		e := newEngine(newFakeLedger(), ist(2026, time.January, 9, 16)) // Friday
		typ, err := e.Book(ctx, b2User, nextMon)
		require.NoError(t, err)
		assert.Equal(t, model.TypeFloating, typ)
	})

	t.Run("friday to tuesday fails", func(t *testing.T) {
		e := newEngine(newFakeLedger(), ist(2026, time.January, 9, 16)) // Friday
		_, err := e.Book(ctx, b2User, nextTue)
		assert.ErrorIs(t, err, ErrAdvanceWindow)
	})
}

func TestFloatingCapacity(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger()
	e := newEngine(ledger, ist(2026, time.January, 6, 16)) // Tuesday, target Wednesday

	// Fill the base pool with ten other floating takers.
	for i := uint64(100); i < 110; i++ {
		require.NoError(t, ledger.Upsert(ctx, i, wednesday, model.TypeFloating))
	}

	_, err := e.Book(ctx, b2User, wednesday)
	assert.ErrorIs(t, err, ErrNoFloatingSeats)

	// A B1 owner releasing Wednesday frees exactly one seat.
	require.NoError(t, e.Release(ctx, b1User, wednesday))
	typ, err := e.Book(ctx, b2User, wednesday)
	require.NoError(t, err)
	assert.Equal(t, model.TypeFloating, typ)

	// The pool is full again.
	_, err = e.Book(ctx, model.User{ID: 3, Batch: "B2"}, wednesday)
	assert.ErrorIs(t, err, ErrNoFloatingSeats)
}

func TestReleaseThenFloatingScenario(t *testing.T) {
	// Today is Monday; Tuesday is B1's designated day. A B1 owner books
	// and releases it, then a B2 user takes it from the enlarged pool.
	ctx := context.Background()
	ledger := newFakeLedger()
	e := newEngine(ledger, ist(2026, time.January, 5, 16))

	typ, err := e.Book(ctx, b1User, tuesday)
	require.NoError(t, err)
	assert.Equal(t, model.TypeDesignated, typ)

	require.NoError(t, e.Release(ctx, b1User, tuesday))

	typ, err = e.Book(ctx, b2User, tuesday)
	require.NoError(t, err)
	assert.Equal(t, model.TypeFloating, typ)

	assert.Equal(t, model.TypeReleased, ledger.typeOf(b1User.ID, tuesday))
	assert.Equal(t, model.TypeFloating, ledger.typeOf(b2User.ID, tuesday))
}

func TestUnknownBatchAlwaysFloats(t *testing.T) {
	ctx := context.Background()
	e := newEngine(newFakeLedger(), ist(2026, time.January, 6, 16))
	intern := model.User{ID: 9, Batch: "B9"}

	typ, err := e.Book(ctx, intern, wednesday)
	require.NoError(t, err)
	assert.Equal(t, model.TypeFloating, typ)

	err = e.Release(ctx, intern, wednesday)
	assert.ErrorIs(t, err, ErrNotDesignated)
}

func TestFloatingAdmissionSerializedPerDate(t *testing.T) {
	// Nine of ten seats taken: many concurrent bookings must admit
	// exactly one more, never oversubscribe.
	ctx := context.Background()
	ledger := newFakeLedger()
	e := newEngine(ledger, ist(2026, time.January, 6, 16))

	for i := uint64(100); i < 109; i++ {
		require.NoError(t, ledger.Upsert(ctx, i, wednesday, model.TypeFloating))
	}

	const contenders = 8
	var wg sync.WaitGroup
	successes := make(chan uint64, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(id uint64) {
			defer wg.Done()
			u := model.User{ID: id, Batch: "B2"}
			if _, err := e.Book(ctx, u, wednesday); err == nil {
				successes <- id
			}
		}(uint64(10 + i))
	}
	wg.Wait()
	close(successes)

	var winners []uint64
	for id := range successes {
		winners = append(winners, id)
	}
	require.Len(t, winners, 1)

	floating, err := ledger.CountByTypeForDate(ctx, wednesday, model.TypeFloating)
	require.NoError(t, err)
	assert.Equal(t, 10, floating)
}
