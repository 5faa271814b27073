// Package engine implements the booking rules core: the time-window
// gate, batch/day eligibility, the book/release/reclaim transitions and
// the floating-capacity admission check. This file defines the sentinel
// errors the engine returns for each distinct validation failure.
// Handlers translate them into HTTP 400 responses; none of them results
// in a ledger mutation.
package engine

import "errors"

// ErrWindowClosed is returned when a write action arrives before the
// daily 3 PM gate.
var ErrWindowClosed = errors.New("booking window opens at 3 PM strictly")

// ErrNotWorkday is returned for Saturday or Sunday target dates.
var ErrNotWorkday = errors.New("cannot book on weekends")

// ErrPastDate is returned when the target date is strictly before
// today.
var ErrPastDate = errors.New("cannot book for past dates")

// ErrAdvanceWindow is returned when a floating booking is attempted
// outside its 1-workday lookahead.
var ErrAdvanceWindow = errors.New("can only book floating seats strictly 1 working day in advance")

// ErrNoFloatingSeats is returned when the floating pool for the target
// date is exhausted.
var ErrNoFloatingSeats = errors.New("no floating seats available for this date")

// ErrNotDesignated is returned when a user tries to release a day their
// batch is not entitled to.
var ErrNotDesignated = errors.New("can only release your batch designated days")
