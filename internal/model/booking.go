package model

import "time"

// BookingType enumerates the three states a seat booking can be in.
// A row never returns to the unbooked state once created; subsequent
// actions replace the type in place.
type BookingType string

const (
	TypeDesignated BookingType = "DESIGNATED" // seat held on a batch's own day
	TypeFloating   BookingType = "FLOATING"   // seat taken from the shared floating pool
	TypeReleased   BookingType = "RELEASED"   // designated seat given back to the pool
)

// Booking is a row in the `bookings` table.  The pair (UserID, Date)
// is unique: a user has at most one booking per calendar day, and the
// type is replaced wholesale on every successful action for that pair.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the booking.
//  Date      – calendar day, truncated to midnight in the canonical zone.
//  Type      – current state (DESIGNATED, FLOATING or RELEASED).
//  CreatedAt – timestamp of creation.
//  UpdatedAt – timestamp of last update.
type Booking struct {
	ID        uint64      // bookings.id
	UserID    uint64      // bookings.user_id
	Date      time.Time   // bookings.date
	Type      BookingType // bookings.type
	CreatedAt time.Time   // bookings.created_at
	UpdatedAt time.Time   // bookings.updated_at
}

// TypeCounts aggregates bookings of one date grouped by type.  It is
// derived at read time and never stored.
type TypeCounts struct {
	Designated int `json:"designated"`
	Floating   int `json:"floating"`
	Released   int `json:"released"`
}
