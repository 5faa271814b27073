// Package queue defines message payloads exchanged over the message broker.
package queue

// Seat event actions.
const (
	ActionBooked   = "BOOKED"
	ActionReleased = "RELEASED"
)

// SeatEvent is published after every successfully committed book or
// release. It carries enough information for downstream consumers to
// log or notify without querying the primary database.
type SeatEvent struct {
	Action   string `json:"action"`   // BOOKED or RELEASED
	UserID   uint64 `json:"user_id"`  //
	UserName string `json:"user_name"`
	Batch    string `json:"batch"`
	Date     string `json:"date"` // booking day, 2006-01-02
	Type     string `json:"type"` // resulting booking type
	At       string `json:"at"`   // commit time, RFC3339
}
