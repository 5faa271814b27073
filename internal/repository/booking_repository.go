package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/wissenhq/seatpool/internal/model"
	"github.com/wissenhq/seatpool/internal/policy"
)

// BookingRepo is the MySQL-backed allocation ledger. The bookings table
// carries a unique key on (user_id, date), so Upsert rides MySQL's
// INSERT ... ON DUPLICATE KEY UPDATE: a single atomic create-or-replace
// with no separate existence check. Dates are stored as DATE columns
// and exchanged as "2006-01-02" strings to stay independent of the
// connection's time zone.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const dayFormat = "2006-01-02"

// Upsert atomically creates or replaces the single row for
// (userID, date).
func (r *BookingRepo) Upsert(ctx context.Context, userID uint64, date time.Time, typ model.BookingType) error {
	const q = `INSERT INTO bookings (user_id, date, type) VALUES (?,?,?)
	           ON DUPLICATE KEY UPDATE type = VALUES(type)`
	_, err := r.db.ExecContext(ctx, q, userID, date.Format(dayFormat), string(typ))
	return err
}

// CountByTypeForDate returns the aggregate count for one (date, type)
// pair. It always hits the database so admission decisions see every
// committed write.
func (r *BookingRepo) CountByTypeForDate(ctx context.Context, date time.Time, typ model.BookingType) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings WHERE date=? AND type=?",
		date.Format(dayFormat), string(typ)).Scan(&n)
	return n, err
}

// FindForUser returns the user's bookings with from <= date <= to,
// ordered by date.
func (r *BookingRepo) FindForUser(ctx context.Context, userID uint64, from, to time.Time) ([]model.Booking, error) {
	const q = `SELECT id, user_id, DATE_FORMAT(date,'%Y-%m-%d'), type, created_at, updated_at
	           FROM bookings WHERE user_id=? AND date BETWEEN ? AND ? ORDER BY date`
	rows, err := r.db.QueryContext(ctx, q, userID, from.Format(dayFormat), to.Format(dayFormat))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Booking
	for rows.Next() {
		var (
			b   model.Booking
			day string
			typ string
		)
		if err := rows.Scan(&b.ID, &b.UserID, &day, &typ, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		d, err := time.ParseInLocation(dayFormat, day, policy.Zone)
		if err != nil {
			return nil, err
		}
		b.Date = d
		b.Type = model.BookingType(typ)
		out = append(out, b)
	}
	return out, rows.Err()
}

// AggregatesForRange returns per-date booking counts grouped by type
// for from <= date <= to, keyed by "2006-01-02" day strings.
func (r *BookingRepo) AggregatesForRange(ctx context.Context, from, to time.Time) (map[string]model.TypeCounts, error) {
	const q = `SELECT DATE_FORMAT(date,'%Y-%m-%d') AS day, type, COUNT(*)
	           FROM bookings WHERE date BETWEEN ? AND ? GROUP BY day, type`
	rows, err := r.db.QueryContext(ctx, q, from.Format(dayFormat), to.Format(dayFormat))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]model.TypeCounts)
	for rows.Next() {
		var (
			day string
			typ string
			n   int
		)
		if err := rows.Scan(&day, &typ, &n); err != nil {
			return nil, err
		}
		c := out[day]
		switch model.BookingType(typ) {
		case model.TypeDesignated:
			c.Designated = n
		case model.TypeFloating:
			c.Floating = n
		case model.TypeReleased:
			c.Released = n
		}
		out[day] = c
	}
	return out, rows.Err()
}

// DeleteAll wipes the bookings table. Used only by the seeder's bulk
// reset; normal operation never deletes rows.
func (r *BookingRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM bookings")
	return err
}
