package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, Zone)
}

func TestWindowOpen(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		open bool
	}{
		{"morning", at(2026, time.January, 6, 9, 0), false},
		{"just before gate", at(2026, time.January, 6, 14, 59), false},
		{"at the gate", at(2026, time.January, 6, 15, 0), true},
		{"evening", at(2026, time.January, 6, 21, 30), true},
		{"last minute of day", at(2026, time.January, 6, 23, 59), true},
		{"midnight closes it again", at(2026, time.January, 7, 0, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.open, WindowOpen(tt.now))
		})
	}
}

func TestWindowOpenUsesCanonicalZone(t *testing.T) {
	// 10:00 UTC is 15:30 in UTC+5:30 — open regardless of the
	// instant's own location.
	utc := time.Date(2026, time.January, 6, 10, 0, 0, 0, time.UTC)
	assert.True(t, WindowOpen(utc))

	// 09:00 UTC is 14:30 local — still shut.
	assert.False(t, WindowOpen(utc.Add(-time.Hour)))
}

func TestWorkday(t *testing.T) {
	monday := at(2026, time.January, 5, 0, 0)
	for i := 0; i < 5; i++ {
		assert.True(t, Workday(monday.AddDate(0, 0, i)), "weekday %d", i)
	}
	assert.False(t, Workday(monday.AddDate(0, 0, 5)), "saturday")
	assert.False(t, Workday(monday.AddDate(0, 0, 6)), "sunday")
}

func TestDesignatedDay(t *testing.T) {
	monday := at(2026, time.January, 5, 0, 0)
	b1Days := []bool{true, true, true, false, false, false, false}
	b2Days := []bool{false, false, false, true, true, false, false}
	for i := 0; i < 7; i++ {
		d := monday.AddDate(0, 0, i)
		assert.Equal(t, b1Days[i], DesignatedDay("B1", d), "B1 on %s", d.Weekday())
		assert.Equal(t, b2Days[i], DesignatedDay("B2", d), "B2 on %s", d.Weekday())
		assert.False(t, DesignatedDay("B3", d), "unknown batch on %s", d.Weekday())
		assert.False(t, DesignatedDay("", d))
	}
}

func TestMidnight(t *testing.T) {
	evening := at(2026, time.January, 6, 22, 45)
	got := Midnight(evening)
	assert.Equal(t, at(2026, time.January, 6, 0, 0), got)

	// An instant in another zone truncates to its IST calendar day:
	// 21:00 UTC on the 6th is already 02:30 on the 7th in IST.
	utc := time.Date(2026, time.January, 6, 21, 0, 0, 0, time.UTC)
	assert.Equal(t, at(2026, time.January, 7, 0, 0), Midnight(utc))
}

func TestAdvanceDays(t *testing.T) {
	today := Midnight(at(2026, time.January, 6, 16, 0))
	assert.Equal(t, 0, AdvanceDays(today, today))
	assert.Equal(t, 1, AdvanceDays(today, today.AddDate(0, 0, 1)))
	assert.Equal(t, 3, AdvanceDays(today, today.AddDate(0, 0, 3)))
	assert.Equal(t, -1, AdvanceDays(today, today.AddDate(0, 0, -1)))
}
