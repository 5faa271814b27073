package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wissenhq/seatpool/internal/engine"
	"github.com/wissenhq/seatpool/internal/model"
	"github.com/wissenhq/seatpool/internal/policy"
	"github.com/wissenhq/seatpool/internal/queue"
	"github.com/wissenhq/seatpool/internal/schedule"
	queue_publisher "github.com/wissenhq/seatpool/internal/service"
)

// BookingHandler exposes the two write operations and the schedule
// projection. JWT middleware has already validated the caller; the
// handler trusts the user_id/name/batch claims it injected.
type BookingHandler struct {
	Engine   *engine.Engine
	Schedule *schedule.Builder
	Clock    policy.Clock

	// publish is swappable for tests; defaults to the RabbitMQ publisher.
	publish func(ctx context.Context, ev queue.SeatEvent) error
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(eng *engine.Engine, sched *schedule.Builder, clock policy.Clock) *BookingHandler {
	if eng == nil || sched == nil || clock == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{
		Engine:   eng,
		Schedule: sched,
		Clock:    clock,
		publish:  queue_publisher.PublishSeatEvent,
	}
}

type bookReq struct {
	Date string `json:"date"`
}

// Book handles POST /v1/bookings/book. On success it responds with the
// committed booking type; every rules violation maps to a 400 with the
// engine's reason string.
func (h *BookingHandler) Book(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	date, ok := bindDate(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date is required (YYYY-MM-DD)"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	typ, err := h.Engine.Book(ctx, user, date)
	if err != nil {
		if reason, ok := ruleViolation(err); ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": reason})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
	}

	h.emit(ctx, user, date, queue.ActionBooked, typ)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "type": typ})
}

// Release handles POST /v1/bookings/release: gives the caller's
// designated seat on the given day back to the floating pool.
func (h *BookingHandler) Release(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	date, ok := bindDate(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date is required (YYYY-MM-DD)"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Engine.Release(ctx, user, date); err != nil {
		if reason, ok := ruleViolation(err); ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": reason})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "release failed"})
	}

	h.emit(ctx, user, date, queue.ActionReleased, model.TypeReleased)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// GetSchedule handles GET /v1/schedule: the caller's two-workweek view.
func (h *BookingHandler) GetSchedule(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	view, err := h.Schedule.Build(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load schedule failed"})
	}
	return c.JSON(http.StatusOK, view)
}

// emit publishes the seat event best effort. Publish failures are
// already logged by the publisher and never fail the request.
func (h *BookingHandler) emit(ctx context.Context, user model.User, date time.Time, action string, typ model.BookingType) {
	_ = h.publish(ctx, queue.SeatEvent{
		Action:   action,
		UserID:   user.ID,
		UserName: user.Name,
		Batch:    user.Batch,
		Date:     engine.DayKey(policy.Midnight(date)),
		Type:     string(typ),
		At:       h.Clock.Now().In(policy.Zone).Format(time.RFC3339),
	})
}

// bindDate reads the {date} body field and parses it as a calendar day
// in the canonical zone. Both bare dates and RFC3339 instants are
// accepted; the time of day is discarded either way.
func bindDate(c echo.Context) (time.Time, bool) {
	var req bookReq
	if err := c.Bind(&req); err != nil || req.Date == "" {
		return time.Time{}, false
	}
	if d, err := time.ParseInLocation("2006-01-02", req.Date, policy.Zone); err == nil {
		return d, true
	}
	if t, err := time.Parse(time.RFC3339, req.Date); err == nil {
		return policy.Midnight(t), true
	}
	return time.Time{}, false
}

// ruleViolation maps the engine's sentinel errors to their user-facing
// reason. Anything else is an internal failure.
func ruleViolation(err error) (string, bool) {
	for _, sentinel := range []error{
		engine.ErrWindowClosed,
		engine.ErrNotWorkday,
		engine.ErrPastDate,
		engine.ErrAdvanceWindow,
		engine.ErrNoFloatingSeats,
		engine.ErrNotDesignated,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error(), true
		}
	}
	return "", false
}
