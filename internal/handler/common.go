package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/wissenhq/seatpool/internal/model"
)

// currentUser reconstructs the caller's identity from the claims the
// JWT middleware stored in context. Only the fields the booking rules
// need are populated; anything else stays zero.
func currentUser(c echo.Context) (model.User, error) {
	id, err := getUserID(c)
	if err != nil {
		return model.User{}, err
	}
	u := model.User{ID: id}
	if v, ok := c.Get("name").(string); ok {
		u.Name = v
	}
	if v, ok := c.Get("batch").(string); ok {
		u.Batch = v
	}
	return u, nil
}

// getUserID extracts the user_id from echo.Context and converts it to
// uint64. JWT numeric claims decode as float64; other representations
// are handled for robustness.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}
