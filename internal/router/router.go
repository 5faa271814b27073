// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/wissenhq/seatpool/internal/config"
	"github.com/wissenhq/seatpool/internal/handler"
	"github.com/wissenhq/seatpool/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes. Unauthenticated
// operations live under /v1/auth; the identity echo sits behind the JWT
// middleware under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterBooking registers the booking write operations and the
// schedule projection, all behind JWT auth. The write endpoints get the
// Redis token bucket; the schedule additionally gets the per-user
// response cache. A nil Redis client disables both transparently.
func RegisterBooking(e *echo.Echo, b *handler.BookingHandler, jwtSecret string, rdb *redis.Client) {
	rl := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	g := e.Group("/v1/bookings")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(rl)
	g.POST("/book", b.Book)
	g.POST("/release", b.Release)

	s := e.Group("/v1/schedule")
	s.Use(middleware.JWTAuth(jwtSecret))
	s.Use(rl)
	s.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	s.GET("", b.GetSchedule)
}
