package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/wissenhq/seatpool/internal/config"
	"github.com/wissenhq/seatpool/internal/database"
	"github.com/wissenhq/seatpool/internal/engine"
	"github.com/wissenhq/seatpool/internal/handler"
	"github.com/wissenhq/seatpool/internal/policy"
	"github.com/wissenhq/seatpool/internal/queue"
	"github.com/wissenhq/seatpool/internal/repository"
	"github.com/wissenhq/seatpool/internal/router"
	"github.com/wissenhq/seatpool/internal/schedule"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("migrate: %v", err)
	}
	cancel()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Print("redis unavailable; rate limiting and schedule cache disabled")
	}

	clock := policy.SystemClock{}
	bookings := repository.NewBookingRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	eng := engine.New(bookings, clock, cfg.FloatingBase)
	sched := schedule.NewBuilder(bookings, clock)

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
	router.RegisterBooking(e, handler.NewBookingHandler(eng, sched, clock), cfg.JWTSecret, rdb)

	// Background consumer mirrors committed bookings into the audit log.
	go func() {
		if err := queue.StartSeatEventConsumer(); err != nil {
			log.Printf("seat event consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
