// Command seed resets the database and provisions the demo accounts:
// 40 users per batch with emails b1@wissenNN / b2@wissenNN and a shared
// password. It wipes bookings and users first, so it must never run
// against a live environment.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/wissenhq/seatpool/internal/config"
	"github.com/wissenhq/seatpool/internal/database"
	"github.com/wissenhq/seatpool/internal/repository"
)

const (
	usersPerBatch = 40
	seedPassword  = "12345678"
)

var firstNames = []string{
	"Rahul", "John", "Priya", "Sarah", "Amit", "Emma", "Vikram", "Michael",
	"Sneha", "David", "Anjali", "James", "Rohan", "Emily", "Kavya", "William",
	"Arjun", "Olivia", "Neha", "Daniel",
}

var lastNames = []string{
	"Sharma", "Doe", "Patel", "Smith", "Singh", "Johnson", "Kumar", "Brown",
	"Verma", "Davis", "Gupta", "Miller", "Reddy", "Wilson", "Iyer", "Moore",
	"Das", "Taylor", "Nair", "Anderson",
}

func randomName(rng *rand.Rand) string {
	return firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))]
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	bookings := repository.NewBookingRepo(db)
	users := repository.NewUserRepo(db)

	log.Print("clearing old data...")
	if err := bookings.DeleteAll(ctx); err != nil {
		log.Fatalf("clear bookings: %v", err)
	}
	if err := users.DeleteAll(ctx); err != nil {
		log.Fatalf("clear users: %v", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	total := 0
	for _, batch := range []string{"B1", "B2"} {
		log.Printf("generating %s users...", batch)
		for i := 1; i <= usersPerBatch; i++ {
			email := fmt.Sprintf("%s@wissen%02d", strings.ToLower(batch), i)
			if _, err := users.Create(ctx, email, randomName(rng), seedPassword, batch, cfg.BcryptCost); err != nil {
				log.Fatalf("create %s: %v", email, err)
			}
			total++
		}
	}

	log.Printf("seeded %d users successfully", total)
}
