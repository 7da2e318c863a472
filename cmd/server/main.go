package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/courtbook/court-reservation/internal/booking"    // Booking admission engine
	"github.com/courtbook/court-reservation/internal/config"     // Internal config loader
	"github.com/courtbook/court-reservation/internal/database"   // MySQL connection helper
	"github.com/courtbook/court-reservation/internal/handler"    // HTTP handlers
	"github.com/courtbook/court-reservation/internal/middleware" // Rate limit middleware
	"github.com/courtbook/court-reservation/internal/queue"      // Booking event consumer
	"github.com/courtbook/court-reservation/internal/repository" // Data access layer
	"github.com/courtbook/court-reservation/internal/router"     // Route registration
)

func main() {
	_ = godotenv.Load() // Load .env if present; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	courts := repository.NewCourtRepo(db)
	bookings := repository.NewBookingRepo(db)
	engine := booking.New(courts, bookings, cfg.ServiceFeeRate)

	e := echo.New()
	router.RegisterRoutes(e)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, rate limiting disabled")
	}
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	router.RegisterBookings(e, handler.NewBookingHandler(engine, courts), cfg.JWTSecret, limiter)

	// Consume booking events in the background; the consumer reconnects
	// on its own and never stops the server.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
