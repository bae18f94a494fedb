package main // Entry point package

import (
    "context" // Context for the startup migration
    "log"     // Logging library
    "time"    // Timeouts

    "github.com/joho/godotenv"    // Load .env files into the environment
    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/wildriver/resort-booking/internal/config"     // Internal config loader
    "github.com/wildriver/resort-booking/internal/database"   // MySQL pool and schema migration
    "github.com/wildriver/resort-booking/internal/handler"    // HTTP handlers
    "github.com/wildriver/resort-booking/internal/middleware" // Rate limiting and caching
    "github.com/wildriver/resort-booking/internal/queue"      // Booking event consumer
    "github.com/wildriver/resort-booking/internal/repository" // Data access layer
    "github.com/wildriver/resort-booking/internal/router"     // Route registration
)

func main() {
	// Load .env when present; in production the environment is set by the
	// deployment, so a missing file is not an error.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	// Open the MySQL pool and make sure the schema exists before serving.
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("migrate: %v", err)
	}
	cancel()

	// Redis is optional: when unreachable the rate limiter and response
	// cache degrade to pass-through.
	rdb := config.NewRedisClient()

	// Repositories share the single pool.
	rooms := repository.NewRoomRepo(db)
	bookings := repository.NewBookingRepo(db)
	users := repository.NewUserRepo(db)
	contacts := repository.NewContactRepo(db)

	// Handlers.
	authH := handler.NewAuthHandler(cfg, users)
	roomH := handler.NewRoomHandler(rooms, bookings)
	bookingH := handler.NewBookingHandler(cfg, rooms, bookings)
	adminH := handler.NewAdminHandler(rooms, bookings, users)
	contactH := handler.NewContactHandler(contacts)

	// Shared middleware built once and handed to the routers.
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	e := echo.New() // Create Echo instance
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, roomH, bookingH, contactH, cache, limiter)
	router.RegisterBookings(e, bookingH, cfg.JWTSecret, limiter)
	router.RegisterAdmin(e, adminH, contactH, cfg.JWTSecret)

	// Consume booking events in the background.  The consumer reconnects on
	// its own; a missing broker only disables the audit log.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("queue consumer: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
