package main // Entry point package

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/flintic/eats-reservation/internal/config"
	"github.com/flintic/eats-reservation/internal/database"
	"github.com/flintic/eats-reservation/internal/handler"
	"github.com/flintic/eats-reservation/internal/middleware"
	"github.com/flintic/eats-reservation/internal/notifier"
	"github.com/flintic/eats-reservation/internal/queue"
	"github.com/flintic/eats-reservation/internal/repository"
	"github.com/flintic/eats-reservation/internal/router"
	"github.com/flintic/eats-reservation/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment

	cfg := config.Load()
	log := zerolog.New(os.Stderr).With().Timestamp().Str("service", "eats-reservation").Logger()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("database connect failed")
	}
	defer db.Close()

	// Redis is optional: a nil client disables rate limiting and caching.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unavailable, rate limiting and caching disabled")
	}

	reservations := repository.NewReservationRepo(db)
	contacts := repository.NewContactRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	mailer := notifier.NewMailer(cfg.SMTP, log)
	bookingNotifier := service.NewBookingNotifier(mailer, log)

	// Confirmation emails flow through the reservation.booked queue; the
	// consumer reconnects on its own if the broker restarts.
	go func() {
		if err := queue.StartReservationConsumer(mailer, log); err != nil {
			log.Error().Err(err).Msg("reservation consumer stopped")
		}
	}()

	e := echo.New()
	e.HideBanner = true

	ratelimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterPublic(e,
		handler.NewAvailabilityHandler(reservations, cfg.SlotCapacity),
		handler.NewReservationHandler(reservations, bookingNotifier, cfg.SlotCapacity),
		handler.NewContactHandler(contacts),
		ratelimit, cache)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
	router.RegisterAdmin(e, handler.NewAdminReservationHandler(reservations), cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Int("slot_capacity", cfg.SlotCapacity).Msg("listening")

	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
