// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"carpool/internal/config"
	"carpool/internal/geocode"
	httptransport "carpool/internal/http"
	"carpool/internal/infra"
	"carpool/internal/logging"
	"carpool/internal/modules/booking"
	"carpool/internal/modules/message"
	"carpool/internal/modules/ride"
	"carpool/internal/modules/user"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger := logging.NewLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer dbPool.Close()
	if err := infra.EnsureSchema(ctx, dbPool); err != nil {
		log.Fatalf("schema init: %v", err)
	}

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	googleGeocoder, err := geocode.NewGoogleGeocoder(cfg.Geocode.APIKey)
	if err != nil {
		log.Fatalf("geocoder init: %v", err)
	}
	geocoder := geocode.NewCachedGeocoder(googleGeocoder, redisClient, cfg.Geocode.CacheTTL, logger)

	userStore := user.NewPostgresStore(dbPool)
	userSvc := user.NewService(userStore, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, logger)

	rideStore := ride.NewPostgresStore(dbPool)
	rideSvc := ride.NewService(rideStore, geocoder, logger)

	bookingStore := booking.NewPostgresStore(dbPool)
	bookingSvc := booking.NewService(bookingStore, rideStore, logger)

	messageStore := message.NewPostgresStore(dbPool)
	messageSvc := message.NewService(messageStore, logger)

	handler := httptransport.NewRouter(httptransport.RouterDeps{
		Users:          userSvc,
		Rides:          rideSvc,
		Bookings:       bookingSvc,
		Messages:       messageSvc,
		Geocoder:       geocoder,
		ScoreThreshold: cfg.Match.ScoreThreshold,
		Logger:         logger,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", "error", err)
		}
	}()

	logger.Info("listening", "addr", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
