package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dkurbatov/venuebooking/api"
	"github.com/dkurbatov/venuebooking/config"
	"github.com/dkurbatov/venuebooking/internal/bootstrap"
	"github.com/dkurbatov/venuebooking/internal/cache"
	"github.com/dkurbatov/venuebooking/internal/kafka"
	"github.com/dkurbatov/venuebooking/internal/repository"
	"github.com/dkurbatov/venuebooking/internal/service/auth"
	"github.com/dkurbatov/venuebooking/internal/service/booking"
	"github.com/dkurbatov/venuebooking/internal/service/reviews"
	"github.com/dkurbatov/venuebooking/internal/service/venues"
	"github.com/dkurbatov/venuebooking/internal/service/wishlist"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.VenuesCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	userRepo := repository.NewUserRepository(pool)
	venueRepo := repository.NewVenueRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)
	wishlistRepo := repository.NewWishlistRepository(pool)

	authService := auth.NewAuthService(userRepo, redisCache, cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)
	venueService := venues.NewVenueService(venueRepo, redisCache)
	bookingService := booking.NewBookingService(
		bookingRepo,
		venueRepo,
		userRepo,
		redisCache,
		producer,
		cfg.Kafka.BookingEventsTopic,
		time.Duration(cfg.Booking.SlotLockTTLSeconds)*time.Second,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)
	reviewService := reviews.NewReviewService(reviewRepo, venueRepo)
	wishlistService := wishlist.NewWishlistService(wishlistRepo, venueRepo)

	authMW := api.NewAuthMiddleware(authService)
	handlers := bootstrap.Handlers{
		Auth:     api.NewAuthHandler(authService),
		Venues:   api.NewVenueHandler(venueService),
		Bookings: api.NewBookingHandler(bookingService),
		Reviews:  api.NewReviewHandler(reviewService),
		Wishlist: api.NewWishlistHandler(wishlistService),
		Admin:    api.NewAdminHandler(venueService, bookingService),
		AuthMW:   authMW,
	}

	if err := bootstrap.Run(ctx, cfg, handlers); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
