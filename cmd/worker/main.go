package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dkurbatov/venuebooking/config"
	"github.com/dkurbatov/venuebooking/internal/cache"
	"github.com/dkurbatov/venuebooking/internal/email"
	"github.com/dkurbatov/venuebooking/internal/kafka"
	"github.com/dkurbatov/venuebooking/internal/repository"
	"github.com/dkurbatov/venuebooking/internal/service/booking"
	"github.com/jackc/pgx/v5/pgxpool"
	kafkaGo "github.com/segmentio/kafka-go"
)

const defaultPurgeSweepMinutes = 60

// purgeInterval falls back to the default cadence when the config leaves
// the sweep interval unset or non-positive.
func purgeInterval(minutes int) time.Duration {
	if minutes <= 0 {
		log.Printf("worker.purge_sweep_minutes not set, sweeping every %d minutes", defaultPurgeSweepMinutes)
		minutes = defaultPurgeSweepMinutes
	}
	return time.Duration(minutes) * time.Minute
}

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

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	var sender email.Sender
	if cfg.Email.ResendAPIKey != "" {
		sender = email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.From)
	} else {
		log.Println("no resend api key configured, logging notifications instead")
		sender = email.NewLogSender()
	}

	go func() {
		if err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
			var event kafka.BookingEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				log.Printf("decode event error: %v", err)
				return nil
			}
			if event.Email == "" {
				return nil
			}
			return sender.Send(ctx, event)
		}); err != nil {
			log.Printf("consumer stopped: %v", err)
		}
	}()

	purgeTicker := time.NewTicker(purgeInterval(cfg.Worker.PurgeSweepMinutes))
	defer purgeTicker.Stop()

	for {
		select {
		case <-purgeTicker.C:
			purged, err := bookingService.PurgeExpired(ctx)
			if err != nil {
				log.Printf("purge bookings error: %v", err)
				continue
			}
			if len(purged) > 0 {
				log.Printf("purged %d stale unverified bookings", len(purged))
			}
		case <-ctx.Done():
			log.Println("shutting down worker")
			return
		}
	}
}
