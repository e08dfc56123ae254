package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Harshit1991/gymbooking/config"
	"github.com/Harshit1991/gymbooking/internal/bootstrap"
	"github.com/Harshit1991/gymbooking/internal/cache"
	"github.com/Harshit1991/gymbooking/internal/gateway"
	"github.com/Harshit1991/gymbooking/internal/kafka"
	"github.com/Harshit1991/gymbooking/internal/repository"
	"github.com/Harshit1991/gymbooking/internal/service/auth"
	"github.com/Harshit1991/gymbooking/internal/service/booking"
	"github.com/Harshit1991/gymbooking/internal/service/contact"
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

	sessions := cache.NewRedisSessionStore(cfg.Redis, time.Duration(cfg.Session.TTLMinutes)*time.Minute)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	gatewayClient := gateway.NewFromConfig(cfg.Razorpay)

	bookingRepo := repository.NewBookingRepository(pool)
	contactRepo := repository.NewContactRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	bookingService := booking.NewBookingService(
		bookingRepo,
		gatewayClient,
		producer,
		cfg.Kafka.BookingTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)
	contactService := contact.NewContactService(contactRepo, producer, cfg.Kafka.NotificationsTopic)
	authService := auth.NewAuthService(userRepo, sessions)

	deps := bootstrap.Deps{
		Bookings: bookingService,
		Contacts: contactService,
		Auth:     authService,
		DB:       pool,
		Sessions: sessions,
	}

	if err := bootstrap.Run(ctx, cfg, deps); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
