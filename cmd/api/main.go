package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/venue_booking/internal/adapter/handler"
	"github.com/srgjo27/venue_booking/internal/adapter/payment"
	"github.com/srgjo27/venue_booking/internal/adapter/queue/rabbitmq"
	"github.com/srgjo27/venue_booking/internal/adapter/repository/memory"
	"github.com/srgjo27/venue_booking/internal/adapter/repository/postgres"
	"github.com/srgjo27/venue_booking/internal/core/ports"
	"github.com/srgjo27/venue_booking/internal/core/services"
	"github.com/srgjo27/venue_booking/internal/platform/clock"
	"github.com/srgjo27/venue_booking/internal/platform/config"
	"github.com/srgjo27/venue_booking/internal/platform/database"
)

func main() {
	cfg := config.Load()
	clk := clock.NewSystem()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var bookingRepo ports.BookingRepository
	var partyRepo ports.PartyRepository

	switch cfg.Storage {
	case config.StoragePostgres:
		db, err := database.NewPostgresDB(ctx, database.Config{
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			DBName:   cfg.DBName,
		})
		if err != nil {
			log.Fatalf("Failed to connect to db after retries: %v", err)
		}

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
		defer db.Close()

		if err := postgres.EnsureSchema(ctx, db); err != nil {
			log.Fatalf("Failed to prepare schema: %v", err)
		}

		parties := postgres.NewPartyRepository(db, clk)
		partyRepo = parties
		bookingRepo = postgres.NewBookingRepository(db, parties, clk)
	default:
		log.Println("Using in-memory storage.")
		partyRepo = memory.NewPartyRepository()
		bookingRepo = memory.NewBookingRepository(clk)
	}

	var redisClient *redis.Client
	if cfg.RedisHost != "" {
		log.Printf("Connecting to Redis at %s:%s...", cfg.RedisHost, cfg.RedisPort)

		redisClient = redis.NewClient(&redis.Options{
			Addr: fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
			DB:   0,
		})

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("Redis unavailable, booking cache disabled: %v", err)
			_ = redisClient.Close()
			redisClient = nil
		} else {
			log.Println("Redis connected successfully!")
			defer redisClient.Close()
		}
	}

	var events ports.EventPublisher = rabbitmq.LogPublisher{}
	if cfg.RabbitMQURL != "" {
		publisher, err := rabbitmq.Dial(cfg.RabbitMQURL)
		if err != nil {
			log.Printf("RabbitMQ unavailable, logging events instead: %v", err)
		} else {
			defer publisher.Close()
			events = publisher
		}
	}

	bookingService := services.NewBookingService(
		bookingRepo,
		partyRepo,
		payment.NewLedgerGateway(clk),
		events,
		redisClient,
		clk,
	)

	go bookingService.RunBackgroundCleanup(ctx, cfg.CleanupInterval, cfg.CancelledRetention)

	router := handler.NewRouter(handler.NewBookingHandler(bookingService), handler.RouterConfig{
		RateRPS:   cfg.RateRPS,
		RateBurst: cfg.RateBurst,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Server startup failed: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	log.Println("Server exiting")
}
