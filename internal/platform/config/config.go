// Package config loads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	Port    string
	Storage string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisHost string
	RedisPort string

	RabbitMQURL string

	RateRPS   float64
	RateBurst int

	CleanupInterval    time.Duration
	CancelledRetention time.Duration
}

// Load reads the given .env files (missing files are ignored) and then the
// process environment. Variables already set in the environment win.
func Load(files ...string) Config {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			log.Printf("%s not found, using OS environment variables.", f)
		}
	}

	return Config{
		Port:               getenv("APP_PORT", "8080"),
		Storage:            getenv("STORAGE", StorageMemory),
		DBHost:             getenv("DB_HOST", "localhost"),
		DBPort:             getenv("DB_PORT", "5432"),
		DBUser:             getenv("DB_USER", "postgres"),
		DBPassword:         os.Getenv("DB_PASSWORD"),
		DBName:             getenv("DB_NAME", "venue_booking"),
		RedisHost:          os.Getenv("REDIS_HOST"),
		RedisPort:          getenv("REDIS_PORT", "6379"),
		RabbitMQURL:        os.Getenv("RABBITMQ_URL"),
		RateRPS:            getenvFloat("RATE_RPS", 50),
		RateBurst:          getenvInt("RATE_BURST", 100),
		CleanupInterval:    getenvDuration("CLEANUP_INTERVAL", time.Minute),
		CancelledRetention: getenvDuration("CANCELLED_RETENTION", 30*24*time.Hour),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid int for %s: %q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getenvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("invalid number for %s: %q, using %g", key, v, fallback)
		return fallback
	}
	return f
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid duration for %s: %q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
