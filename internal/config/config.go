// internal/config/config.go
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"bankist-ledger/internal/util"
	"bankist-ledger/pkg/db" // Import db package for its Config struct
)

// Seed sources.
const (
	SeedStatic   = "static"
	SeedPostgres = "postgres"
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort   string
	LogLevel     string
	SeedSource   string
	DB           db.Config // Only used when SeedSource is postgres
	KafkaBrokers []string  // Empty disables Kafka; events are logged instead
	KafkaTopic   string
}

// LoadConfig loads configuration from environment variables, after merging a .env file if present.
// It returns an AppConfig instance or an error if any variable is invalid.
func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		// Not fatal: production relies on real environment variables.
		slog.Debug("No .env file loaded", "error", err)
	}

	serverPort := getEnv("SERVER_PORT", "8080")
	if _, err := strconv.Atoi(serverPort); err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	logLevel := getEnv("LOG_LEVEL", "info")
	if _, err := util.ParseLevel(logLevel); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	seedSource := strings.ToLower(getEnv("SEED_SOURCE", SeedStatic))
	if seedSource != SeedStatic && seedSource != SeedPostgres {
		return nil, fmt.Errorf("invalid SEED_SOURCE %q: want %q or %q", seedSource, SeedStatic, SeedPostgres)
	}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	return &AppConfig{
		ServerPort: serverPort,
		LogLevel:   logLevel,
		SeedSource: seedSource,
		DB: db.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "user"),
			Password: getEnv("DB_PASSWORD", "password"),
			DBName:   getEnv("DB_NAME", "bankist"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "ledger_events"),
	}, nil
}

// getEnv returns the variable's value, or fallback when it is unset or empty.
func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
