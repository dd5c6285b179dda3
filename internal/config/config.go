// Package config loads service configuration from the environment, optionally
// seeded from a .env file.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything cmd/main needs to wire the service.
type Config struct {
	// HTTP server
	Addr string

	// Storage. DATABASE_URL selects postgres; otherwise SQLITE_PATH selects
	// sqlite; otherwise the in-memory store is used.
	DatabaseURL string
	SQLitePath  string

	// AuthToken is the static admin bearer token. Empty means the service
	// runs open (dev mode).
	AuthToken string

	// Kafka event publishing; disabled when Brokers is empty.
	KafkaBrokers []string
	KafkaTopic   string

	// Logging
	LogLevel  string
	LogFormat string

	// DevSeed enables seeding a few sample accounts on the memory backend.
	DevSeed bool
}

// Load reads the environment into a Config. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Addr:         getEnv("ADDR", ":8080"),
		DatabaseURL:  strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SQLitePath:   strings.TrimSpace(os.Getenv("SQLITE_PATH")),
		AuthToken:    strings.TrimSpace(os.Getenv("AUTH_TOKEN")),
		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "ledger_mutations"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "json"),
		DevSeed:      getEnvBool("DEV_SEED"),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes":
		return true
	}
	return false
}

func splitList(v string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
