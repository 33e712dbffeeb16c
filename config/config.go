package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port         string
	DatabaseURL  string
	JWTSecret    string
	EstimatorURL string // optional; empty disables meal estimation
	LogFile      string // optional; empty logs to stdout only
	SeedDemo     bool
}

// Load reads .env if present, then the environment. Missing .env is
// fine in production where variables come from the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:         getenv("PORT", "8080"),
		DatabaseURL:  buildDSN(),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		EstimatorURL: os.Getenv("ESTIMATOR_URL"),
		LogFile:      os.Getenv("LOG_FILE"),
		SeedDemo:     os.Getenv("SEED_DEMO") == "true",
	}
}

func buildDSN() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}
	return "host=" + getenv("DB_HOST", "localhost") +
		" user=" + getenv("DB_USER", "postgres") +
		" password=" + os.Getenv("DB_PASSWORD") +
		" dbname=" + getenv("DB_NAME", "daylog") +
		" port=" + getenv("DB_PORT", "5432") +
		" sslmode=disable"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
