package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                string
	DatabaseURL         string
	JWTSecret           string
	TokenTTL            time.Duration
	Environment         string
	SeedRecruiterEmail  string
	SeedRecruiterPass   string
	SeedAdminEmail      string
	SeedAdminPass       string
	SeedSampleData      bool
	RunMigrations       bool
	RunSeed             bool
	MigrationsDir       string
	ExportDir           string
	MaxBodyBytes        int64
	RateLimitPerMinute  int
	DateToleranceDays   int
	TenureToleranceMths int
	MetricsEnabled      bool
}

func Load() Config {
	// Missing .env is fine; plain environment variables still apply.
	_ = godotenv.Load()

	return Config{
		Addr:                getEnv("APP_ADDR", ":8080"),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		TokenTTL:            getEnvDuration("TOKEN_TTL", 12*time.Hour),
		Environment:         getEnv("APP_ENV", "development"),
		SeedRecruiterEmail:  getEnv("SEED_RECRUITER_EMAIL", "recruiter@example.com"),
		SeedRecruiterPass:   getEnv("SEED_RECRUITER_PASSWORD", ""),
		SeedAdminEmail:      getEnv("SEED_ADMIN_EMAIL", "admin@example.com"),
		SeedAdminPass:       getEnv("SEED_ADMIN_PASSWORD", ""),
		SeedSampleData:      getEnvBool("SEED_SAMPLE_DATA", true),
		RunMigrations:       getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:             getEnvBool("RUN_SEED", true),
		MigrationsDir:       getEnv("MIGRATIONS_DIR", "migrations"),
		ExportDir:           getEnv("EXPORT_DIR", "storage/exports"),
		MaxBodyBytes:        int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		RateLimitPerMinute:  getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		DateToleranceDays:   getEnvInt("DATE_TOLERANCE_DAYS", 30),
		TenureToleranceMths: getEnvInt("TENURE_TOLERANCE_MONTHS", 1),
		MetricsEnabled:      getEnvBool("METRICS_ENABLED", true),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Environment == "production" {
		if strings.TrimSpace(c.JWTSecret) == "" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if c.RunSeed && strings.TrimSpace(c.SeedAdminPass) == "" {
			return fmt.Errorf("SEED_ADMIN_PASSWORD must be set or RUN_SEED disabled in production")
		}
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.DateToleranceDays < 0 {
		return fmt.Errorf("DATE_TOLERANCE_DAYS must not be negative")
	}
	return nil
}
