package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr                  string
	DatabaseURL           string
	JWTSecret             string
	Environment           string
	SeedAdminEmail        string
	SeedAdminPassword     string
	RunMigrations         bool
	RunSeed               bool
	MaxBodyBytes          int64
	MetricsEnabled        bool
	StandardDailyMinutes  int
	StandardWeeklyMinutes int
	WeekStartDay          time.Weekday
	TimesheetDir          string
}

func Load() Config {
	return Config{
		Addr:                  getEnv("APP_ADDR", ":8080"),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		JWTSecret:             getEnv("JWT_SECRET", ""),
		Environment:           getEnv("APP_ENV", "development"),
		SeedAdminEmail:        getEnv("SEED_ADMIN_EMAIL", ""),
		SeedAdminPassword:     getEnv("SEED_ADMIN_PASSWORD", ""),
		RunMigrations:         getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:               getEnvBool("RUN_SEED", true),
		MaxBodyBytes:          int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		MetricsEnabled:        getEnvBool("METRICS_ENABLED", true),
		StandardDailyMinutes:  getEnvInt("STANDARD_DAILY_MINUTES", 480),
		StandardWeeklyMinutes: getEnvInt("STANDARD_WEEKLY_MINUTES", 2400),
		WeekStartDay:          getEnvWeekday("WEEK_START", time.Monday),
		TimesheetDir:          getEnv("TIMESHEET_DIR", "storage/timesheets"),
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

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func getEnvWeekday(key string, fallback time.Weekday) time.Weekday {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return fallback
	}
	if day, ok := weekdays[value]; ok {
		return day
	}
	return fallback
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Environment == "production" {
		if strings.TrimSpace(c.JWTSecret) == "" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if c.RunSeed && strings.TrimSpace(c.SeedAdminPassword) == "" {
			return fmt.Errorf("SEED_ADMIN_PASSWORD must be changed or RUN_SEED disabled in production")
		}
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.StandardDailyMinutes <= 0 || c.StandardDailyMinutes > 1440 {
		return fmt.Errorf("STANDARD_DAILY_MINUTES must be between 1 and 1440")
	}
	if c.StandardWeeklyMinutes <= 0 || c.StandardWeeklyMinutes > 7*1440 {
		return fmt.Errorf("STANDARD_WEEKLY_MINUTES must be between 1 and 10080")
	}
	return nil
}
