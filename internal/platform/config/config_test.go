package config

import (
	"testing"
	"time"
)

func TestLoadWeekStart(t *testing.T) {
	t.Setenv("WEEK_START", "Sunday")
	cfg := Load()
	if cfg.WeekStartDay != time.Sunday {
		t.Fatalf("expected Sunday, got %v", cfg.WeekStartDay)
	}

	t.Setenv("WEEK_START", "not-a-day")
	cfg = Load()
	if cfg.WeekStartDay != time.Monday {
		t.Fatalf("expected fallback Monday, got %v", cfg.WeekStartDay)
	}
}

func TestValidateBaselines(t *testing.T) {
	base := Config{
		DatabaseURL:           "postgres://localhost/test",
		MaxBodyBytes:          1048576,
		StandardDailyMinutes:  480,
		StandardWeeklyMinutes: 2400,
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	bad := base
	bad.StandardDailyMinutes = 2000
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for daily baseline above a day")
	}

	bad = base
	bad.StandardWeeklyMinutes = 0
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for zero weekly baseline")
	}

	bad = base
	bad.DatabaseURL = ""
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for missing database url")
	}
}
