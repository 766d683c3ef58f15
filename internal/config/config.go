package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/horizon/internal/quality"
)

type AppConfig struct {
	Port     string
	LogLevel slog.Level

	// QualityPath optionally points at a YAML file overriding the default
	// quality parameters.
	QualityPath string
	Quality     quality.Params

	// TargetOffset shifts every sunrise/sunset before it is scored.
	TargetOffset time.Duration

	// EventMargin keeps today's event selected for a while after it passed.
	EventMargin time.Duration

	// NotifyThreshold is the score at which a plan is flagged for notification.
	NotifyThreshold float64

	// UpcomingDays is the number of days scored after today.
	UpcomingDays int

	// In-memory plan history retention.
	StoreMaxHistory int           // max number of plans per location (0 = unlimited)
	StoreMaxAge     time.Duration // max age of plans (0 = unlimited)
	PruneInterval   time.Duration
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded", "error", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")

	level, err := parseLevel(getenvDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	cfg.QualityPath = os.Getenv("QUALITY_CONFIG")
	params, err := LoadQuality(cfg.QualityPath)
	if err != nil {
		return nil, err
	}
	cfg.Quality = params

	if cfg.TargetOffset, err = getenvDuration("TARGET_OFFSET", "0s"); err != nil {
		return nil, err
	}
	if cfg.EventMargin, err = getenvDuration("EVENT_MARGIN", "0s"); err != nil {
		return nil, err
	}

	threshold, err := strconv.ParseFloat(getenvDefault("NOTIFY_THRESHOLD", "0.6"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid NOTIFY_THRESHOLD: %w", err)
	}
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("invalid NOTIFY_THRESHOLD: %v is outside [0, 1]", threshold)
	}
	cfg.NotifyThreshold = threshold

	cfg.UpcomingDays = getenvInt("UPCOMING_DAYS", 7)
	if cfg.UpcomingDays < 0 {
		return nil, fmt.Errorf("invalid UPCOMING_DAYS: %d", cfg.UpcomingDays)
	}

	// Store retention.
	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 96) // roughly 24h at 15-minute refreshes
	if cfg.StoreMaxAge, err = getenvDuration("STORE_MAX_AGE", "24h"); err != nil {
		return nil, err
	}
	if cfg.PruneInterval, err = getenvDuration("PRUNE_INTERVAL", "15m"); err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	return level, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
