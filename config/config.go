package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL string

	// Ledger configuration
	SystemActorID int64 // actor recorded on every system-generated posting

	// Interest trigger configuration, daily fire times in UTC
	FDScheduleHour        int
	FDScheduleMinute      int
	SavingsScheduleHour   int
	SavingsScheduleMinute int

	// Debug mode runs both triggers on a rapid fixed interval
	DebugMode     bool
	DebugInterval time.Duration

	// Environment
	Environment string // "development", "production", or "test"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		// Database
		DatabaseURL: os.Getenv("DATABASE_URL"),

		// Trigger defaults
		FDScheduleHour:        3,
		FDScheduleMinute:      0,
		SavingsScheduleHour:   3,
		SavingsScheduleMinute: 30,

		DebugMode:     os.Getenv("INTEREST_DEBUG_MODE") == "true",
		DebugInterval: 10 * time.Second,

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	if schedule := os.Getenv("FD_SCHEDULE"); schedule != "" {
		hour, minute, err := parseSchedule(schedule)
		if err != nil {
			return nil, fmt.Errorf("FD_SCHEDULE: %w", err)
		}
		config.FDScheduleHour = hour
		config.FDScheduleMinute = minute
	}
	if schedule := os.Getenv("SAVINGS_SCHEDULE"); schedule != "" {
		hour, minute, err := parseSchedule(schedule)
		if err != nil {
			return nil, fmt.Errorf("SAVINGS_SCHEDULE: %w", err)
		}
		config.SavingsScheduleHour = hour
		config.SavingsScheduleMinute = minute
	}

	if interval := os.Getenv("INTEREST_DEBUG_INTERVAL"); interval != "" {
		parsed, err := time.ParseDuration(interval)
		if err != nil {
			return nil, fmt.Errorf("INTEREST_DEBUG_INTERVAL is not a valid duration: %w", err)
		}
		config.DebugInterval = parsed
	}

	if actorID := os.Getenv("SYSTEM_ACTOR_ID"); actorID != "" {
		parsed, err := strconv.ParseInt(actorID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("SYSTEM_ACTOR_ID is not a valid integer: %w", err)
		}
		config.SystemActorID = parsed
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		// No default: every interest posting is attributed to this
		// actor, so it must be set deliberately per deployment.
		if config.SystemActorID == 0 {
			return nil, fmt.Errorf("SYSTEM_ACTOR_ID is required")
		}
	}

	return config, nil
}

// parseSchedule parses a daily UTC fire time in "HH:MM" form
func parseSchedule(value string) (hour, minute int, err error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("schedule %q must be in HH:MM form", value)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("schedule %q has an invalid hour", value)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("schedule %q has an invalid minute", value)
	}
	return hour, minute, nil
}
