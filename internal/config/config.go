package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/colfarl/BeatTheHouse/internal/platform/logging"
)

// Config stores runtime configuration for the ETL process.
type Config struct {
	ServiceName    string
	ServiceVersion string

	DBURL string

	StatsAPIBaseURL        string
	StatsAPITimeout        time.Duration
	StatsAPIMaxRetries     int
	StatsAPIRetryBaseDelay time.Duration

	PacingDelay      time.Duration
	BatchCommitSize  int
	ProgressInterval int
	PeopleBatchSize  int

	LogLevel logging.Level
}

func Load() (Config, error) {
	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required")
	}

	statsTimeout, err := time.ParseDuration(getEnv("STATSAPI_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STATSAPI_TIMEOUT: %w", err)
	}

	maxRetries, err := getEnvAsInt("STATSAPI_MAX_RETRIES", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse STATSAPI_MAX_RETRIES: %w", err)
	}
	if maxRetries <= 0 {
		return Config{}, fmt.Errorf("STATSAPI_MAX_RETRIES must be greater than zero")
	}

	retryBaseDelay, err := time.ParseDuration(getEnv("STATSAPI_RETRY_BASE_DELAY", "1s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STATSAPI_RETRY_BASE_DELAY: %w", err)
	}

	pacingDelay, err := time.ParseDuration(getEnv("ETL_PACING_DELAY", "200ms"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ETL_PACING_DELAY: %w", err)
	}

	batchCommitSize, err := getEnvAsInt("ETL_BATCH_COMMIT_SIZE", 250)
	if err != nil {
		return Config{}, fmt.Errorf("parse ETL_BATCH_COMMIT_SIZE: %w", err)
	}

	progressInterval, err := getEnvAsInt("ETL_PROGRESS_INTERVAL", 200)
	if err != nil {
		return Config{}, fmt.Errorf("parse ETL_PROGRESS_INTERVAL: %w", err)
	}

	peopleBatchSize, err := getEnvAsInt("PEOPLE_BATCH_SIZE", 100)
	if err != nil {
		return Config{}, fmt.Errorf("parse PEOPLE_BATCH_SIZE: %w", err)
	}
	if peopleBatchSize <= 0 || peopleBatchSize > 100 {
		return Config{}, fmt.Errorf("PEOPLE_BATCH_SIZE must be between 1 and 100")
	}

	return Config{
		ServiceName:    getEnv("SERVICE_NAME", "beatthehouse-etl"),
		ServiceVersion: getEnv("SERVICE_VERSION", "dev"),

		DBURL: dbURL,

		StatsAPIBaseURL:        strings.TrimSpace(getEnv("STATSAPI_BASE_URL", "https://statsapi.mlb.com/api")),
		StatsAPITimeout:        statsTimeout,
		StatsAPIMaxRetries:     maxRetries,
		StatsAPIRetryBaseDelay: retryBaseDelay,

		PacingDelay:      pacingDelay,
		BatchCommitSize:  batchCommitSize,
		ProgressInterval: progressInterval,
		PeopleBatchSize:  peopleBatchSize,

		LogLevel: parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	return value, nil
}
