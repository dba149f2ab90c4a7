package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/geomag-data-etl/internal/domain"
	"github.com/couchcryptid/geomag-data-etl/internal/iaga2002"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	URLTemplate string
	Observatory string
	Channels    []string
	DataType    domain.DataType
	Interval    domain.Interval

	FetchConcurrency int
	FetchRateLimit   float64 // HTTP requests per second
	FetchTimeout     time.Duration

	SyncInterval time.Duration
	SyncLookback time.Duration

	KafkaBrokers   []string
	KafkaSinkTopic string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults
// where unset. Vocabulary values and the URL template are validated here so
// a bad deployment fails at startup, before any fetch is attempted.
func Load() (*Config, error) {
	cfg := &Config{
		URLTemplate: os.Getenv("URL_TEMPLATE"),
		Observatory: os.Getenv("OBSERVATORY"),
		Channels:    splitList(envOrDefault("CHANNELS", "H,D,Z,F")),
		DataType:    domain.DataType(envOrDefault("DATA_TYPE", "variation")),
		Interval:    domain.Interval(envOrDefault("INTERVAL", "minute")),

		KafkaBrokers:   splitList(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSinkTopic: envOrDefault("KAFKA_SINK_TOPIC", "geomag-observations"),

		HTTPAddr:  envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:  envOrDefault("LOG_LEVEL", "info"),
		LogFormat: envOrDefault("LOG_FORMAT", "json"),
	}

	var err error
	if cfg.FetchConcurrency, err = parsePositiveInt("FETCH_CONCURRENCY", 4); err != nil {
		return nil, err
	}
	if cfg.FetchRateLimit, err = parsePositiveFloat("FETCH_RATE_LIMIT", 5); err != nil {
		return nil, err
	}
	if cfg.FetchTimeout, err = parsePositiveDuration("FETCH_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.SyncInterval, err = parsePositiveDuration("SYNC_INTERVAL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.SyncLookback, err = parsePositiveDuration("SYNC_LOOKBACK", time.Hour); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = parsePositiveDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}

	if cfg.URLTemplate == "" {
		return nil, errors.New("URL_TEMPLATE is required")
	}
	if _, err := iaga2002.ParseTemplate(cfg.URLTemplate); err != nil {
		return nil, fmt.Errorf("URL_TEMPLATE: %w", err)
	}
	if cfg.Observatory == "" {
		return nil, errors.New("OBSERVATORY is required")
	}
	if len(cfg.Channels) == 0 {
		return nil, errors.New("CHANNELS must name at least one channel")
	}
	if _, err := cfg.DataType.Abbreviation(); err != nil {
		return nil, fmt.Errorf("DATA_TYPE: %w", err)
	}
	if _, err := cfg.Interval.Abbreviation(); err != nil {
		return nil, fmt.Errorf("INTERVAL: %w", err)
	}
	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parsePositiveInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer", key, s)
	}
	return n, nil
}

func parsePositiveFloat(key string, fallback float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive number", key, s)
	}
	return v, nil
}

func parsePositiveDuration(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive duration", key, s)
	}
	return d, nil
}
