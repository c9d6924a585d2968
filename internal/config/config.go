package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// NWS proxy configuration.
	NWSBaseURL         string
	NWSUserAgent       string
	NWSTimeout         time.Duration
	NWSCacheTTL        time.Duration
	NWSCacheMaxEntries int

	CORSAllowedOrigins []string

	// Sounding pipeline configuration.
	WyomingBaseURL   string
	SoundingTimeout  time.Duration
	SoundingCacheTTL time.Duration

	// Alert stream configuration (feature-flagged Kafka fan-out).
	AlertStreamEnabled bool
	AlertArea          string
	AlertPollInterval  time.Duration
	KafkaBrokers       []string
	KafkaAlertTopic    string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := durationEnv("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	nwsTimeout, err := durationEnv("NWS_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	nwsCacheTTL, err := durationEnv("NWS_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, err
	}
	nwsCacheMax, err := intEnv("NWS_CACHE_MAX_ENTRIES", 1024)
	if err != nil {
		return nil, err
	}
	soundingTimeout, err := durationEnv("SOUNDING_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	soundingCacheTTL, err := durationEnv("SOUNDING_CACHE_TTL", 6*time.Hour)
	if err != nil {
		return nil, err
	}
	alertPollInterval, err := durationEnv("ALERT_POLL_INTERVAL", time.Minute)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		NWSBaseURL:         strings.TrimRight(envOrDefault("NWS_BASE_URL", "https://api.weather.gov"), "/"),
		NWSUserAgent:       envOrDefault("NWS_USER_AGENT", "weather-modeling-service/1.0 (educational project)"),
		NWSTimeout:         nwsTimeout,
		NWSCacheTTL:        nwsCacheTTL,
		NWSCacheMaxEntries: nwsCacheMax,

		CORSAllowedOrigins: splitList(envOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173")),

		WyomingBaseURL:   strings.TrimRight(envOrDefault("WYOMING_BASE_URL", "https://weather.uwyo.edu"), "/"),
		SoundingTimeout:  soundingTimeout,
		SoundingCacheTTL: soundingCacheTTL,

		AlertStreamEnabled: os.Getenv("ALERT_STREAM_ENABLED") == "true",
		AlertArea:          os.Getenv("ALERT_AREA"),
		AlertPollInterval:  alertPollInterval,
		KafkaBrokers:       splitList(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaAlertTopic:    envOrDefault("KAFKA_ALERT_TOPIC", "weather-alerts"),
	}

	if cfg.AlertStreamEnabled {
		if cfg.AlertArea == "" {
			return nil, errors.New("ALERT_STREAM_ENABLED is true but ALERT_AREA is not set")
		}
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("ALERT_STREAM_ENABLED is true but KAFKA_BROKERS is empty")
		}
		if cfg.KafkaAlertTopic == "" {
			return nil, errors.New("ALERT_STREAM_ENABLED is true but KAFKA_ALERT_TOPIC is empty")
		}
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func intEnv(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
