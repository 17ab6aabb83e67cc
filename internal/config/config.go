package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/vanshika/fintrace/backend/internal/forensics"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP        HTTPConfig
	Thresholds  ThresholdsConfig
	Cache       CacheConfig
	GraphExport GraphExportConfig
	Logging     LoggingConfig
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	MetricsEnabled  bool
}

// ThresholdsConfig mirrors forensics.Thresholds, read from the environment so
// an operator can retune detector sensitivity without a rebuild.
type ThresholdsConfig struct {
	CycleLengthMin           int
	CycleLengthMax           int
	FanThreshold             int
	TemporalWindowSeconds    int
	ShellLowActivityMin      int
	ShellLowActivityMax      int
	PathHopCutoff            int
	SuspiciousScoreThreshold float64
	FPAmountCVMax            float64
	FPDeltaCVMax             float64
	FPMinCount               int
}

// Forensics converts the env-loaded thresholds into forensics.Thresholds.
func (t ThresholdsConfig) Forensics() forensics.Thresholds {
	return forensics.Thresholds{
		Cycle: forensics.CycleThresholds{
			MinLength: t.CycleLengthMin,
			MaxLength: t.CycleLengthMax,
		},
		SuspiciousScoreThreshold: t.SuspiciousScoreThreshold,
		Smurfing: forensics.SmurfingThresholds{
			FanThreshold:   t.FanThreshold,
			TemporalWindow: time.Duration(t.TemporalWindowSeconds) * time.Second,
			FP: forensics.FPThresholds{
				AmountCVMax: t.FPAmountCVMax,
				DeltaCVMax:  t.FPDeltaCVMax,
				MinCount:    t.FPMinCount,
			},
		},
		Shell: forensics.ShellThresholds{
			LowActivityMin: t.ShellLowActivityMin,
			LowActivityMax: t.ShellLowActivityMax,
			HopCutoff:      t.PathHopCutoff,
		},
	}
}

// CacheConfig describes the report cache. An empty Addr disables Redis and
// the service falls back to an in-memory cache.
type CacheConfig struct {
	Addr     string
	Password string
	TTL      time.Duration
}

// GraphExportConfig describes the optional visualization export sink. An
// empty URI disables export entirely.
type GraphExportConfig struct {
	URI      string
	Database string
	Username string
	Password string
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string
	Format        string // text|json
	Colored       bool
	IncludeCaller bool
}

const (
	defaultHost            = "0.0.0.0"
	defaultPort            = 8080
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 15 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultLoggingLevel    = "info"
	defaultLoggingFormat   = "text"

	defaultCycleLengthMin           = 3
	defaultCycleLengthMax           = 5
	defaultFanThreshold             = 10
	defaultTemporalWindowSeconds    = 259200 // 72h
	defaultShellLowActivityMin      = 2
	defaultShellLowActivityMax      = 3
	defaultPathHopCutoff            = 6
	defaultSuspiciousScoreThreshold = 50.0
	defaultFPAmountCVMax            = 0.1
	defaultFPDeltaCVMax             = 0.2
	defaultFPMinCount               = 20

	defaultReportCacheTTL = time.Hour
)

// Load reads configuration from environment variables, applying defaults.
func Load() (Config, error) {
	cfg := Config{
		HTTP: HTTPConfig{
			Host:            valueOrDefault("SERVER_HOST", defaultHost),
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			IdleTimeout:     defaultIdleTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Thresholds: ThresholdsConfig{
			CycleLengthMin:           parseIntWithDefault("CYCLE_LENGTH_MIN", defaultCycleLengthMin),
			CycleLengthMax:           parseIntWithDefault("CYCLE_LENGTH_MAX", defaultCycleLengthMax),
			FanThreshold:             parseIntWithDefault("FAN_THRESHOLD", defaultFanThreshold),
			TemporalWindowSeconds:    parseIntWithDefault("TEMPORAL_WINDOW_SECONDS", defaultTemporalWindowSeconds),
			ShellLowActivityMin:      parseIntWithDefault("SHELL_LOW_ACTIVITY_MIN", defaultShellLowActivityMin),
			ShellLowActivityMax:      parseIntWithDefault("SHELL_LOW_ACTIVITY_MAX", defaultShellLowActivityMax),
			PathHopCutoff:            parseIntWithDefault("PATH_HOP_CUTOFF", defaultPathHopCutoff),
			SuspiciousScoreThreshold: parseFloatWithDefault("SUSPICIOUS_SCORE_THRESHOLD", defaultSuspiciousScoreThreshold),
			FPAmountCVMax:            parseFloatWithDefault("FP_AMOUNT_CV_MAX", defaultFPAmountCVMax),
			FPDeltaCVMax:             parseFloatWithDefault("FP_DELTA_CV_MAX", defaultFPDeltaCVMax),
			FPMinCount:               parseIntWithDefault("FP_MIN_COUNT", defaultFPMinCount),
		},
		Cache: CacheConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			TTL:      defaultReportCacheTTL,
		},
		GraphExport: GraphExportConfig{
			URI:      os.Getenv("GRAPH_URI"),
			Database: valueOrDefault("GRAPH_DATABASE", ""),
			Username: os.Getenv("GRAPH_USERNAME"),
			Password: os.Getenv("GRAPH_PASSWORD"),
		},
		Logging: LoggingConfig{
			Level:         valueOrDefault("LOG_LEVEL", defaultLoggingLevel),
			Format:        valueOrDefault("LOG_FORMAT", defaultLoggingFormat),
			Colored:       parseBoolWithDefault("LOG_COLOR", false),
			IncludeCaller: parseBoolWithDefault("LOG_INCLUDE_CALLER", false),
		},
	}

	port, err := parsePort("SERVER_PORT", defaultPort)
	if err != nil {
		return Config{}, err
	}
	cfg.HTTP.Port = port

	if v := os.Getenv("SERVER_READ_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.ReadTimeout = d
		} else {
			return Config{}, fmt.Errorf("invalid SERVER_READ_TIMEOUT: %w", err)
		}
	}

	if v := os.Getenv("SERVER_WRITE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.WriteTimeout = d
		} else {
			return Config{}, fmt.Errorf("invalid SERVER_WRITE_TIMEOUT: %w", err)
		}
	}

	if v := os.Getenv("REPORT_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Cache.TTL = d
		} else {
			return Config{}, fmt.Errorf("invalid REPORT_CACHE_TTL: %w", err)
		}
	}

	cfg.HTTP.MetricsEnabled = parseBoolWithDefault("SERVER_METRICS_ENABLED", true)

	return cfg, nil
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}

func parseIntWithDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			return val
		}
	}
	return fallback
}

func parseFloatWithDefault(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.ParseFloat(v, 64); err == nil {
			return val
		}
	}
	return fallback
}

func parsePort(key string, fallback int) (int, error) {
	if v := os.Getenv(key); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
		}
		if port <= 0 || port > 65535 {
			return 0, fmt.Errorf("port %d is out of range", port)
		}
		return port, nil
	}
	return fallback, nil
}
