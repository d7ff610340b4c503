package config

import (
	"log/slog"
	"os"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr          string
	MetricsAddr   string
	LogLevel      slog.Level
	SweepInterval time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("PCTF_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	metricsAddr := os.Getenv("PCTF_METRICS_ADDR")
	if metricsAddr == "" {
		metricsAddr = ":9090"
	}

	level := slog.LevelInfo
	if os.Getenv("PCTF_LOG_DEBUG") == "true" {
		level = slog.LevelDebug
	}

	sweep := 1 * time.Hour
	if raw := os.Getenv("PCTF_SWEEP_INTERVAL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			sweep = d
		}
	}

	return Server{
		Addr:          addr,
		MetricsAddr:   metricsAddr,
		LogLevel:      level,
		SweepInterval: sweep,
	}
}
