package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Config captures process-level configuration for the collector.
type Config struct {
	// SocketPath is where the unix listener is bound.
	SocketPath string
	// LogDir holds the per-session JSONL log files.
	LogDir string
	// SessionID overrides the generated session identifier when non-empty.
	SessionID string
	// AdminAddr enables the local admin/metrics HTTP surface when non-empty.
	AdminAddr string

	LogLevel  string
	LogFormat string

	// Optional mirror sinks. Each is disabled when its setting is empty.
	RedisURL     string
	PostgresDSN  string
	KafkaBrokers []string
	KafkaTopic   string
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	cfg := Config{
		SocketPath:  os.Getenv("SCRIBE_SOCKET_PATH"),
		LogDir:      os.Getenv("SCRIBE_LOG_DIR"),
		SessionID:   os.Getenv("SCRIBE_SESSION_ID"),
		AdminAddr:   os.Getenv("SCRIBE_ADMIN_ADDR"),
		LogLevel:    os.Getenv("SCRIBE_LOG_LEVEL"),
		LogFormat:   os.Getenv("SCRIBE_LOG_FORMAT"),
		RedisURL:    os.Getenv("SCRIBE_REDIS_URL"),
		PostgresDSN: os.Getenv("SCRIBE_POSTGRES_DSN"),
		KafkaTopic:  os.Getenv("SCRIBE_KAFKA_TOPIC"),
	}

	if brokers := os.Getenv("SCRIBE_KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}
	if cfg.SocketPath == "" {
		cfg.SocketPath = filepath.Join(runtimeDir(), "scribe.sock")
	}
	if cfg.LogDir == "" {
		cfg.LogDir = filepath.Join(stateDir(), "logs")
	}
	if cfg.KafkaTopic == "" {
		cfg.KafkaTopic = "scribe.audit"
	}
	return cfg
}

// runtimeDir resolves the directory for the default socket path, preferring
// XDG_RUNTIME_DIR over a world-readable fallback.
func runtimeDir() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "scribe")
	}
	return filepath.Join(os.TempDir(), "scribe")
}

func stateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "scribe")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "scribe")
	}
	return filepath.Join(home, ".local", "state", "scribe")
}
