package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v2"
)

type Config struct {
	// Server
	Port           int
	Env            string
	RequestTimeout time.Duration

	// CORS
	AllowedOrigins []string

	// Database URLs
	PostgresURL   string
	ClickHouseURL string // optional; goal archive and analytics are off without it
	RedisURL      string

	// Goal archive worker pool
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration

	// Tournament runs. RunLockTTL never drops below RequestTimeout so the
	// lock outlives any run the server lets finish.
	RunLockTTL time.Duration
	Simulation Simulation

	// Champion announcements
	TelegramToken  string
	TelegramChatID int64
}

// Simulation holds the engine tunables. They can be set in a YAML file
// named by SIM_CONFIG_PATH; environment variables win over the file.
type Simulation struct {
	Seeding             string  `yaml:"seeding"`
	GoalCeiling         int     `yaml:"goalCeiling"`
	ZeroBumpProbability float64 `yaml:"zeroBumpProbability"`
	Seed                uint64  `yaml:"seed"`
}

// DefaultSimulation matches the engine defaults.
func DefaultSimulation() Simulation {
	return Simulation{
		Seeding:             "ranked",
		GoalCeiling:         6,
		ZeroBumpProbability: 0.35,
	}
}

// IsProduction reports whether ENV selects production behaviour.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// TelegramEnabled reports whether champion announcements are configured.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

// Load loads configuration from environment variables.
// It returns an error if critical configuration is missing.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnvInt("PORT", 8080),
		Env:            getEnv("ENV", "development"),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 60*time.Second),

		ClickHouseURL: getEnv("CLICKHOUSE_URL", ""),

		WorkerCount:   getEnvInt("WORKER_COUNT", 2),
		QueueSize:     getEnvInt("QUEUE_SIZE", 1000),
		BatchSize:     getEnvInt("BATCH_SIZE", 100),
		FlushInterval: getEnvDuration("FLUSH_INTERVAL", 1*time.Second),

		RunLockTTL: getEnvDuration("RUN_LOCK_TTL", 2*time.Minute),

		TelegramToken:  getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID: getEnvInt64("TELEGRAM_CHAT_ID", 0),
	}

	// CORS
	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	rawOrigins := strings.Split(origins, ",")
	for _, o := range rawOrigins {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	if cfg.RunLockTTL < cfg.RequestTimeout {
		cfg.RunLockTTL = cfg.RequestTimeout
	}

	sim, err := loadSimulation(getEnv("SIM_CONFIG_PATH", ""))
	if err != nil {
		return nil, err
	}
	cfg.Simulation = sim

	// Critical configuration - fail if missing
	if cfg.PostgresURL, err = getEnvRequired("POSTGRES_URL"); err != nil {
		return nil, err
	}
	if cfg.RedisURL, err = getEnvRequired("REDIS_URL"); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadSimulation(path string) (Simulation, error) {
	sim := DefaultSimulation()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return sim, fmt.Errorf("read simulation config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &sim); err != nil {
			return sim, fmt.Errorf("parse simulation config %s: %w", path, err)
		}
	}

	sim.Seeding = getEnv("SEEDING_POLICY", sim.Seeding)
	sim.GoalCeiling = getEnvInt("GOAL_CEILING", sim.GoalCeiling)
	sim.ZeroBumpProbability = getEnvFloat("ZERO_BUMP_PROBABILITY", sim.ZeroBumpProbability)
	sim.Seed = getEnvUint64("RNG_SEED", sim.Seed)
	return sim, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvRequired(key string) (string, error) {
	if value := os.Getenv(key); value != "" {
		return value, nil
	}
	return "", fmt.Errorf("missing required environment variable: %s", key)
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvUint64(key string, fallback uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseUint(value, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
