package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=3000"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// BackendURL is the base address of the marketplace REST API,
	// including the /api prefix.
	BackendURL string `env:"BACKEND_URL, default=http://localhost:8000/api"`

	// SessionSecret signs the session cookie pair. Must be set outside
	// development.
	SessionSecret string `env:"SESSION_SECRET, default=dev-only-secret"`

	Redis  RedisConfig
	Browse BrowseConfig
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`

	// ReferenceTTL bounds how long categories and pricing plans are served
	// from cache before a refetch.
	ReferenceTTL time.Duration `env:"REFERENCE_TTL, default=10m"`
}

type BrowseConfig struct {
	// Debounce is the quiet period applied to text-driven filter changes
	// before a catalog fetch is issued.
	Debounce time.Duration `env:"BROWSE_DEBOUNCE, default=250ms"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
