package config

import (
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds the full application configuration, read from the environment
// with optional .env overrides.
type Config struct {
	HTTP struct {
		Port string `env:"PORT" env-default:"8080"`
	}
	Postgres struct {
		URL string `env:"DATABASE_URL"`
	}
	Redis struct {
		URL      string `env:"REDIS_URL"`
		CacheTTL string `env:"ZONE_CACHE_TTL" env-default:"5m"`
	}
	ZonesFile     string  `env:"ZONES_FILE"`
	DefaultStore  string  `env:"DEFAULT_STORE_ID" env-default:"store_demo"`
	RateRPS       float64 `env:"RATE_RPS" env-default:"50"`
	RateBurst     int     `env:"RATE_BURST" env-default:"100"`
	LogLevel      string  `env:"LOG_LEVEL" env-default:"info"`
	MigrationsDir string  `env:"MIGRATIONS_DIR" env-default:"db/migrations"`
	Migrate       bool    `env:"DB_MIGRATE" env-default:"true"`
}

var (
	cfg  Config
	once sync.Once
	err  error
)

// Load reads the configuration once per process.
func Load() (*Config, error) {
	once.Do(func() {
		// Missing .env is fine; the environment alone is enough.
		_ = godotenv.Load()
		err = cleanenv.ReadEnv(&cfg)
	})
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
