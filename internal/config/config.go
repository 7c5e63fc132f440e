package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	// BotToken is the variable name older deployments use.
	BotToken    string `env:"BOT_TOKEN"`
	AdminUserID int64  `env:"ADMIN_USER"`

	// Storage
	DBPath string `env:"DB_PATH" envDefault:"data/gratitude.db"`

	// Runtime
	HealthAddr string        `env:"HEALTH_ADDR" envDefault:":8080"`
	Timezone   string        `env:"TIMEZONE" envDefault:"Local"`
	Workers    int           `env:"WORKERS" envDefault:"4"`
	QueueSize  int           `env:"QUEUE_SIZE" envDefault:"16"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// Housekeeping
	PruneSchedule string `env:"PRUNE_SCHEDULE" envDefault:"0 3 * * *"`
}

// Token returns the bot token, preferring TELEGRAM_BOT_TOKEN.
func (c *Config) Token() string {
	if c.TelegramBotToken != "" {
		return c.TelegramBotToken
	}
	return c.BotToken
}

// Location resolves Timezone; "today" for notes is taken in this location.
func (c *Config) Location() (*time.Location, error) {
	return LoadLocation(c.Timezone)
}

// LoadLocation resolves a TIMEZONE value. Empty means "Local", like the default.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		name = "Local"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("bad TIMEZONE %q: %w", name, err)
	}
	return loc, nil
}

// Parse reads the configuration from the environment.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if cfg.Token() == "" {
		return nil, errors.New("TELEGRAM_BOT_TOKEN (or BOT_TOKEN) is required")
	}
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("WORKERS must be positive, got %d", cfg.Workers)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func New() *Config {
	cfg, err := Parse()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
