package main

import (
	"time"

	"github.com/YOUBAZ/SafeStay/auth"
	"github.com/caarlos0/env/v11"
	"github.com/goliatone/go-errors"
)

// AppConfig is loaded from the environment once at startup. The auth library
// itself never reads the environment; it receives an auth.Config value.
type AppConfig struct {
	Port            string `env:"PORT" envDefault:"3001"`
	Env             string `env:"APP_ENV" envDefault:"development"`
	DatabaseURL     string `env:"DATABASE_URL" envDefault:"file::memory:?cache=shared"`
	AccessSecret    string `env:"JWT_ACCESS_SECRET"`
	RefreshSecret   string `env:"JWT_REFRESH_SECRET"`
	AccessExpiresIn string `env:"JWT_ACCESS_EXPIRES_IN" envDefault:"15m"`
	RefreshExpires  string `env:"JWT_REFRESH_EXPIRES_IN" envDefault:"7d"`
	CORSOrigin      string `env:"CORS_ORIGIN" envDefault:"*"`
	DebugSQL        bool   `env:"DEBUG_SQL" envDefault:"false"`
	SeedFixtures    bool   `env:"SEED_FIXTURES" envDefault:"false"`
}

func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to parse environment configuration")
	}
	return cfg, nil
}

// GetAuth builds the auth library configuration.
func (c *AppConfig) GetAuth() (auth.Config, error) {
	accessTTL, err := auth.ParseExpiry(c.AccessExpiresIn)
	if err != nil {
		return auth.Config{}, errors.Wrap(err, errors.CategoryBadInput, "invalid JWT_ACCESS_EXPIRES_IN")
	}

	refreshTTL, err := auth.ParseExpiry(c.RefreshExpires)
	if err != nil {
		return auth.Config{}, errors.Wrap(err, errors.CategoryBadInput, "invalid JWT_REFRESH_EXPIRES_IN")
	}

	cfg := auth.Config{
		AccessSigningKey:  c.AccessSecret,
		RefreshSigningKey: c.RefreshSecret,
		AccessTTL:         accessTTL,
		RefreshTTL:        refreshTTL,
	}

	return cfg, cfg.Validate()
}

// GetPersistence returns the database client configuration.
func (c *AppConfig) GetPersistence() PersistenceConfig {
	return PersistenceConfig{
		DSN:   c.DatabaseURL,
		Debug: c.DebugSQL,
	}
}

// PersistenceConfig satisfies the go-persistence-bun client config.
type PersistenceConfig struct {
	DSN   string
	Debug bool
}

func (p PersistenceConfig) GetDSN() string {
	return p.DSN
}

func (p PersistenceConfig) GetDebug() bool {
	return p.Debug
}

func (p PersistenceConfig) GetPingTimeout() time.Duration {
	return 5 * time.Second
}
