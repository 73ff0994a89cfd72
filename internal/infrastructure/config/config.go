package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
type Config struct {
	// Ledger persistence
	DataFile   string `env:"DATA_FILE"   envDefault:"accounts_data.json"`
	StrictLoad bool   `env:"STRICT_LOAD" envDefault:"false"`

	// Default admin credential, used only when creating fresh state
	AdminUsername string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"admin123"`

	// HTTP Server
	HTTPPort            string        `env:"HTTP_PORT"             envDefault:"8080"`
	HTTPReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	HTTPWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"30s"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Admin sessions
	JWTSecret     string        `env:"JWT_SECRET"     envDefault:"minibank-dev-secret"`
	JWTExpiration time.Duration `env:"JWT_EXPIRATION" envDefault:"1h"`

	// Password hashing
	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`

	// Rate limiting (per client IP)
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"25"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"50"`

	// Idempotency
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
