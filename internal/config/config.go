package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the server configuration, populated from the environment with
// optional .env overrides for local development
type Config struct {
	Addr string `env:"ADDR" envDefault:":8080"`

	// DatabaseURL selects the postgres store; empty falls back to the
	// in-memory store
	DatabaseURL string `env:"DATABASE_URL"`
	// RedisURL selects the redis session store; empty falls back to the
	// in-memory store
	RedisURL string `env:"REDIS_URL"`

	SecureCookies bool          `env:"SECURE_COOKIES" envDefault:"false"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	RememberTTL   time.Duration `env:"REMEMBER_TTL" envDefault:"720h"`

	LoginLogPath string `env:"LOGIN_LOG_PATH" envDefault:"logs/login.txt"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`

	MailFrom     string `env:"MAIL_FROM"`
	MailFromName string `env:"MAIL_FROM_NAME" envDefault:"Butiken"`
	ContactTo    string `env:"CONTACT_TO"`
}

// Load reads configuration from the environment. A missing .env file is
// fine; set variables always win over the file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
