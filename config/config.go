package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

// Config is the process wide configuration, loaded once at startup from the
// environment. Rotating the signing key invalidates every outstanding token;
// there is no migration path by design.
type Config struct {
	Addr  string `env:"PORTFOLIO_ADDR" envDefault:":9090"`
	DSN   string `env:"PORTFOLIO_DSN" envDefault:"file:portfolio.db?cache=shared&mode=rwc"`
	Debug bool   `env:"PORTFOLIO_DEBUG" envDefault:"false"`

	SigningKey      string `env:"PORTFOLIO_SIGNING_KEY" json:"-"`
	TokenExpiration int    `env:"PORTFOLIO_TOKEN_EXPIRATION_HOURS" envDefault:"24"`
	Issuer          string `env:"PORTFOLIO_TOKEN_ISSUER" envDefault:"portfolio-api"`
	ContextKey      string `env:"PORTFOLIO_AUTH_CONTEXT_KEY" envDefault:"user"`
	AuthScheme      string `env:"PORTFOLIO_AUTH_SCHEME" envDefault:"Bearer"`

	AdminUsername string `env:"PORTFOLIO_ADMIN_USERNAME" envDefault:"admin"`
	AdminEmail    string `env:"PORTFOLIO_ADMIN_EMAIL" envDefault:"admin@localhost"`
	AdminPassword string `env:"PORTFOLIO_ADMIN_PASSWORD" json:"-"`

	CORSOrigins string `env:"PORTFOLIO_CORS_ORIGINS" envDefault:"http://localhost:4200"`
}

// Load parses the environment into a Config
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if cfg.SigningKey == "" {
		return nil, errors.New("PORTFOLIO_SIGNING_KEY is required")
	}

	return cfg, nil
}

func (c *Config) GetSigningKey() string {
	return c.SigningKey
}

func (c *Config) GetTokenExpiration() int {
	return c.TokenExpiration
}

func (c *Config) GetIssuer() string {
	return c.Issuer
}

func (c *Config) GetContextKey() string {
	return c.ContextKey
}

func (c *Config) GetAuthScheme() string {
	return c.AuthScheme
}
