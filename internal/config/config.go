package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/jrsteele09/go-coinbase-oauth/internal/errors"
)

type Config interface {
	EnvConfig
	OAuthConfig
	SecurityConfig
	SessionConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
	GetBaseURL() string
}

type mainConfig struct {
	EnvVars
	OAuth
	Security
	Session
}

// Parse reads configuration from the process environment.
func Parse() (Config, error) {
	return parse(env.Options{})
}

// FromMap reads configuration from vars only, ignoring the process environment.
func FromMap(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var c mainConfig
	if err := env.ParseWithOptions(&c, opts); err != nil {
		return nil, errors.WithKind(errors.ErrInvalidConfig, fmt.Errorf("parse env: %w", err))
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c mainConfig) validate() error {
	switch c.Session.Store {
	case SessionStoreMemory:
	case SessionStoreRedis:
		if c.RedisURL == "" {
			return errors.Wrapf(errors.ErrInvalidConfig, "REDIS_URL is required when SESSION_STORE=%s", SessionStoreRedis)
		}
	default:
		return errors.Wrapf(errors.ErrInvalidConfig, "unknown SESSION_STORE %q", c.Session.Store)
	}
	if c.StateMaxAge <= 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "STATE_MAX_AGE must be positive")
	}
	if len(c.Scopes) == 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "OAUTH_SCOPES must not be empty")
	}
	return nil
}
