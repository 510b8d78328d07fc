package config

import "time"

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

type SessionConfig interface {
	GetSessionSecret() []byte
	GetMaxSessionAge() time.Duration
	GetSessionStore() string
	GetRedisURL() string
}

type Session struct {
	SessionSecret string        `env:"SESSION_SECRET,required"`
	MaxAge        time.Duration `env:"SESSION_MAX_AGE" envDefault:"30m"`
	Store         string        `env:"SESSION_STORE" envDefault:"memory"`
	RedisURL      string        `env:"REDIS_URL"`
}

var _ SessionConfig = Session{}

func (s Session) GetSessionSecret() []byte {
	return []byte(s.SessionSecret)
}

func (s Session) GetMaxSessionAge() time.Duration {
	return s.MaxAge
}

func (s Session) GetSessionStore() string {
	return s.Store
}

func (s Session) GetRedisURL() string {
	return s.RedisURL
}
