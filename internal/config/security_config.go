package config

import "time"

type SecurityConfig interface {
	GetStateSecret() []byte
	GetStateMaxAge() time.Duration
}

type Security struct {
	// StateSecret keys the HMAC over the OAuth state timestamp.
	StateSecret string        `env:"STATE_SECRET,required"`
	StateMaxAge time.Duration `env:"STATE_MAX_AGE" envDefault:"60s"`
}

var _ SecurityConfig = Security{}

func (s Security) GetStateSecret() []byte {
	return []byte(s.StateSecret)
}

func (s Security) GetStateMaxAge() time.Duration {
	return s.StateMaxAge
}
