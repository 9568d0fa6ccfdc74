package config

import "time"

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"

	// DefaultSessionTTL bounds how long a login stays valid without
	// re-authenticating.
	DefaultSessionTTL = 8 * time.Hour
)

// SessionConfig configures the session registry backend.
type SessionConfig struct {
	// Store selects the backend: "memory" (single process) or "redis"
	// (shared across instances).
	Store      string   `yaml:"store"`
	TTL        Duration `yaml:"ttl"`
	CookieName string   `yaml:"cookie_name"`
	// CookieSecure should be enabled behind TLS.
	CookieSecure bool        `yaml:"cookie_secure"`
	Redis        RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}
