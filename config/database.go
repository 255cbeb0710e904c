package config

import "time"

// DBConfig contains PostgreSQL database configuration.
type DBConfig struct {
	Host     string `env:"HOST"     envDefault:"localhost"`
	Port     int    `env:"PORT"     envDefault:"5432"`
	User     string `env:"USER"     envDefault:"sdrleads"`
	Password string `env:"PASSWORD" envDefault:"sdrleads"`
	Name     string `env:"NAME"     envDefault:"sdrleads"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// RedisConfig contains Redis configuration for the stats cache.
type RedisConfig struct {
	Addr     string `env:"ADDR"     envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
	// Enabled controls whether Redis is connected at all. With Redis
	// disabled the dashboard stats endpoint recomputes on every request.
	Enabled bool `env:"ENABLED" envDefault:"true"`
}

// CacheConfig contains cache TTL configuration (Redis-based).
type CacheConfig struct {
	// StatsTTL is the TTL for cached dashboard stats.
	StatsTTL time.Duration `env:"CACHE_STATS_TTL" envDefault:"60s"`
}

// Sanitize applies guardrails to cache configuration values.
func (c *CacheConfig) Sanitize() {
	if c.StatsTTL <= 0 {
		c.StatsTTL = 60 * time.Second
	}
}
