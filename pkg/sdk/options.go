package gallformers

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/gallformers/internal/config"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	database  config.DatabaseConfig
	keyPrefix string
	cacheTTL  time.Duration

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithRedis stores data in Redis. RedisJSON must be available.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.database = config.DatabaseConfig{
			Driver:   config.DriverRedis,
			Addrs:    []string{addr},
			Password: password,
		}
	})
}

// WithSQLite stores data in a local SQLite file, created if missing.
func WithSQLite(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.database = config.DatabaseConfig{
			Driver: config.DriverSQLite,
			Path:   path,
		}
	})
}

// WithKeyPrefix namespaces every stored key. Default: "gallformers:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithGlossaryCacheTTL sets how long the glossary snapshot used for linking
// is reused. Writes through this client invalidate it immediately.
// Default: 5 minutes.
func WithGlossaryCacheTTL(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheTTL = ttl
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
