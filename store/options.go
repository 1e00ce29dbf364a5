package store

import (
	"io"
	"log/slog"
)

// Config holds store settings.
type Config struct {
	// Logger receives debug records for bootstrap and dispatch.
	// Default: a logger that discards everything.
	Logger *slog.Logger
}

// Option configures a store.
type Option func(*Config)

// WithLogger sets the store logger. A nil logger keeps the default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

func defaultConfig() Config {
	return Config{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}
