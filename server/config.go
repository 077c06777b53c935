package server

import (
	"fmt"
	"time"
)

// Config holds the server settings.
type Config struct {
	Addr            string
	DSN             string // empty selects the in-memory store
	UseMagics       bool
	MagicSeed       int64
	ShutdownTimeout time.Duration
}

// DefaultConfig listens on :8080 with an in-memory store and ray-marching
// slider generation.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		MagicSeed:       1,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Validate checks the settings.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("config: empty listen address")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("config: shutdown timeout must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}
