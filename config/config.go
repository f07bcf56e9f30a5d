package config

import (
	"time"

	"github.com/go-pg/pg/v10"
)

type Config struct {
	Database pg.Options
	DB       struct {
		LogQueries bool
		Migrate    bool
	}
	App struct {
		Port int
	}
	Log struct {
		// File enables a rotating log file next to stderr output.
		File       string
		MaxSizeMB  int
		MaxBackups int
		MaxAgeDays int
		Compress   bool
	}
	Redis struct {
		// Addr empty keeps revoked sessions in memory.
		Addr     string
		Password string
		DB       int
	}
	Auth struct {
		JWTSecret    string
		TokenTTL     time.Duration
		CookieSecure bool
		BcryptCost   int
	}
	RateLimit struct {
		// PerMinute limits write and login requests per client IP; 0 disables the limiter.
		PerMinute int
	}
}

// Defaults fills values left empty by the config file.
func (c *Config) Defaults() {
	if c.App.Port == 0 {
		c.App.Port = 8080
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = 24 * time.Hour
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = 100
	}
}
