package config

import (
	"time"

	"github.com/sambeau/rechner/pkg/rechner/resolver"
)

// Config represents the complete rechner configuration
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Logging     LoggingConfig     `yaml:"logging"`
	Compression CompressionConfig `yaml:"compression"`
	CORS        CORSConfig        `yaml:"cors"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit"`
	Resolver    ResolverConfig    `yaml:"resolver"`
	Units       []UnitCategory    `yaml:"units"` // Extra unit categories or units added to the built-in table
}

// ServerConfig holds server settings
type ServerConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	TrustProxy bool   `yaml:"trust_proxy"` // Take the client address from X-Forwarded-For
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or text
	Quiet  bool   `yaml:"quiet"`  // suppress request logs
}

// CompressionConfig holds HTTP response compression settings
type CompressionConfig struct {
	Enabled bool   `yaml:"enabled"`  // Enable gzip compression (default: true)
	Level   string `yaml:"level"`    // Compression level: "fastest", "default", "best", "none" (default: "default")
	MinSize int    `yaml:"min_size"` // Minimum response size to compress in bytes (default: 1024)
}

// CORSConfig holds Cross-Origin Resource Sharing settings for the API
type CORSConfig struct {
	Origins []string `yaml:"origins"` // "*" or list of allowed origins; empty disables CORS
	MaxAge  int      `yaml:"max_age"` // Preflight cache duration in seconds
}

// RateLimitConfig limits API requests per client
type RateLimitConfig struct {
	Requests int           `yaml:"requests"` // Requests allowed per window; 0 disables limiting
	Window   time.Duration `yaml:"window"`   // Window length (default: 1m)
}

// ResolverConfig holds settings for expression resolution
type ResolverConfig struct {
	MaxInputLength int    `yaml:"max_input_length"` // Longer inputs are ignored (default: 512)
	Timezone       string `yaml:"timezone"`         // IANA zone that defines "today" (default: "Local")
}

// UnitCategory adds units to a category. A name that matches a built-in
// category (case-insensitively) extends it; any other name creates a new one.
type UnitCategory struct {
	Name  string             `yaml:"name"`
	Units map[string]float64 `yaml:"units"` // symbol -> factor to the category's base unit
}

// Defaults returns a Config with sensible defaults
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Compression: CompressionConfig{
			Enabled: true,
			Level:   "default",
			MinSize: 1024,
		},
		CORS: CORSConfig{
			MaxAge: 86400, // 24 hours
		},
		RateLimit: RateLimitConfig{
			Window: time.Minute,
		},
		Resolver: ResolverConfig{
			MaxInputLength: resolver.DefaultMaxInputLength,
			Timezone:       "Local",
		},
	}
}
