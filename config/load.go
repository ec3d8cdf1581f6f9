package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sambeau/rechner/pkg/rechner/resolver"
	"github.com/sambeau/rechner/pkg/rechner/units"
)

// Load reads configuration from a file with ENV interpolation.
// If configPath is empty, it searches default locations and falls back to
// Defaults when no file exists.
func Load(configPath string, getenv func(string) string) (*Config, error) {
	cfg, _, err := LoadWithPath(configPath, getenv)
	return cfg, err
}

// LoadWithPath reads configuration and returns both the config and the resolved path.
// The path is empty when no config file was found and defaults are in use.
func LoadWithPath(configPath string, getenv func(string) string) (*Config, string, error) {
	path, err := resolveConfigPath(configPath, getenv)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		return Defaults(), "", nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read config: %w", err)
	}

	data = interpolateEnv(data, getenv)

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, "", err
	}

	return cfg, absPath, nil
}

// Validate checks the whole configuration and reports every problem at once.
// Call it again after applying CLI overrides.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port: %d (must be 1-65535)", cfg.Server.Port))
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		errs = append(errs, fmt.Sprintf("invalid log level: %s (must be debug, info, warn, or error)", cfg.Logging.Level))
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[cfg.Logging.Format] {
		errs = append(errs, fmt.Sprintf("invalid log format: %s (must be json or text)", cfg.Logging.Format))
	}

	validCompression := map[string]bool{"fastest": true, "default": true, "best": true, "none": true}
	if !validCompression[cfg.Compression.Level] {
		errs = append(errs, fmt.Sprintf("invalid compression level: %s (must be fastest, default, best, or none)", cfg.Compression.Level))
	}
	if cfg.Compression.MinSize < 0 {
		errs = append(errs, fmt.Sprintf("invalid compression min_size: %d (must not be negative)", cfg.Compression.MinSize))
	}

	if cfg.RateLimit.Requests < 0 {
		errs = append(errs, fmt.Sprintf("invalid rate_limit requests: %d (must not be negative)", cfg.RateLimit.Requests))
	}
	if cfg.RateLimit.Requests > 0 && cfg.RateLimit.Window <= 0 {
		errs = append(errs, fmt.Sprintf("invalid rate_limit window: %s (must be positive)", cfg.RateLimit.Window))
	}

	if cfg.Resolver.MaxInputLength < 1 || cfg.Resolver.MaxInputLength > resolver.MaxInputLimit {
		errs = append(errs, fmt.Sprintf("invalid resolver max_input_length: %d (must be 1-%d)", cfg.Resolver.MaxInputLength, resolver.MaxInputLimit))
	}
	if _, err := cfg.Location(); err != nil {
		errs = append(errs, err.Error())
	}

	if _, err := cfg.UnitTable(); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// Location returns the time zone that defines "today".
func (c *Config) Location() (*time.Location, error) {
	name := c.Resolver.Timezone
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid resolver timezone: %s", name)
	}
	return loc, nil
}

// UnitTable returns the built-in unit table extended with the configured units.
func (c *Config) UnitTable() (*units.Table, error) {
	if len(c.Units) == 0 {
		return units.Default(), nil
	}

	extra := make([]units.Category, 0, len(c.Units))
	for _, uc := range c.Units {
		symbols := make([]string, 0, len(uc.Units))
		for sym := range uc.Units {
			symbols = append(symbols, sym)
		}
		sort.Strings(symbols)

		cat := units.Category{Name: uc.Name}
		for _, sym := range symbols {
			cat.Units = append(cat.Units, units.Unit{Symbol: sym, Factor: uc.Units[sym]})
		}
		extra = append(extra, cat)
	}

	tbl, err := units.NewTable(extra)
	if err != nil {
		return nil, fmt.Errorf("invalid units: %w", err)
	}
	return tbl, nil
}

// NewResolver builds a resolver from the resolver and units sections.
func (c *Config) NewResolver() (*resolver.Resolver, error) {
	tbl, err := c.UnitTable()
	if err != nil {
		return nil, err
	}
	return resolver.New(resolver.Options{
		Units:          tbl,
		MaxInputLength: c.Resolver.MaxInputLength,
	}), nil
}

// resolveConfigPath finds the config file to use.
// Search order: explicit path > RECHNER_CONFIG env > ./rechner.yaml > ~/.config/rechner/rechner.yaml
// An explicit path that does not exist is an error; finding nothing otherwise
// returns "".
func resolveConfigPath(explicit string, getenv func(string) string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	if envPath := getenv("RECHNER_CONFIG"); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("RECHNER_CONFIG file not found: %s", envPath)
		}
		return envPath, nil
	}

	if _, err := os.Stat("rechner.yaml"); err == nil {
		return "rechner.yaml", nil
	}

	home, err := os.UserHomeDir()
	if err == nil {
		xdgPath := filepath.Join(home, ".config", "rechner", "rechner.yaml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath, nil
		}
	}

	return "", nil
}

// envPattern matches ${VAR} or ${VAR:-default}
var envPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// interpolateEnv replaces ${VAR} and ${VAR:-default} patterns with environment values.
func interpolateEnv(data []byte, getenv func(string) string) []byte {
	return envPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		parts := envPattern.FindSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		varName := string(parts[1])
		value := getenv(varName)

		if value == "" && len(parts) >= 3 && len(parts[2]) > 0 {
			value = string(parts[2])
		}

		return []byte(value)
	})
}
