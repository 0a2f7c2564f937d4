package config

import (
	"strconv"
	"time"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with environment variables
// 3. Override with command line flags (handled by cobra)
func (l *Loader) Load() (*Config, error) {
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	// flags win over environment, so validate only once both are applied
	if overrides != nil {
		l.applyOverrides(l.config, overrides)
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Database overrides
	DBDir          *string
	DBFilename     *string
	DBQueryTimeout *time.Duration
	DBWriteTimeout *time.Duration

	// Server overrides
	Port       *int
	CORSOrigin *string

	// AI overrides
	AIProvider *string
	AIModel    *string
	AIBaseURL  *string

	// Cache overrides
	RedisAddr *string

	// Application overrides
	Timeout     *time.Duration
	Verbose     *bool
	Environment *string
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	// Database overrides
	if overrides.DBDir != nil {
		config.Database.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		config.Database.Filename = *overrides.DBFilename
	}
	if overrides.DBQueryTimeout != nil {
		config.Database.QueryTimeout = *overrides.DBQueryTimeout
	}
	if overrides.DBWriteTimeout != nil {
		config.Database.WriteTimeout = *overrides.DBWriteTimeout
	}

	// Server overrides
	if overrides.Port != nil {
		config.Server.Port = *overrides.Port
	}
	if overrides.CORSOrigin != nil {
		config.Server.CORSOrigin = *overrides.CORSOrigin
	}

	// AI overrides
	if overrides.AIProvider != nil {
		config.AI.Provider = *overrides.AIProvider
	}
	if overrides.AIModel != nil {
		config.AI.Model = *overrides.AIModel
	}
	if overrides.AIBaseURL != nil {
		config.AI.BaseURL = *overrides.AIBaseURL
	}

	// Cache overrides
	if overrides.RedisAddr != nil {
		config.Cache.RedisAddr = *overrides.RedisAddr
	}

	// Application overrides
	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
	if overrides.Environment != nil {
		config.Application.Environment = *overrides.Environment
	}
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
