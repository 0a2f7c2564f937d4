package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration options for the planner
type Config struct {
	Database    DatabaseConfig
	Server      ServerConfig
	AI          AIConfig
	Cache       CacheConfig
	Timer       TimerConfig
	Validation  ValidationConfig
	Export      ExportConfig
	Google      GoogleConfig
	Application ApplicationConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `env:"P2P_DB_DIR"`
	Filename       string        `env:"P2P_DB_FILENAME"`
	QueryTimeout   time.Duration `env:"P2P_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `env:"P2P_DB_WRITE_TIMEOUT"`
	DirPermissions uint32        `env:"P2P_DB_DIR_PERMISSIONS"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int           `env:"PORT"`
	CORSOrigin      string        `env:"CORS_ORIGIN"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW_MS"`
	RateLimitMax    int           `env:"RATE_LIMIT_MAX_REQUESTS"`
	BodyLimit       int           `env:"P2P_BODY_LIMIT"`
	ShutdownTimeout time.Duration `env:"P2P_SHUTDOWN_TIMEOUT"`
}

// AIConfig holds the start-up provider selection
type AIConfig struct {
	Provider       string        `env:"AI_PROVIDER"`
	APIKey         string        `env:"AI_API_KEY,GEMINI_API_KEY"`
	BaseURL        string        `env:"AI_BASE_URL"`
	Model          string        `env:"AI_MODEL"`
	RequestTimeout time.Duration `env:"P2P_AI_TIMEOUT"`
}

// CacheConfig holds the duration-estimate cache configuration.
// An empty RedisAddr selects the in-process cache.
type CacheConfig struct {
	RedisAddr     string        `env:"P2P_REDIS_ADDR"`
	RedisPassword string        `env:"P2P_REDIS_PASSWORD"`
	RedisDB       int           `env:"P2P_REDIS_DB"`
	TTL           time.Duration `env:"P2P_CACHE_TTL"`
	Prefix        string        `env:"P2P_CACHE_PREFIX"`
}

// TimerConfig holds the task timer configuration
type TimerConfig struct {
	TickInterval time.Duration `env:"P2P_TIMER_TICK"`
}

// ValidationConfig holds input limits
type ValidationConfig struct {
	TaskTitleMaxLength  int   `env:"P2P_TASK_TITLE_MAX"`
	EventTitleMaxLength int   `env:"P2P_EVENT_TITLE_MAX"`
	EventTimeMaxLength  int   `env:"P2P_EVENT_TIME_MAX"`
	MaxImageBytes       int64 `env:"P2P_MAX_IMAGE_BYTES"`
}

// ExportConfig holds iCalendar export configuration
type ExportConfig struct {
	ProductID   string `env:"P2P_ICS_PRODUCT_ID"`
	DefaultHour int    `env:"P2P_ICS_DEFAULT_HOUR"`
}

// GoogleConfig holds Google Calendar push configuration
type GoogleConfig struct {
	CredentialsFile string `env:"P2P_GOOGLE_CREDENTIALS"`
	TokenFile       string `env:"P2P_GOOGLE_TOKEN"`
	CalendarID      string `env:"P2P_GOOGLE_CALENDAR_ID"`
	TimeZone        string `env:"P2P_GOOGLE_TIMEZONE"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout     time.Duration `env:"P2P_APP_TIMEOUT"`
	Verbose     bool          `env:"P2P_APP_VERBOSE"`
	Environment string        `env:"P2P_ENV"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDir := filepath.Join(homeDir, ".paper2plan")

	return &Config{
		Database: DatabaseConfig{
			Dir:            defaultDir,
			Filename:       "paper2plan.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Server: ServerConfig{
			Port:            3001,
			CORSOrigin:      "http://localhost:5173",
			RateLimitWindow: 15 * time.Minute,
			RateLimitMax:    100,
			BodyLimit:       16 * 1024 * 1024,
			ShutdownTimeout: 10 * time.Second,
		},
		AI: AIConfig{
			Provider:       "gemini",
			RequestTimeout: 60 * time.Second,
		},
		Cache: CacheConfig{
			TTL:    24 * time.Hour,
			Prefix: "p2p:estimate:",
		},
		Timer: TimerConfig{
			TickInterval: time.Second,
		},
		Validation: ValidationConfig{
			TaskTitleMaxLength:  200,
			EventTitleMaxLength: 100,
			EventTimeMaxLength:  50,
			MaxImageBytes:       10 * 1024 * 1024,
		},
		Export: ExportConfig{
			ProductID:   "-//Paper2Plan//EN",
			DefaultHour: 9,
		},
		Google: GoogleConfig{
			CredentialsFile: filepath.Join(defaultDir, "credentials.json"),
			TokenFile:       filepath.Join(defaultDir, "token.json"),
			CalendarID:      "primary",
			TimeZone:        "UTC",
		},
		Application: ApplicationConfig{
			Timeout:     60 * time.Second,
			Verbose:     false,
			Environment: EnvironmentProduction,
		},
	}
}

// Environment names understood by RepositoryFactory
const (
	EnvironmentDevelopment = "development"
	EnvironmentTesting     = "testing"
	EnvironmentProduction  = "production"
)

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// GetWriteTimeout returns the database write timeout
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Database.WriteTimeout
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if dir := os.Getenv("P2P_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("P2P_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("P2P_DB_QUERY_TIMEOUT"); timeout != "" {
		c.Database.QueryTimeout = ParseDurationWithFallback(timeout, c.Database.QueryTimeout)
	}
	if timeout := os.Getenv("P2P_DB_WRITE_TIMEOUT"); timeout != "" {
		c.Database.WriteTimeout = ParseDurationWithFallback(timeout, c.Database.WriteTimeout)
	}
	if perms := os.Getenv("P2P_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(perms, 8, c.Database.DirPermissions)
	}

	// Server configuration (unprefixed names, shared with the web client tooling)
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Port = ParseIntWithFallback(port, c.Server.Port)
	}
	if origin := os.Getenv("CORS_ORIGIN"); origin != "" {
		c.Server.CORSOrigin = origin
	}
	if window := os.Getenv("RATE_LIMIT_WINDOW_MS"); window != "" {
		if ms, err := strconv.Atoi(window); err == nil {
			c.Server.RateLimitWindow = time.Duration(ms) * time.Millisecond
		}
	}
	if maxReq := os.Getenv("RATE_LIMIT_MAX_REQUESTS"); maxReq != "" {
		c.Server.RateLimitMax = ParseIntWithFallback(maxReq, c.Server.RateLimitMax)
	}
	if limit := os.Getenv("P2P_BODY_LIMIT"); limit != "" {
		c.Server.BodyLimit = ParseIntWithFallback(limit, c.Server.BodyLimit)
	}
	if timeout := os.Getenv("P2P_SHUTDOWN_TIMEOUT"); timeout != "" {
		c.Server.ShutdownTimeout = ParseDurationWithFallback(timeout, c.Server.ShutdownTimeout)
	}

	// AI configuration
	if provider := os.Getenv("AI_PROVIDER"); provider != "" {
		c.AI.Provider = strings.ToLower(provider)
	}
	if key := os.Getenv("AI_API_KEY"); key != "" {
		c.AI.APIKey = key
	} else if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.AI.APIKey = key
	}
	if baseURL := os.Getenv("AI_BASE_URL"); baseURL != "" {
		c.AI.BaseURL = baseURL
	}
	if model := os.Getenv("AI_MODEL"); model != "" {
		c.AI.Model = model
	}
	if timeout := os.Getenv("P2P_AI_TIMEOUT"); timeout != "" {
		c.AI.RequestTimeout = ParseDurationWithFallback(timeout, c.AI.RequestTimeout)
	}

	// Cache configuration
	if addr := os.Getenv("P2P_REDIS_ADDR"); addr != "" {
		c.Cache.RedisAddr = addr
	}
	if password := os.Getenv("P2P_REDIS_PASSWORD"); password != "" {
		c.Cache.RedisPassword = password
	}
	if db := os.Getenv("P2P_REDIS_DB"); db != "" {
		c.Cache.RedisDB = ParseIntWithFallback(db, c.Cache.RedisDB)
	}
	if ttl := os.Getenv("P2P_CACHE_TTL"); ttl != "" {
		c.Cache.TTL = ParseDurationWithFallback(ttl, c.Cache.TTL)
	}
	if prefix := os.Getenv("P2P_CACHE_PREFIX"); prefix != "" {
		c.Cache.Prefix = prefix
	}

	// Timer configuration
	if tick := os.Getenv("P2P_TIMER_TICK"); tick != "" {
		c.Timer.TickInterval = ParseDurationWithFallback(tick, c.Timer.TickInterval)
	}

	// Validation configuration
	if n := os.Getenv("P2P_TASK_TITLE_MAX"); n != "" {
		c.Validation.TaskTitleMaxLength = ParseIntWithFallback(n, c.Validation.TaskTitleMaxLength)
	}
	if n := os.Getenv("P2P_EVENT_TITLE_MAX"); n != "" {
		c.Validation.EventTitleMaxLength = ParseIntWithFallback(n, c.Validation.EventTitleMaxLength)
	}
	if n := os.Getenv("P2P_EVENT_TIME_MAX"); n != "" {
		c.Validation.EventTimeMaxLength = ParseIntWithFallback(n, c.Validation.EventTimeMaxLength)
	}
	if n := os.Getenv("P2P_MAX_IMAGE_BYTES"); n != "" {
		if b, err := strconv.ParseInt(n, 10, 64); err == nil {
			c.Validation.MaxImageBytes = b
		}
	}

	// Export configuration
	if id := os.Getenv("P2P_ICS_PRODUCT_ID"); id != "" {
		c.Export.ProductID = id
	}
	if hour := os.Getenv("P2P_ICS_DEFAULT_HOUR"); hour != "" {
		c.Export.DefaultHour = ParseIntWithFallback(hour, c.Export.DefaultHour)
	}

	// Google configuration
	if path := os.Getenv("P2P_GOOGLE_CREDENTIALS"); path != "" {
		c.Google.CredentialsFile = path
	}
	if path := os.Getenv("P2P_GOOGLE_TOKEN"); path != "" {
		c.Google.TokenFile = path
	}
	if id := os.Getenv("P2P_GOOGLE_CALENDAR_ID"); id != "" {
		c.Google.CalendarID = id
	}
	if tz := os.Getenv("P2P_GOOGLE_TIMEZONE"); tz != "" {
		c.Google.TimeZone = tz
	}

	// Application configuration
	if timeout := os.Getenv("P2P_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("P2P_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}
	if env := os.Getenv("P2P_ENV"); env != "" {
		c.Application.Environment = strings.ToLower(env)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate database configuration
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ConfigError{Field: "database.write_timeout", Message: "write timeout must be positive"}
	}

	// Validate server configuration
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return &ConfigError{Field: "server.port", Message: "port must be between 1 and 65535"}
	}
	if c.Server.RateLimitWindow <= 0 {
		return &ConfigError{Field: "server.rate_limit_window", Message: "rate limit window must be positive"}
	}
	if c.Server.RateLimitMax < 1 {
		return &ConfigError{Field: "server.rate_limit_max", Message: "rate limit must allow at least one request"}
	}
	if c.Server.BodyLimit < 1024 {
		return &ConfigError{Field: "server.body_limit", Message: "body limit must be at least 1024 bytes"}
	}

	// Validate AI configuration
	if !IsKnownProvider(c.AI.Provider) {
		return &ConfigError{Field: "ai.provider", Message: "unknown provider " + c.AI.Provider}
	}
	if c.AI.RequestTimeout <= 0 {
		return &ConfigError{Field: "ai.request_timeout", Message: "request timeout must be positive"}
	}

	// Validate timer configuration
	if c.Timer.TickInterval < time.Second {
		return &ConfigError{Field: "timer.tick_interval", Message: "tick interval must be at least one second"}
	}

	// Validate validation configuration
	if c.Validation.TaskTitleMaxLength < 1 || c.Validation.EventTitleMaxLength < 1 {
		return &ConfigError{Field: "validation.title_max_length", Message: "title limits must be at least 1"}
	}
	if c.Validation.MaxImageBytes <= 0 {
		return &ConfigError{Field: "validation.max_image_bytes", Message: "image limit must be positive"}
	}

	// Validate export configuration
	if c.Export.DefaultHour < 0 || c.Export.DefaultHour > 23 {
		return &ConfigError{Field: "export.default_hour", Message: "default hour must be between 0 and 23"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}
	switch c.Application.Environment {
	case EnvironmentDevelopment, EnvironmentTesting, EnvironmentProduction:
	default:
		return &ConfigError{Field: "application.environment", Message: "environment must be development, testing or production"}
	}

	return nil
}

// IsKnownProvider reports whether name is a supported AI provider
func IsKnownProvider(name string) bool {
	switch name {
	case "gemini", "openai", "claude", "ollama", "lmstudio", "none":
		return true
	default:
		return false
	}
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
