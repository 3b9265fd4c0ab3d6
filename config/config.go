package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Catalog   CatalogConfig
	LLM       LLMConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds catalog sources and the lexicon overrides
type CatalogConfig struct {
	Source              string        `mapstructure:"source"`      // CSV path
	AllowedDir          string        `mapstructure:"allowed_dir"` // request sources must resolve inside it
	DefaultJSON         string        `mapstructure:"default_json"`
	CategoryMappingJSON string        `mapstructure:"category_mapping_json"`
	KnownMaterialsJSON  string        `mapstructure:"known_materials_json"`
	CacheTTL            time.Duration `mapstructure:"cache_ttl"`
}

// LLMConfig holds text generation configuration
type LLMConfig struct {
	Provider              string        `mapstructure:"provider"` // "gemini", "openai" or "none"
	APIKey                string        `mapstructure:"api_key"`
	Model                 string        `mapstructure:"model"`
	BaseURL               string        `mapstructure:"base_url"`
	MaxAttempts           int           `mapstructure:"max_attempts"`
	BackoffBase           time.Duration `mapstructure:"backoff_base"`
	RequestsPerSecond     float64       `mapstructure:"requests_per_second"`
	Burst                 int           `mapstructure:"burst"`
	RewriteBeforeFallback bool          `mapstructure:"rewrite_before_fallback"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type     string `mapstructure:"type"` // "memory" or "redis"
	RedisURL string `mapstructure:"redis_url"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute, 0 disables
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "console" or "json"
}

// Load loads configuration from a .env file, environment variables and an
// optional config.yaml
func Load() (*Config, error) {
	v := newViper()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/stylerag/")

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return decode(v)
}

// LoadFile loads configuration from an explicit file. Environment variables
// still take precedence over file values.
func LoadFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	return decode(v)
}

func newViper() *viper.Viper {
	// .env is optional
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}

	v := viper.New()

	// Environment variable settings
	v.SetEnvPrefix("STYLERAG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unprefixed names understood for compatibility with existing deployments
	_ = v.BindEnv("llm.api_key", "STYLERAG_LLM_API_KEY", "GOOGLE_API_KEY")
	_ = v.BindEnv("llm.model", "STYLERAG_LLM_MODEL", "MODEL")
	_ = v.BindEnv("catalog.default_json", "STYLERAG_CATALOG_DEFAULT_JSON", "CATALOG")
	_ = v.BindEnv("catalog.category_mapping_json", "STYLERAG_CATALOG_CATEGORY_MAPPING_JSON", "CATEGORY_MAPPING")
	_ = v.BindEnv("catalog.known_materials_json", "STYLERAG_CATALOG_KNOWN_MATERIALS_JSON", "KNOWN_MATERIALS")

	setDefaults(v)
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	config.LLM.Provider = strings.ToLower(strings.TrimSpace(config.LLM.Provider))
	config.Cache.Type = strings.ToLower(strings.TrimSpace(config.Cache.Type))

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	// Catalog defaults (empty JSON selects the built-in values)
	v.SetDefault("catalog.source", "")
	v.SetDefault("catalog.allowed_dir", "")
	v.SetDefault("catalog.default_json", "")
	v.SetDefault("catalog.category_mapping_json", "")
	v.SetDefault("catalog.known_materials_json", "")
	v.SetDefault("catalog.cache_ttl", "10m")

	// LLM defaults
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.max_attempts", 3)
	v.SetDefault("llm.backoff_base", "500ms")
	v.SetDefault("llm.requests_per_second", 0)
	v.SetDefault("llm.burst", 1)
	v.SetDefault("llm.rewrite_before_fallback", true)

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// validate validates the configuration
func validate(config *Config) error {
	switch config.LLM.Provider {
	case "gemini", "openai":
		if config.LLM.APIKey == "" {
			return fmt.Errorf("LLM API key is required for provider %s (set STYLERAG_LLM_API_KEY or GOOGLE_API_KEY)", config.LLM.Provider)
		}
	case "none":
	default:
		return fmt.Errorf("llm provider must be 'gemini', 'openai' or 'none', got: %s", config.LLM.Provider)
	}

	if config.LLM.MaxAttempts < 1 {
		return fmt.Errorf("llm max_attempts must be at least 1, got: %d", config.LLM.MaxAttempts)
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when cache type is 'redis'")
	}

	if config.RateLimit.PerIP < 0 {
		return fmt.Errorf("ratelimit per_ip must not be negative, got: %d", config.RateLimit.PerIP)
	}

	return nil
}
