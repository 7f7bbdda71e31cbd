package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yigit/unirecords/internal/pkg/helpers"
)

// Cache backends
const (
	CacheBackendNone   = "none"
	CacheBackendMemory = "memory"
	CacheBackendFile   = "file"
	CacheBackendRedis  = "redis"
)

// Fallbacks for durations that fail to parse
const (
	DefaultAPITimeout      = 15 * time.Second
	DefaultCacheTTL        = 5 * time.Minute
	DefaultTokenExpiration = 24 * time.Hour
)

// Config structure represents the application configuration
type Config struct {
	API struct {
		BaseURL string `yaml:"base_url" env:"UNIRECORDS_API_URL"`
		Timeout string `yaml:"timeout" env:"UNIRECORDS_API_TIMEOUT"`
	} `yaml:"api"`

	Session struct {
		File string `yaml:"file" env:"UNIRECORDS_SESSION_FILE"`
	} `yaml:"session"`

	Cache struct {
		Backend   string `yaml:"backend" env:"UNIRECORDS_CACHE_BACKEND"`
		Dir       string `yaml:"dir" env:"UNIRECORDS_CACHE_DIR"`
		TTL       string `yaml:"ttl" env:"UNIRECORDS_CACHE_TTL"`
		RedisAddr string `yaml:"redis_addr" env:"UNIRECORDS_REDIS_ADDR"`
		RedisDB   int    `yaml:"redis_db" env:"UNIRECORDS_REDIS_DB"`
	} `yaml:"cache"`

	Output struct {
		Dir      string `yaml:"dir" env:"UNIRECORDS_OUTPUT_DIR"`
		FontPath string `yaml:"font_path" env:"UNIRECORDS_FONT_PATH"`
	} `yaml:"output"`

	MockServer struct {
		Port string `yaml:"port" env:"UNIRECORDS_MOCK_PORT"`
		Mode string `yaml:"mode" env:"UNIRECORDS_MOCK_MODE"`
		Seed int64  `yaml:"seed" env:"UNIRECORDS_MOCK_SEED"`
	} `yaml:"mock_server"`

	JWT struct {
		Secret                string `yaml:"secret" env:"UNIRECORDS_JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"UNIRECORDS_JWT_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"UNIRECORDS_JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"UNIRECORDS_LOG_LEVEL"`
		Format string `yaml:"format" env:"UNIRECORDS_LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables.
// A missing file is not an error; defaults and environment still apply.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			file, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}

			if err := yaml.Unmarshal(file, config); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	// Override with environment variables
	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// DefaultConfigPath returns ~/.config/unirecords/config.yaml, or a relative
// config.yaml when the user config dir is unknown.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(dir, "unirecords", "config.yaml")
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".unirecords-session.json"
	}
	return filepath.Join(dir, "unirecords", "session.json")
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ".unirecords-cache"
	}
	return filepath.Join(dir, "unirecords")
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.API.BaseURL = "http://localhost:8080/api"
	config.API.Timeout = "15s"

	config.Session.File = defaultSessionFile()

	config.Cache.Backend = CacheBackendFile
	config.Cache.Dir = defaultCacheDir()
	config.Cache.TTL = "5m"

	config.Output.Dir = "."

	config.MockServer.Port = "8080"
	config.MockServer.Mode = "release"
	config.MockServer.Seed = 42

	config.JWT.Secret = "unirecords-dev-secret"
	config.JWT.AccessTokenExpiration = "24h"
	config.JWT.Issuer = "unirecords.local"

	config.Logging.Level = "warn"
	config.Logging.Format = "console"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return applyEnv(reflect.ValueOf(config))
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	u, err := url.Parse(config.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api base url %q must be an absolute URL", config.API.BaseURL)
	}

	if _, err := time.ParseDuration(config.API.Timeout); err != nil {
		return fmt.Errorf("invalid api timeout format: %w", err)
	}

	if config.Session.File == "" {
		return fmt.Errorf("session file is required")
	}

	switch config.Cache.Backend {
	case CacheBackendNone, CacheBackendMemory:
	case CacheBackendFile:
		if config.Cache.Dir == "" {
			return fmt.Errorf("cache dir is required when cache backend is file")
		}
	case CacheBackendRedis:
		if config.Cache.RedisAddr == "" {
			return fmt.Errorf("redis address is required when cache backend is redis")
		}
	default:
		return fmt.Errorf("unknown cache backend %q", config.Cache.Backend)
	}

	if _, err := time.ParseDuration(config.Cache.TTL); err != nil {
		return fmt.Errorf("invalid cache ttl format: %w", err)
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	return nil
}

// APITimeout returns the parsed HTTP timeout.
func (c *Config) APITimeout() time.Duration {
	return helpers.ParseDuration(c.API.Timeout, DefaultAPITimeout)
}

// CacheTTL returns the parsed snapshot cache TTL.
func (c *Config) CacheTTL() time.Duration {
	return helpers.ParseDuration(c.Cache.TTL, DefaultCacheTTL)
}

// TokenExpiration returns the parsed mock server token lifetime.
func (c *Config) TokenExpiration() time.Duration {
	return helpers.ParseDuration(c.JWT.AccessTokenExpiration, DefaultTokenExpiration)
}

// PrettyLogs reports whether logs should use the console writer.
func (c *Config) PrettyLogs() bool {
	return strings.ToLower(c.Logging.Format) != "json"
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
