// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoreFile  = "file"
	StoreRedis = "redis"

	// DefaultTokenKey is the fixed name the bearer token is persisted under.
	DefaultTokenKey = "token"
)

// Options tweaks where Load looks for configuration.
type Options struct {
	// ConfigFile, when set, is read instead of searching for config.yaml.
	ConfigFile string
	// SkipEnvFile disables .env discovery.
	SkipEnvFile bool
}

func Load(opts Options) (*Config, error) {
	if !opts.SkipEnvFile {
		loadEnvFile()
	}

	v := viper.New()
	v.SetConfigType("yaml")

	// Enable ENV override like LOANOS_API_BASE_URL
	v.SetEnvPrefix("LOANOS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config %s: %w", opts.ConfigFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "loanos"))
		}

		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading base config: %w", err)
			}
		}

		v.SetConfigName(fmt.Sprintf("config.%s", env))
		_ = v.MergeInConfig() // optional per-environment overlay
	}

	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = env
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// bindEnvKeys registers every known key so AutomaticEnv also applies to keys
// absent from the YAML file.
func bindEnvKeys(v *viper.Viper) {
	for _, key := range []string{
		"app.name", "app.environment",
		"api.base_url", "api.timeout_ms", "api.endpoints",
		"session.store", "session.path", "session.key",
		"redis.address", "redis.password", "redis.db",
		"logging.level", "logging.format", "logging.output",
		"metrics.listen_address",
	} {
		_ = v.BindEnv(key)
	}
}

func loadEnvFile() {
	possiblePaths := []string{".env", "../.env"}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars resolves ${VAR} placeholders left in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal && expanded != "" {
				v.Set(key, expanded)
			}
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "loanos"
	}

	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "http://localhost:8000"
	}
	cfg.API.BaseURL = strings.TrimSuffix(cfg.API.BaseURL, "/")
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = 15000
	}

	if cfg.Session.Store == "" {
		cfg.Session.Store = StoreFile
	}
	if cfg.Session.Key == "" {
		cfg.Session.Key = DefaultTokenKey
	}
	if cfg.Session.Path == "" {
		cfg.Session.Path = defaultTokenPath()
	}

	if cfg.Redis.Address == "" {
		cfg.Redis.Address = "localhost:6379"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = defaultLogPath()
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	if !strings.HasPrefix(cfg.API.BaseURL, "http://") && !strings.HasPrefix(cfg.API.BaseURL, "https://") {
		return fmt.Errorf("api.base_url must be an http(s) URL, got %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout < 0 {
		return fmt.Errorf("api.timeout_ms must not be negative")
	}

	switch cfg.Session.Store {
	case StoreFile:
		if cfg.Session.Path == "" {
			return fmt.Errorf("session.path is required for the file store")
		}
	case StoreRedis:
		if cfg.Redis.Address == "" {
			return fmt.Errorf("redis.address is required for the redis store")
		}
	default:
		return fmt.Errorf("session.store must be %q or %q, got %q", StoreFile, StoreRedis, cfg.Session.Store)
	}

	return nil
}

func defaultTokenPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".loanos", DefaultTokenKey)
	}
	return filepath.Join(dir, "loanos", DefaultTokenKey)
}

func defaultLogPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "stderr"
	}
	return filepath.Join(dir, "loanos", "loanos.log")
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
