package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "TODO"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config     *Config
	configFile string
	envFile    string
}

// NewLoader creates a new configuration loader reading ~/.todo/config.toml
// (or $TODO_CONFIG) and ./.env.
func NewLoader() *Loader {
	return &Loader{
		config:  NewConfig(),
		envFile: ".env",
	}
}

// WithConfigFile sets the TOML file to read. An empty path disables it.
func (l *Loader) WithConfigFile(path string) *Loader {
	l.configFile = path
	return l
}

// WithEnvFile sets the dotenv file to read. An empty path disables it.
func (l *Loader) WithEnvFile(path string) *Loader {
	l.envFile = path
	return l
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Populate the process environment from the .env file
// 3. Override with the TOML config file
// 4. Override with TODO_* environment variables
// 5. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	// Step 1: Start with defaults (already done in NewConfig)

	// Step 2: .env only fills variables that are not already set
	if err := l.loadEnvFile(); err != nil {
		return nil, err
	}

	env := newEnvironment()

	// Step 3: Load the config file
	if err := l.loadConfigFile(l.resolveConfigFile(env)); err != nil {
		return nil, err
	}

	// Step 4: Load from environment variables
	l.loadFromEnvironment(env)

	// Step 5: Validate the configuration
	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (l *Loader) loadEnvFile() error {
	if l.envFile == "" {
		return nil
	}
	if err := godotenv.Load(l.envFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading env file %s: %w", l.envFile, err)
	}
	return nil
}

func (l *Loader) resolveConfigFile(env *viper.Viper) string {
	if l.configFile != "" {
		return l.configFile
	}
	if path := env.GetString("config"); path != "" {
		return path
	}
	return DefaultConfigFile()
}

func (l *Loader) loadConfigFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	meta, err := toml.DecodeFile(path, l.config)
	if err != nil {
		return fmt.Errorf("loading config file %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return &ConfigError{Field: undecoded[0].String(), Message: "unknown key in " + path}
	}
	return nil
}

// newEnvironment returns a viper instance bound to the TODO_* variables.
func newEnvironment() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// loadFromEnvironment loads configuration from environment variables.
// Values that do not parse are ignored.
func (l *Loader) loadFromEnvironment(env *viper.Viper) {
	c := l.config

	// Database configuration
	if env.IsSet("db_dir") {
		c.Database.Dir = env.GetString("db_dir")
	}
	if env.IsSet("db_filename") {
		c.Database.Filename = env.GetString("db_filename")
	}
	if env.IsSet("db_query_timeout") {
		c.Database.QueryTimeout = ParseDurationWithFallback(env.GetString("db_query_timeout"), c.Database.QueryTimeout)
	}
	if env.IsSet("db_dir_permissions") {
		c.Database.DirPermissions = ParseUint32WithFallback(env.GetString("db_dir_permissions"), 8, c.Database.DirPermissions)
	}

	// Logging configuration
	if env.IsSet("log_level") {
		c.Logging.Level = strings.ToLower(env.GetString("log_level"))
	}
	if env.IsSet("log_format") {
		c.Logging.Format = strings.ToLower(env.GetString("log_format"))
	}
	if env.IsSet("log_file") {
		c.Logging.File = env.GetString("log_file")
	}

	// Application configuration
	if env.IsSet("app_timeout") {
		c.Application.Timeout = ParseDurationWithFallback(env.GetString("app_timeout"), c.Application.Timeout)
	}

	// Commands configuration
	if env.IsSet("list_default_format") {
		c.Commands.ListDefaultFormat = env.GetString("list_default_format")
	}
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Database overrides
	DBDir      *string
	DBFilename *string

	// Logging overrides
	LogLevel  *string
	LogFormat *string

	// Application overrides
	Timeout *time.Duration

	// Commands overrides
	ListDefaultFormat *string
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.DBDir != nil {
		config.Database.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		config.Database.Filename = *overrides.DBFilename
	}
	if overrides.LogLevel != nil {
		config.Logging.Level = *overrides.LogLevel
	}
	if overrides.LogFormat != nil {
		config.Logging.Format = *overrides.LogFormat
	}
	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.ListDefaultFormat != nil {
		config.Commands.ListDefaultFormat = *overrides.ListDefaultFormat
	}
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
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
