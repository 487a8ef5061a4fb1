package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// InMemoryDatabase is the filename that selects a throwaway in-memory database.
const InMemoryDatabase = ":memory:"

// Config holds all configuration options for the todo application
type Config struct {
	Database    DatabaseConfig    `toml:"database"`
	Logging     LoggingConfig     `toml:"logging"`
	Application ApplicationConfig `toml:"application"`
	Commands    CommandsConfig    `toml:"commands"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `toml:"dir" validate:"required"`
	Filename       string        `toml:"filename" validate:"required"`
	QueryTimeout   time.Duration `toml:"query_timeout" validate:"gt=0"`
	DirPermissions uint32        `toml:"dir_permissions" validate:"gt=0"`
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level  string `toml:"level" validate:"oneof=debug info warn error"`
	Format string `toml:"format" validate:"oneof=console json"`
	// File receives log output instead of stderr when set.
	File string `toml:"file"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `toml:"timeout" validate:"gt=0"`
}

// CommandsConfig holds command-specific defaults
type CommandsConfig struct {
	ListDefaultFormat string `toml:"list_default_format" validate:"oneof=table json csv"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Dir:            DefaultDir(),
			Filename:       "todo.db",
			QueryTimeout:   10 * time.Second,
			DirPermissions: 0755,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
		},
		Commands: CommandsConfig{
			ListDefaultFormat: "table",
		},
	}
}

// DefaultDir returns ~/.todo, the home of the database and config file.
func DefaultDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".todo")
}

// DefaultConfigFile returns the path of the optional TOML config file.
func DefaultConfigFile() string {
	return filepath.Join(DefaultDir(), "config.toml")
}

// IsInMemory reports whether the database lives only for the process.
func (c *Config) IsInMemory() bool {
	return c.Database.Filename == InMemoryDatabase
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	if c.IsInMemory() {
		return InMemoryDatabase
	}
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// Validate validates the configuration and returns the first error found
func (c *Config) Validate() error {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	err := v.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return &ConfigError{Field: "config", Message: err.Error()}
	}

	fe := fieldErrors[0]
	return &ConfigError{Field: fieldPath(fe.Namespace()), Message: describe(fe)}
}

// fieldPath drops the root type name from a validator namespace.
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "cannot be empty"
	case "gt":
		return "must be positive"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "is invalid"
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
