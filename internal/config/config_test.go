package config

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	if cfg.Database.Filename != "todo.db" {
		t.Errorf("Database.Filename = %q, want %q", cfg.Database.Filename, "todo.db")
	}
	if filepath.Base(cfg.Database.Dir) != ".todo" {
		t.Errorf("Database.Dir = %q, want a .todo directory", cfg.Database.Dir)
	}
	if cfg.Database.QueryTimeout != 10*time.Second {
		t.Errorf("Database.QueryTimeout = %v, want 10s", cfg.Database.QueryTimeout)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Errorf("Logging = %+v, want info/console", cfg.Logging)
	}
	if cfg.Commands.ListDefaultFormat != "table" {
		t.Errorf("Commands.ListDefaultFormat = %q, want table", cfg.Commands.ListDefaultFormat)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid, got %v", err)
	}
}

func TestGetDatabasePath(t *testing.T) {
	cfg := NewConfig()
	cfg.Database.Dir = "/tmp/todo-test"

	if got := cfg.GetDatabasePath(); got != filepath.Join("/tmp/todo-test", "todo.db") {
		t.Errorf("GetDatabasePath() = %q", got)
	}

	cfg.Database.Filename = InMemoryDatabase
	if got := cfg.GetDatabasePath(); got != InMemoryDatabase {
		t.Errorf("GetDatabasePath() = %q, want %q", got, InMemoryDatabase)
	}
	if !cfg.IsInMemory() {
		t.Errorf("IsInMemory() should be true for %q", InMemoryDatabase)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"empty dir", func(c *Config) { c.Database.Dir = "" }, "database.dir"},
		{"empty filename", func(c *Config) { c.Database.Filename = "" }, "database.filename"},
		{"zero query timeout", func(c *Config) { c.Database.QueryTimeout = 0 }, "database.query_timeout"},
		{"negative app timeout", func(c *Config) { c.Application.Timeout = -time.Second }, "application.timeout"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"bad list format", func(c *Config) { c.Commands.ListDefaultFormat = "yaml" }, "commands.list_default_format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Validate() error = %v, want *ConfigError", err)
			}
			if cfgErr.Field != tt.wantField {
				t.Errorf("ConfigError.Field = %q, want %q", cfgErr.Field, tt.wantField)
			}
		})
	}
}

func TestConfigError_Error(t *testing.T) {
	err := &ConfigError{Field: "logging.level", Message: "must be one of: debug, info"}
	if err.Error() != "logging.level: must be one of: debug, info" {
		t.Errorf("ConfigError.Error() = %q", err.Error())
	}
}
