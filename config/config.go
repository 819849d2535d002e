// Package config loads schemadoc settings from a YAML file, a .env file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/lucasefe/schemadoc/introspect"
)

const (
	DefaultEngine    = introspect.EngineDB2
	DefaultOutputDir = "output"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Environment variables read by FromEnv.
const (
	EnvDatabaseURL        = "DATABASE_URL"
	EnvEngine             = "SCHEMADOC_ENGINE"
	EnvDriver             = "SCHEMADOC_DRIVER"
	EnvSchema             = "SCHEMADOC_SCHEMA"
	EnvOutputDir          = "SCHEMADOC_OUTPUT_DIR"
	EnvIncludeForeignKeys = "SCHEMADOC_INCLUDE_FOREIGN_KEYS"
	EnvExcludeTables      = "SCHEMADOC_EXCLUDE_TABLES"
	EnvLogLevel           = "SCHEMADOC_LOG_LEVEL"
	EnvLogFormat          = "SCHEMADOC_LOG_FORMAT"
)

var defaultDrivers = map[string]string{
	introspect.EngineDB2:      "go_ibm_db",
	introspect.EnginePostgres: "postgres",
	introspect.EngineMySQL:    "mysql",
}

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Export   ExportConfig   `yaml:"export"`
	Log      LogConfig      `yaml:"log"`
}

type DatabaseConfig struct {
	Engine string `yaml:"engine"`
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
	Schema string `yaml:"schema"`
}

type ExportConfig struct {
	OutputDir          string            `yaml:"outputDir"`
	IncludeForeignKeys *bool             `yaml:"includeForeignKeys"`
	ExcludeTables      []string          `yaml:"excludeTables"`
	TypeMappings       map[string]string `yaml:"typeMappings"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ForeignKeys reports whether foreign keys are exported. Unset means true.
func (e ExportConfig) ForeignKeys() bool {
	return e.IncludeForeignKeys == nil || *e.IncludeForeignKeys
}

// Load reads the optional env file and YAML file and applies environment
// overrides. Callers apply their own overrides next, then call Normalize and
// Validate.
func Load(path, envFile string) (*Config, error) {
	if err := loadEnvFile(envFile); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.FromEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadEnvFile loads envFile, or .env when envFile is empty and the file
// exists. Variables already set in the environment are kept.
func loadEnvFile(envFile string) error {
	if envFile == "" {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("load env file %s: %w", envFile, err)
	}
	return nil
}

// FromEnv overrides configuration values with the SCHEMADOC_* variables and
// DATABASE_URL.
func (c *Config) FromEnv() error {
	if v := os.Getenv(EnvDatabaseURL); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv(EnvEngine); v != "" {
		c.Database.Engine = v
	}
	if v := os.Getenv(EnvDriver); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv(EnvSchema); v != "" {
		c.Database.Schema = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.Export.OutputDir = v
	}
	if v := os.Getenv(EnvIncludeForeignKeys); v != "" {
		include, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvIncludeForeignKeys, err)
		}
		c.Export.IncludeForeignKeys = &include
	}
	if v := os.Getenv(EnvExcludeTables); v != "" {
		c.Export.ExcludeTables = SplitList(v)
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Log.Format = v
	}
	return nil
}

// Normalize fills defaults and canonicalizes values. DB2 stores unquoted
// identifiers in upper case, so the schema is upper-cased for that engine.
func (c *Config) Normalize() {
	c.Database.Engine = strings.ToLower(strings.TrimSpace(c.Database.Engine))
	if c.Database.Engine == "" {
		c.Database.Engine = DefaultEngine
	}
	if c.Database.Engine == "postgresql" {
		c.Database.Engine = introspect.EnginePostgres
	}
	if c.Database.Driver == "" {
		c.Database.Driver = defaultDrivers[c.Database.Engine]
	}

	c.Database.Schema = strings.TrimSpace(c.Database.Schema)
	if c.Database.Engine == introspect.EngineDB2 {
		c.Database.Schema = strings.ToUpper(c.Database.Schema)
	}

	if c.Export.OutputDir == "" {
		c.Export.OutputDir = DefaultOutputDir
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
	c.Log.Level = strings.ToLower(c.Log.Level)
	c.Log.Format = strings.ToLower(c.Log.Format)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if !introspect.Supported(c.Database.Engine) {
		return fmt.Errorf("database.engine: %w: %q", introspect.ErrUnknownEngine, c.Database.Engine)
	}
	if c.Database.Driver == "" {
		return errors.New("database.driver is required")
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required (or set %s)", EnvDatabaseURL)
	}
	if c.Database.Schema == "" {
		return errors.New("database.schema is required")
	}
	if c.Export.OutputDir == "" {
		return errors.New("export.outputDir is required")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// SplitList splits a comma-separated list, trimming blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
