// Package config loads application configuration from an optional YAML
// file and MATHGEN_ environment variables. Environment variables win.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Progress backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config holds all application configuration.
type Config struct {
	OutputDir  string           `yaml:"output_dir"`
	DBPath     string           `yaml:"db_path"`
	Progress   ProgressConfig   `yaml:"progress"`
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
	Tracing    TracingConfig    `yaml:"tracing"`
	Generation GenerationConfig `yaml:"generation"`
}

// ProgressConfig selects where progress records live.
type ProgressConfig struct {
	Backend string `yaml:"backend"`
	// Dir holds file records; empty means OutputDir.
	Dir         string `yaml:"dir"`
	RedisURL    string `yaml:"redis_url"`
	RedisPrefix string `yaml:"redis_prefix"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// Render makes HTTP actions write their documents too.
	Render          bool          `yaml:"render"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Mode string `yaml:"mode"` // "dev", "prod" or "quiet"
}

// TracingConfig toggles the OpenTelemetry exporter.
type TracingConfig struct {
	Enabled bool `yaml:"enabled"`
}

// GenerationConfig holds content request settings.
type GenerationConfig struct {
	Concurrent     bool    `yaml:"concurrent"`
	ParallelGrades bool    `yaml:"parallel_grades"`
	MaxTokens      int     `yaml:"max_tokens"`
	Temperature    float64 `yaml:"temperature"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		OutputDir: "output",
		Progress: ProgressConfig{
			Backend:     BackendFile,
			RedisPrefix: "mathgen:progress:",
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{Mode: "dev"},
		Generation: GenerationConfig{
			MaxTokens:   2048,
			Temperature: 0.7,
		},
	}
}

// Load builds the configuration. path names an optional YAML file; when
// empty, MATHGEN_CONFIG is consulted.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("MATHGEN_CONFIG")
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.OutputDir = envStr("MATHGEN_OUTPUT_DIR", c.OutputDir)
	c.DBPath = envStr("MATHGEN_DB", c.DBPath)

	c.Progress.Backend = envStr("MATHGEN_PROGRESS_BACKEND", c.Progress.Backend)
	c.Progress.Dir = envStr("MATHGEN_PROGRESS_DIR", c.Progress.Dir)
	c.Progress.RedisURL = envStr("MATHGEN_REDIS_URL", c.Progress.RedisURL)
	c.Progress.RedisPrefix = envStr("MATHGEN_REDIS_PREFIX", c.Progress.RedisPrefix)

	c.Server.Host = envStr("MATHGEN_SERVER_HOST", c.Server.Host)
	c.Server.Port = envInt("MATHGEN_SERVER_PORT", c.Server.Port)
	c.Server.Render = envBool("MATHGEN_SERVER_RENDER", c.Server.Render)
	c.Server.ShutdownTimeout = envDuration("MATHGEN_SERVER_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)

	c.Log.Mode = envStr("MATHGEN_LOG_MODE", c.Log.Mode)

	c.Tracing.Enabled = envBool("OTEL_ENABLED", c.Tracing.Enabled)
	c.Tracing.Enabled = envBool("MATHGEN_TRACING_ENABLED", c.Tracing.Enabled)

	c.Generation.Concurrent = envBool("MATHGEN_CONCURRENT", c.Generation.Concurrent)
	c.Generation.ParallelGrades = envBool("MATHGEN_PARALLEL_GRADES", c.Generation.ParallelGrades)
	c.Generation.MaxTokens = envInt("MATHGEN_MAX_TOKENS", c.Generation.MaxTokens)
	c.Generation.Temperature = envFloat("MATHGEN_TEMPERATURE", c.Generation.Temperature)
}

// Validate checks values that would fail later in less obvious ways.
func (c *Config) Validate() error {
	var errs []error
	if c.OutputDir == "" {
		errs = append(errs, errors.New("output_dir must not be empty"))
	}
	switch c.Progress.Backend {
	case BackendFile, BackendSQLite:
	case BackendRedis:
		if c.Progress.RedisURL == "" {
			errs = append(errs, errors.New("MATHGEN_REDIS_URL is required for the redis progress backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("progress backend must be file, sqlite or redis, got %q", c.Progress.Backend))
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server port out of range: %d", c.Server.Port))
	}
	if c.Generation.MaxTokens <= 0 {
		errs = append(errs, errors.New("max_tokens must be positive"))
	}
	if c.Generation.Temperature < 0 || c.Generation.Temperature > 2 {
		errs = append(errs, fmt.Errorf("temperature must be within [0, 2], got %g", c.Generation.Temperature))
	}
	return errors.Join(errs...)
}

// ProgressDir is where file-backed progress records are kept.
func (c *Config) ProgressDir() string {
	if c.Progress.Dir != "" {
		return c.Progress.Dir
	}
	return c.OutputDir
}

// Addr is the server listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return strings.EqualFold(v, "true") || v == "1"
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
