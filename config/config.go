// Package config loads the service configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v2"

	"nutririsk/ml"
)

const (
	ConfigPathEnv = "NUTRIRISK_CONFIG"
	ModelTypeEnv  = "NUTRIRISK_MODEL_TYPE"
	ModelPathEnv  = "NUTRIRISK_MODEL_PATH"

	DefaultConfigPath = "config.yaml"
)

type Config struct {
	HTTP  HTTPConfig  `yaml:"http"`
	Log   LogConfig   `yaml:"log"`
	Model ModelConfig `yaml:"model"`
	Cache CacheConfig `yaml:"cache"`
}

type HTTPConfig struct {
	Port           int           `yaml:"port"`
	Timeout        time.Duration `yaml:"timeout"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	MaxBodyBytes   int64         `yaml:"max_body_bytes"`
}

// LogConfig controls the zap logger. File enables a rotated JSON log in
// addition to stderr.
type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// ModelConfig points at the classifier artifact. For the remote type Path is
// the inference service base URL.
type ModelConfig struct {
	Type    string        `yaml:"type"`
	Path    string        `yaml:"path"`
	Watch   bool          `yaml:"watch"`
	Timeout time.Duration `yaml:"timeout"`
}

type CacheConfig struct {
	Size int `yaml:"size"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Port:           8080,
			Timeout:        30 * time.Second,
			AllowedOrigins: []string{"*"},
			MaxBodyBytes:   64 << 10,
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "json",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Model: ModelConfig{
			Type:    ml.TypeSVC,
			Path:    "models/svc.json",
			Watch:   true,
			Timeout: 5 * time.Second,
		},
		Cache: CacheConfig{Size: 256},
	}
}

// ResolvePath picks the flag value, then $NUTRIRISK_CONFIG, then config.yaml.
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(ConfigPathEnv); env != "" {
		return env
	}
	return DefaultConfigPath
}

// Load reads path over the defaults. A missing file at the default path is
// not an error; a missing file that was asked for explicitly is.
func Load(path string) (*Config, error) {
	cfg := Default()

	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && path == DefaultConfigPath:
	default:
		return nil, fmt.Errorf("open config: %w", err)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(ModelTypeEnv); v != "" {
		c.Model.Type = v
	}
	if v := os.Getenv(ModelPathEnv); v != "" {
		c.Model.Path = v
	}
}

func (c *Config) Validate() error {
	var problems []string
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		problems = append(problems, fmt.Sprintf("http.port %d out of range", c.HTTP.Port))
	}
	if c.HTTP.Timeout <= 0 {
		problems = append(problems, "http.timeout must be positive")
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		problems = append(problems, "http.max_body_bytes must be positive")
	}
	switch c.Model.Type {
	case ml.TypeDecisionTree, ml.TypeSVC, ml.TypeRemote:
	default:
		problems = append(problems, fmt.Sprintf("model.type %q is not one of decision_tree, svc, remote", c.Model.Type))
	}
	if strings.TrimSpace(c.Model.Path) == "" {
		problems = append(problems, "model.path is required")
	}
	if c.Cache.Size < 0 {
		problems = append(problems, "cache.size must not be negative")
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		problems = append(problems, fmt.Sprintf("log.format %q is not json or console", c.Log.Format))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}
