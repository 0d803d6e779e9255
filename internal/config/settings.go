package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Log backends.
const (
	LogBackendLogrus = "logrus"
	LogBackendZap    = "zap"
)

// Settings configures the CLI and HTTP surfaces around the engine.
type Settings struct {
	Server ServerSettings `yaml:"server"`
	Log    LogSettings    `yaml:"log"`
	Batch  BatchSettings  `yaml:"batch"`
	Engine EngineSettings `yaml:"engine"`
}

type ServerSettings struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
}

type LogSettings struct {
	Level   string `yaml:"level"`
	Backend string `yaml:"backend"` // logrus | zap
	Format  string `yaml:"format"`  // json | text (logrus only)
}

type BatchSettings struct {
	Concurrency int `yaml:"concurrency"`
	MaxItems    int `yaml:"max_items"`
}

type EngineSettings struct {
	Debug bool `yaml:"debug"` // log a calculation breakdown per request
}

// DefaultSettings returns the settings used when no file is given.
func DefaultSettings() Settings {
	return Settings{
		Server: ServerSettings{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			MaxBodyBytes: 1 << 20,
		},
		Log: LogSettings{
			Level:   "info",
			Backend: LogBackendLogrus,
			Format:  "json",
		},
		Batch: BatchSettings{
			Concurrency: 8,
			MaxItems:    1000,
		},
	}
}

// LoadSettings reads settings from a YAML file over the defaults. An empty
// path yields the defaults. Environment overrides are applied last.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Settings{}, fmt.Errorf("failed to read settings %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &s); err != nil {
			return Settings{}, fmt.Errorf("failed to parse settings YAML: %w", err)
		}
	}
	s.applyEnv()
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("settings validation failed: %w", err)
	}
	return s, nil
}

func (s *Settings) applyEnv() {
	s.Server.Addr = getEnv("PROFORMA_ADDR", s.Server.Addr)
	s.Log.Level = getEnv("LOG_LEVEL", s.Log.Level)
	s.Log.Backend = getEnv("LOG_BACKEND", s.Log.Backend)
}

// Validate checks the settings for values the surfaces cannot run with.
func (s Settings) Validate() error {
	if s.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if s.Server.ReadTimeout <= 0 || s.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server timeouts must be positive")
	}
	if s.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be positive")
	}
	switch strings.ToLower(s.Log.Backend) {
	case LogBackendLogrus, LogBackendZap:
	default:
		return fmt.Errorf("log.backend must be '%s' or '%s'", LogBackendLogrus, LogBackendZap)
	}
	switch strings.ToLower(s.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be 'json' or 'text'")
	}
	if s.Batch.Concurrency < 1 {
		return fmt.Errorf("batch.concurrency must be at least 1")
	}
	if s.Batch.MaxItems < 1 {
		return fmt.Errorf("batch.max_items must be at least 1")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
