package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "runnable.yaml"

// FileEnv names the environment variable that overrides DefaultConfigFile.
const FileEnv = "RUNNABLE_CONFIG"

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// YAML file is optional; missing file is not an error.
func Load() (*Config, error) {
	path := DefaultConfigFile
	if v := os.Getenv(FileEnv); v != "" {
		path = v
	}
	return LoadFrom(path)
}

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV. The YAML file is optional.
func LoadFrom(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is chosen by the operator
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	// Set by the job service when it starts the agent container.
	setString(&cfg.Ollama.URL, "OLLAMA_API")
	setString(&cfg.Ollama.Model, "OLLAMA_MODEL")
	setDuration(&cfg.Ollama.Timeout, "RUNNABLE_OLLAMA_TIMEOUT")

	setString(&cfg.Output.Dir, "RUNNABLE_OUTPUT_DIR")
	setString(&cfg.Output.Extension, "RUNNABLE_OUTPUT_EXT")
	setString(&cfg.Output.OnCollision, "RUNNABLE_ON_COLLISION")

	setBool(&cfg.KeepAlive.Enabled, "RUNNABLE_KEEP_ALIVE")
	setDuration(&cfg.KeepAlive.Duration, "RUNNABLE_KEEP_ALIVE_DURATION")

	setString(&cfg.Logging.Level, "RUNNABLE_LOG_LEVEL")
	setString(&cfg.Logging.Format, "RUNNABLE_LOG_FORMAT")
	setString(&cfg.Logging.Service, "RUNNABLE_LOG_SERVICE")

	setString(&cfg.Telemetry.OTLPEndpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")
	setString(&cfg.Telemetry.ServiceName, "RUNNABLE_OTEL_SERVICE")
}

// validate checks that required fields are set.
func validate(cfg *Config) error {
	if cfg.Ollama.URL == "" {
		return errors.New("ollama.url is required")
	}
	if cfg.Ollama.Model == "" {
		return errors.New("ollama.model is required")
	}
	if cfg.Ollama.Timeout <= 0 {
		return errors.New("ollama.timeout must be > 0")
	}
	if cfg.Output.Dir == "" {
		return errors.New("output.dir is required")
	}
	switch cfg.Output.OnCollision {
	case CollisionOverwrite, CollisionUniquify:
	default:
		return fmt.Errorf("output.on_collision must be %q or %q, got %q",
			CollisionOverwrite, CollisionUniquify, cfg.Output.OnCollision)
	}
	for i, app := range cfg.Launcher.Apps {
		if app.Name == "" {
			return fmt.Errorf("launcher.apps[%d].name is required", i)
		}
	}
	if cfg.KeepAlive.Duration < 0 {
		return errors.New("keep_alive.duration must be >= 0")
	}
	switch cfg.Logging.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("logging.format must be %q or %q, got %q",
			FormatText, FormatJSON, cfg.Logging.Format)
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
