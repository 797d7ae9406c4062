package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader reads the configuration file and applies environment overrides.
type Loader struct {
	logger *slog.Logger
	getenv func(string) string
	loaded bool
	path   string
}

// NewLoader creates a Loader that reads the process environment.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loader{logger: logger.With("module", "config"), getenv: os.Getenv}
}

// DefaultPath returns $XDG_CONFIG_HOME/create-fullstack/config.yaml,
// falling back to the OS user config directory.
func DefaultPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "create-fullstack", "config.yaml"), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config directory: %w", err)
	}
	return filepath.Join(dir, "create-fullstack", "config.yaml"), nil
}

// Load reads path and returns the merged configuration. An empty path uses
// the CREATE_FULLSTACK_CONFIG variable or DefaultPath. Missing files yield
// defaults; invalid YAML or values are logged and replaced by defaults.
// Load never fails.
func (l *Loader) Load(path string) *Config {
	cfg := NewDefaultConfig()

	if path == "" {
		path = l.getenv(EnvPrefix + "CONFIG")
	}
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			l.logger.Warn("config path unavailable, using defaults", "error", err)
		}
		path = p
	}
	l.path = path

	if path != "" {
		fileCfg := NewDefaultConfig()
		loaded, err := loadYAMLFile(path, fileCfg)
		switch {
		case err != nil:
			l.logger.Warn("failed to load config, using defaults", "path", path, "error", err)
		case loaded:
			fillDefaults(fileCfg)
			if err := Validate(fileCfg); err != nil {
				l.logger.Warn("invalid config, using defaults", "path", path, "error", err)
			} else {
				cfg = fileCfg
				l.loaded = true
			}
		default:
			l.logger.Debug("config file not found, using defaults", "path", path)
		}
	}

	l.applyEnv(cfg)
	return cfg
}

// Loaded reports whether the last Load used a file.
func (l *Loader) Loaded() bool { return l.loaded }

// Path returns the file consulted by the last Load.
func (l *Loader) Path() string { return l.path }

// applyEnv overrides individual keys from CREATE_FULLSTACK_* variables.
// Invalid override values are ignored with a warning.
func (l *Loader) applyEnv(cfg *Config) {
	overrides := []struct {
		key string
		dst *string
	}{
		{"DIRECTORY", &cfg.Defaults.Directory},
		{"LANGUAGE", &cfg.Defaults.Language},
		{"VISIBILITY", &cfg.Defaults.Visibility},
		{"COMMIT_MESSAGE", &cfg.Git.CommitMessage},
		{"DEFAULT_BRANCH", &cfg.Git.DefaultBranch},
		{"EDITOR", &cfg.Editor},
		{"LOG_LEVEL", &cfg.LogLevel},
	}
	for _, o := range overrides {
		v := strings.TrimSpace(l.getenv(EnvPrefix + o.key))
		if v == "" {
			continue
		}
		prev := *o.dst
		*o.dst = v
		if err := Validate(cfg); err != nil {
			l.logger.Warn("ignoring invalid environment override", "variable", EnvPrefix+o.key, "error", err)
			*o.dst = prev
		}
	}

	if v := l.getenv(EnvPrefix + "NO_COLOR"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			l.logger.Warn("ignoring invalid environment override", "variable", EnvPrefix+"NO_COLOR", "error", err)
		} else {
			cfg.NoColor = b
		}
	}
	// https://no-color.org
	if l.getenv("NO_COLOR") != "" {
		cfg.NoColor = true
	}
}

// loadYAMLFile reads a YAML file and unmarshals it into target.
// Returns (true, nil) if the file was found and parsed, (false, nil) if the
// file does not exist, or (false, error) on failure.
func loadYAMLFile(path string, target any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return false, fmt.Errorf("parse %s: %w", filepath.Base(path), ErrInvalidYAML)
	}

	return true, nil
}
