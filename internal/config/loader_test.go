package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestLoader(env map[string]string) *Loader {
	l := NewLoader(nil)
	l.getenv = func(k string) string { return env[k] }
	return l
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	l := newTestLoader(nil)
	cfg := l.Load(filepath.Join(t.TempDir(), "absent.yaml"))

	if l.Loaded() {
		t.Error("Loaded() = true for a missing file")
	}
	want := NewDefaultConfig()
	if *cfg != *want {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, want)
	}
}

func TestLoad_File(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
defaults:
  directory: ~/projects
  language: python
  visibility: private
git:
  default_branch: main
editor: zed
log_level: debug
no_color: true
`)
	l := newTestLoader(nil)
	cfg := l.Load(path)

	if !l.Loaded() || l.Path() != path {
		t.Fatalf("Loaded() = %v, Path() = %q", l.Loaded(), l.Path())
	}
	if cfg.Defaults.Directory != "~/projects" || cfg.Defaults.Language != "python" || cfg.Defaults.Visibility != "private" {
		t.Errorf("Defaults = %+v", cfg.Defaults)
	}
	if cfg.Git.DefaultBranch != "main" {
		t.Errorf("DefaultBranch = %q", cfg.Git.DefaultBranch)
	}
	if cfg.Git.CommitMessage != DefaultCommitMessage {
		t.Errorf("CommitMessage = %q, want default", cfg.Git.CommitMessage)
	}
	if cfg.Editor != "zed" || cfg.LogLevel != "debug" || !cfg.NoColor {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoad_InvalidFilesFallBack(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "defaults: [unclosed"},
		{"bad language", "defaults:\n  language: cobol\n"},
		{"bad log level", "log_level: loud\n"},
		{"unexpanded token", "git:\n  commit_message: \"${MESSAGE}\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l := newTestLoader(nil)
			cfg := l.Load(writeConfig(t, tt.content))
			if l.Loaded() {
				t.Error("invalid file should not count as loaded")
			}
			if *cfg != *NewDefaultConfig() {
				t.Errorf("Load() = %+v, want defaults", cfg)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "defaults:\n  language: rust\n")
	l := newTestLoader(map[string]string{
		"CREATE_FULLSTACK_LANGUAGE":       "go",
		"CREATE_FULLSTACK_LOG_LEVEL":      "shout",
		"CREATE_FULLSTACK_COMMIT_MESSAGE": "chore: scaffold",
		"CREATE_FULLSTACK_NO_COLOR":       "true",
	})
	cfg := l.Load(path)

	if cfg.Defaults.Language != "go" {
		t.Errorf("Language = %q, want env override", cfg.Defaults.Language)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, invalid override should be ignored", cfg.LogLevel)
	}
	if cfg.Git.CommitMessage != "chore: scaffold" {
		t.Errorf("CommitMessage = %q", cfg.Git.CommitMessage)
	}
	if !cfg.NoColor {
		t.Error("NoColor should be set from env")
	}
}

func TestLoad_ConfigPathFromEnv(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "editor: vim\n")
	l := newTestLoader(map[string]string{"CREATE_FULLSTACK_CONFIG": path})
	if cfg := l.Load(""); cfg.Editor != "vim" {
		t.Errorf("Editor = %q, want file from CREATE_FULLSTACK_CONFIG", cfg.Editor)
	}
}

func TestLoad_NoColorConvention(t *testing.T) {
	t.Parallel()

	l := newTestLoader(map[string]string{"NO_COLOR": "1"})
	if cfg := l.Load(filepath.Join(t.TempDir(), "none.yaml")); !cfg.NoColor {
		t.Error("NO_COLOR should disable colors")
	}
}

func TestDefaultPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	got, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "create-fullstack", "config.yaml"); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := NewDefaultConfig()
	if err := Validate(cfg); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	cfg.Defaults.Visibility = "secret"
	cfg.Git.DefaultBranch = "my branch"
	cfg.Defaults.Directory = "$HOME/src"
	err := Validate(cfg)

	var verrs *ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("Validate() error = %v, want *ValidationErrors", err)
	}
	if len(verrs.Errors) != 3 {
		t.Errorf("got %d errors, want 3: %v", len(verrs.Errors), err)
	}
	if !errors.Is(err, ErrInvalidConfig) || !errors.Is(err, ErrDynamicToken) {
		t.Errorf("error should match ErrInvalidConfig and ErrDynamicToken: %v", err)
	}
}
