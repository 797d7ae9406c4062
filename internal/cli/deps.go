// Package cli provides the Cobra command tree and dependency injection
// wiring for create-fullstack. This file defines the Dependencies struct
// (Composition Root) that wires all domain modules together.
package cli

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fullstack-creator/create-fullstack/internal/cli/wizard"
	"github.com/fullstack-creator/create-fullstack/internal/config"
	"github.com/fullstack-creator/create-fullstack/internal/core/git"
	"github.com/fullstack-creator/create-fullstack/internal/core/scaffold"
	"github.com/fullstack-creator/create-fullstack/internal/generator"
	"github.com/fullstack-creator/create-fullstack/internal/github"
	"github.com/fullstack-creator/create-fullstack/internal/preflight"
	"github.com/fullstack-creator/create-fullstack/internal/runner"
	"github.com/fullstack-creator/create-fullstack/internal/template"
	"github.com/fullstack-creator/create-fullstack/internal/ui"
)

// Dependencies holds all domain-level services used by CLI commands.
// This is the Composition Root: the only place where concrete types
// are instantiated and wired together.
type Dependencies struct {
	Config     *config.Config
	ConfigPath string
	Loaded     bool // A config file was read.

	Theme    *ui.Theme
	Headless *ui.HeadlessManager
	Prompter wizard.Prompter

	Runner    runner.Runner
	Renderer  template.Renderer
	Registry  *generator.Registry
	Checker   *preflight.Checker
	NewRepo   func(root string) (git.Repository, error)
	NewGitHub func(root string) github.Client

	Logger *slog.Logger
}

// deps is the global dependencies instance, initialized by InitDependencies.
var deps *Dependencies

// InitDependencies creates and wires all domain dependencies.
// It should be called once during application startup.
func InitDependencies() {
	// Config is loaded before the real logger exists; its warnings still
	// reach stderr.
	bootLogger := newLogger(os.Stderr, config.DefaultLogLevel)
	loader := config.NewLoader(bootLogger)
	cfg := loader.Load("")

	logger := newLogger(os.Stderr, cfg.LogLevel)
	slog.SetDefault(logger)

	deps = NewDependencies(cfg, logger)
	deps.ConfigPath = loader.Path()
	deps.Loaded = loader.Loaded()
}

// NewDependencies wires the production collaborators around cfg.
func NewDependencies(cfg *config.Config, logger *slog.Logger) *Dependencies {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	headless := ui.NewHeadlessManager()
	theme := ui.NewTheme(cfg.NoColor)
	run := runner.New(logger)
	renderer := template.NewRenderer(template.Embedded())
	branch := cfg.Git.DefaultBranch

	return &Dependencies{
		Config:   cfg,
		Theme:    theme,
		Headless: headless,
		Prompter: wizard.NewHuhPrompter(theme, headless.IsHeadless()),
		Runner:   run,
		Renderer: renderer,
		Registry: generator.DefaultRegistry(generator.Deps{Runner: run, Renderer: renderer, Logger: logger}),
		Checker:  preflight.NewChecker(run, preflight.WithLogger(logger)),
		NewRepo: func(root string) (git.Repository, error) {
			return git.NewManager(root, git.WithLogger(logger), git.WithDefaultBranch(branch))
		},
		NewGitHub: func(root string) github.Client { return github.NewClient(root) },
		Logger:    logger,
	}
}

// GetDeps returns the current Dependencies instance.
// Returns nil if InitDependencies has not been called.
func GetDeps() *Dependencies {
	return deps
}

// SetDeps replaces the global dependencies (used for testing).
func SetDeps(d *Dependencies) {
	deps = d
}

// Pipeline returns a scaffold pipeline reporting to reporter.
func (d *Dependencies) Pipeline(reporter scaffold.Reporter) *scaffold.Pipeline {
	return scaffold.New(scaffold.Deps{
		Runner:    d.Runner,
		Registry:  d.Registry,
		Renderer:  d.Renderer,
		Checker:   d.Checker,
		NewRepo:   d.NewRepo,
		NewGitHub: d.NewGitHub,
		Reporter:  reporter,
		Logger:    d.Logger,
		Options: scaffold.Options{
			CommitMessage: d.Config.Git.CommitMessage,
			Editor:        d.Config.Editor,
			GOOS:          d.Checker.GOOS(),
		},
	})
}

// newLogger returns a text logger on w at the named level.
func newLogger(w io.Writer, level string) *slog.Logger {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "info":
		l = slog.LevelInfo
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}
