// Package generator scaffolds the frontend/ and backend/ subtrees of a
// project. Every framework is one Generator; the Registry maps menu
// choices to generators so new frameworks only need a registry entry.
package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/fullstack-creator/create-fullstack/internal/core/project"
	"github.com/fullstack-creator/create-fullstack/internal/runner"
	"github.com/fullstack-creator/create-fullstack/internal/template"
	"github.com/fullstack-creator/create-fullstack/pkg/models"
)

// ErrNoGenerator indicates no generator is registered for a framework.
var ErrNoGenerator = errors.New("no generator registered")

// Outcome records what a generator did, including on failure.
type Outcome struct {
	Side      models.Side
	Framework string
	Commands  []string // Command lines that ran, in order.
	Files     []string // Files written by the generator, relative to the project root.
}

// Generator scaffolds one side of a project with one framework.
type Generator interface {
	// Side reports which subtree the generator fills.
	Side() models.Side

	// Framework returns the menu label of the framework.
	Framework() string

	// Tools lists the collaborator binaries the generator invokes.
	Tools() []string

	// CreatesDir reports whether the scaffolding tool creates the side
	// directory itself and therefore runs from the project root.
	CreatesDir() bool

	// Generate scaffolds the side under root. It stops at the first failed
	// step and returns the partial Outcome together with the error; nothing
	// is rolled back.
	Generate(ctx context.Context, root string, cfg project.Config) (*Outcome, error)

	// Service describes how start scripts launch the generated service.
	Service(cfg project.Config) template.ServiceContext
}

// Deps bundles what generators need to run.
type Deps struct {
	Runner   runner.Runner
	Renderer template.Renderer
	Logger   *slog.Logger
	// GOOS selects venv layout and tool names; empty means runtime.GOOS.
	GOOS string
}

func (d Deps) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return d.Logger.With("module", "generator")
}

// Registry maps framework choices to generators.
type Registry struct {
	frontends map[models.FrontendFramework]Generator
	backends  map[models.BackendFramework]Generator
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		frontends: make(map[models.FrontendFramework]Generator),
		backends:  make(map[models.BackendFramework]Generator),
	}
}

// DefaultRegistry returns a Registry with every built-in framework.
func DefaultRegistry(d Deps) *Registry {
	r := NewRegistry()
	r.RegisterFrontend(models.ViteReact, newViteReact(d))
	r.RegisterFrontend(models.Vue, newViteTemplate(d, models.Vue, "vue"))
	r.RegisterFrontend(models.Svelte, newViteTemplate(d, models.Svelte, "svelte"))
	r.RegisterFrontend(models.Angular, newAngular(d))

	r.RegisterBackend(models.Express, newExpress(d))
	r.RegisterBackend(models.FastAPI, newFastAPI(d))
	r.RegisterBackend(models.Flask, newFlask(d))
	r.RegisterBackend(models.Django, newDjango(d))
	r.RegisterBackend(models.Axum, newAxum(d))
	r.RegisterBackend(models.Gin, newGin(d))
	r.RegisterBackend(models.ASPNetCore, newASPNetCore(d))
	return r
}

// RegisterFrontend adds or replaces the generator for a frontend framework.
func (r *Registry) RegisterFrontend(f models.FrontendFramework, g Generator) {
	r.frontends[f] = g
}

// RegisterBackend adds or replaces the generator for a backend framework.
func (r *Registry) RegisterBackend(b models.BackendFramework, g Generator) {
	r.backends[b] = g
}

// Frontend returns the generator for f.
func (r *Registry) Frontend(f models.FrontendFramework) (Generator, error) {
	g, ok := r.frontends[f]
	if !ok {
		return nil, fmt.Errorf("frontend %s: %w", f, ErrNoGenerator)
	}
	return g, nil
}

// Backend returns the generator for b.
func (r *Registry) Backend(b models.BackendFramework) (Generator, error) {
	g, ok := r.backends[b]
	if !ok {
		return nil, fmt.Errorf("backend %s: %w", b, ErrNoGenerator)
	}
	return g, nil
}

// ForConfig returns the generators a configuration needs, frontend first.
// Sides whose framework is None are left out.
func (r *Registry) ForConfig(cfg project.Config) ([]Generator, error) {
	var out []Generator
	if cfg.HasFrontend() && !cfg.Frontend.IsNone() {
		g, err := r.Frontend(cfg.Frontend)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if cfg.HasBackend() && !cfg.Backend.IsNone() {
		g, err := r.Backend(cfg.Backend)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

func (d Deps) goos() string {
	if d.GOOS != "" {
		return d.GOOS
	}
	return runtime.GOOS
}
