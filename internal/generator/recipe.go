package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fullstack-creator/create-fullstack/internal/core/project"
	"github.com/fullstack-creator/create-fullstack/internal/runner"
	"github.com/fullstack-creator/create-fullstack/internal/template"
	"github.com/fullstack-creator/create-fullstack/pkg/models"
)

// recipe is a Generator defined as an ordered list of steps. Each framework
// constructor in this package returns one.
type recipe struct {
	deps       Deps
	side       models.Side
	framework  string
	tools      []string
	createsDir bool
	steps      func(cfg project.Config) []step
	service    func(cfg project.Config) template.ServiceContext
}

// Compile-time interface compliance check.
var _ Generator = (*recipe)(nil)

func (r *recipe) Side() models.Side { return r.side }
func (r *recipe) Framework() string { return r.framework }
func (r *recipe) Tools() []string   { return r.tools }
func (r *recipe) CreatesDir() bool  { return r.createsDir }

func (r *recipe) Service(cfg project.Config) template.ServiceContext {
	svc := r.service(cfg)
	svc.Framework = r.framework
	if svc.Dir == "" {
		svc.Dir = r.side.Dir()
	}
	return svc
}

// Generate runs the steps in order and stops at the first failure.
func (r *recipe) Generate(ctx context.Context, root string, cfg project.Config) (*Outcome, error) {
	logger := r.deps.logger()
	out := &Outcome{Side: r.side, Framework: r.framework}
	e := &stepEnv{deps: r.deps, root: root, out: out}

	logger.Info("generating", "side", r.side, "framework", r.framework, "root", root)

	for _, s := range r.steps(cfg) {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		if err := s.run(ctx, e); err != nil {
			logger.Info("generation step failed", "framework", r.framework, "step", s.desc, "error", err)
			return out, fmt.Errorf("%s: %s: %w", r.framework, s.desc, err)
		}
	}

	logger.Info("generated", "side", r.side, "framework", r.framework,
		"commands", len(out.Commands), "files", len(out.Files))
	return out, nil
}

// stepEnv is the state shared by the steps of one Generate call.
type stepEnv struct {
	deps Deps
	root string
	out  *Outcome
}

func (e *stepEnv) goos() string { return e.deps.goos() }

// step is one command or file write.
type step struct {
	desc string
	run  func(ctx context.Context, e *stepEnv) error
}

// command runs name with args in dir (relative to the project root).
func command(dir, name string, args ...string) step {
	return step{
		desc: runner.CommandLine(name, args...),
		run: func(ctx context.Context, e *stepEnv) error {
			_, err := e.deps.Runner.Run(ctx, filepath.Join(e.root, dir), name, args...)
			if err != nil {
				return err
			}
			e.out.Commands = append(e.out.Commands, runner.CommandLine(name, args...))
			return nil
		},
	}
}

// venvCommand runs a tool from the virtual environment in dir/venv.
func venvCommand(dir, tool string, args ...string) step {
	return step{
		desc: runner.CommandLine("venv/"+tool, args...),
		run: func(ctx context.Context, e *stepEnv) error {
			bin := venvBin(filepath.Join(e.root, dir, "venv"), tool, e.goos())
			_, err := e.deps.Runner.Run(ctx, filepath.Join(e.root, dir), bin, args...)
			if err != nil {
				return err
			}
			e.out.Commands = append(e.out.Commands, runner.CommandLine(bin, args...))
			return nil
		},
	}
}

// writeFile writes static content to dir/name.
func writeFile(dir, name, content string) step {
	return step{
		desc: "write " + filepath.ToSlash(filepath.Join(dir, name)),
		run: func(_ context.Context, e *stepEnv) error {
			return e.write(dir, name, []byte(content))
		},
	}
}

// renderFile renders an embedded template into dir/name.
func renderFile(dir, name, tmpl string, data any) step {
	return step{
		desc: "write " + filepath.ToSlash(filepath.Join(dir, name)),
		run: func(_ context.Context, e *stepEnv) error {
			content, err := e.deps.Renderer.Render(tmpl, data)
			if err != nil {
				return err
			}
			return e.write(dir, name, content)
		},
	}
}

// setPackageScripts merges scripts into dir/package.json.
func setPackageScripts(dir string, scripts map[string]string) step {
	return step{
		desc: "update " + filepath.ToSlash(filepath.Join(dir, "package.json")) + " scripts",
		run: func(_ context.Context, e *stepEnv) error {
			path := filepath.Join(e.root, dir, "package.json")
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read package.json: %w", err)
			}

			var pkg map[string]any
			if err := json.Unmarshal(data, &pkg); err != nil {
				return fmt.Errorf("parse package.json: %w", err)
			}
			existing, _ := pkg["scripts"].(map[string]any)
			if existing == nil {
				existing = map[string]any{}
			}
			for k, v := range scripts {
				existing[k] = v
			}
			pkg["scripts"] = existing

			out, err := json.MarshalIndent(pkg, "", "  ")
			if err != nil {
				return fmt.Errorf("encode package.json: %w", err)
			}
			return e.write(dir, "package.json", append(out, '\n'))
		},
	}
}

func (e *stepEnv) write(dir, name string, content []byte) error {
	path := filepath.Join(e.root, dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", name, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	e.out.Files = append(e.out.Files, filepath.ToSlash(filepath.Join(dir, name)))
	return nil
}

// venvBin returns the path of a tool inside a Python virtual environment.
func venvBin(venv, tool, goos string) string {
	if goos == "windows" {
		return filepath.Join(venv, "Scripts", tool+".exe")
	}
	return filepath.Join(venv, "bin", tool)
}

// PythonBin returns the name of the Python 3 interpreter on goos.
func PythonBin(goos string) string {
	if goos == "windows" {
		return "python"
	}
	return "python3"
}
