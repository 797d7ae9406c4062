// Package preflight checks that the external tools a project needs are
// installed before any of them is invoked. Missing tools never abort a
// run; the pipeline skips the affected step and reports the install hint.
package preflight

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"runtime"
	"slices"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/fullstack-creator/create-fullstack/internal/core/project"
	"github.com/fullstack-creator/create-fullstack/internal/generator"
	"github.com/fullstack-creator/create-fullstack/internal/runner"
	"github.com/fullstack-creator/create-fullstack/pkg/models"
)

// Status is the outcome of a single tool check.
type Status string

const (
	StatusOK   Status = "ok"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

// versionTimeout bounds each "<tool> --version" probe.
const versionTimeout = 10 * time.Second

// Tool describes an external program and how to probe it.
type Tool struct {
	Name        string   // Binary looked up on PATH.
	Label       string   // Human name, e.g. "Node.js".
	VersionArgs []string // Arguments that print the version.
	MinVersion  string   // Semver constraint; empty means any version.
	Optional    bool     // Missing optional tools are a warning.
}

// Check is the result of probing one Tool.
type Check struct {
	Tool    Tool
	Status  Status
	Path    string
	Version string
	Detail  string
	Hint    string // Install instructions when the tool is missing or too old.
}

// Report collects the checks of one preflight run.
type Report struct {
	Checks []Check
}

// Missing reports whether name was checked and not found on PATH.
func (r *Report) Missing(name string) bool {
	c, ok := r.Check(name)
	return ok && c.Path == ""
}

// MissingOf returns the names in tools that were not found.
func (r *Report) MissingOf(tools []string) []string {
	var out []string
	for _, t := range tools {
		if r.Missing(t) {
			out = append(out, t)
		}
	}
	return out
}

// Check returns the check for name.
func (r *Report) Check(name string) (Check, bool) {
	for _, c := range r.Checks {
		if c.Tool.Name == name {
			return c, true
		}
	}
	return Check{}, false
}

// OK reports whether no check failed.
func (r *Report) OK() bool {
	return !slices.ContainsFunc(r.Checks, func(c Check) bool { return c.Status == StatusFail })
}

// Catalog returns every tool the generator may invoke on goos.
func Catalog(goos string) []Tool {
	python := generator.PythonBin(goos)
	return []Tool{
		{Name: "git", Label: "Git", VersionArgs: []string{"--version"}},
		{Name: "node", Label: "Node.js", VersionArgs: []string{"--version"}, MinVersion: ">= 18"},
		{Name: "npm", Label: "npm", VersionArgs: []string{"--version"}},
		{Name: "npx", Label: "npx", VersionArgs: []string{"--version"}},
		{Name: python, Label: "Python", VersionArgs: []string{"--version"}, MinVersion: ">= 3.8"},
		{Name: "cargo", Label: "Cargo (Rust)", VersionArgs: []string{"--version"}},
		{Name: "go", Label: "Go", VersionArgs: []string{"version"}, MinVersion: ">= 1.21"},
		{Name: "dotnet", Label: ".NET SDK", VersionArgs: []string{"--version"}},
		{Name: "gh", Label: "GitHub CLI", VersionArgs: []string{"--version"}, Optional: true},
	}
}

// ToolsFor returns the tools cfg needs on goos, in Catalog order.
func ToolsFor(cfg project.Config, goos string) []Tool {
	need := map[string]bool{"git": true}

	if cfg.HasFrontend() && !cfg.Frontend.IsNone() {
		need["node"], need["npm"] = true, true
		if cfg.Frontend == models.Angular || cfg.Frontend == models.ViteReact {
			need["npx"] = true
		}
	}
	if cfg.HasBackend() {
		switch cfg.Backend {
		case models.Express:
			need["node"], need["npm"] = true, true
		case models.FastAPI, models.Flask, models.Django:
			need[generator.PythonBin(goos)] = true
		case models.Axum:
			need["cargo"] = true
		case models.Gin:
			need["go"] = true
		case models.ASPNetCore:
			need["dotnet"] = true
		}
	}
	if cfg.Visibility != models.Skip && cfg.Visibility != "" {
		need["gh"] = true
	}

	var out []Tool
	for _, t := range Catalog(goos) {
		if need[t.Name] {
			out = append(out, t)
		}
	}
	return out
}

// Checker probes tools through a runner.Runner.
type Checker struct {
	runner runner.Runner
	goos   string
	logger *slog.Logger
}

// Option configures a Checker.
type Option func(*Checker)

// WithGOOS overrides the operating system used for install hints.
func WithGOOS(goos string) Option {
	return func(c *Checker) { c.goos = goos }
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Checker) {
		if l == nil {
			l = slog.New(slog.NewTextHandler(io.Discard, nil))
		}
		c.logger = l.With("module", "preflight")
	}
}

// NewChecker returns a Checker using r for PATH lookups and version probes.
func NewChecker(r runner.Runner, opts ...Option) *Checker {
	c := &Checker{
		runner: r,
		goos:   runtime.GOOS,
		logger: slog.Default().With("module", "preflight"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GOOS returns the operating system the checker reports for.
func (c *Checker) GOOS() string { return c.goos }

// Run checks every tool in order.
func (c *Checker) Run(ctx context.Context, tools []Tool) *Report {
	report := &Report{}
	for _, t := range tools {
		report.Checks = append(report.Checks, c.Check(ctx, t))
	}
	return report
}

// Check probes one tool. A missing required tool fails; a missing optional
// tool or one older than its minimum version warns.
func (c *Checker) Check(ctx context.Context, t Tool) Check {
	check := Check{Tool: t}

	path, err := c.runner.LookPath(t.Name)
	if err != nil {
		check.Status = StatusFail
		if t.Optional {
			check.Status = StatusWarn
		}
		check.Detail = "not found on PATH"
		check.Hint = InstallHint(t.Name, c.goos)
		c.logger.Debug("tool missing", "tool", t.Name)
		return check
	}
	check.Path = path
	check.Status = StatusOK

	probeCtx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()
	out, err := c.runner.Run(probeCtx, "", t.Name, t.VersionArgs...)
	if err != nil {
		c.logger.Debug("version probe failed", "tool", t.Name, "error", err)
		check.Detail = "version unknown"
		return check
	}

	v, err := ParseVersion(out)
	if err != nil {
		check.Detail = "version unknown"
		return check
	}
	check.Version = v.String()

	if t.MinVersion != "" {
		constraint, err := semver.NewConstraint(t.MinVersion)
		if err != nil {
			c.logger.Warn("invalid version constraint", "tool", t.Name, "constraint", t.MinVersion, "error", err)
			return check
		}
		if !constraint.Check(v) {
			check.Status = StatusWarn
			check.Detail = fmt.Sprintf("version %s does not satisfy %s", v, t.MinVersion)
			check.Hint = InstallHint(t.Name, c.goos)
		}
	}
	return check
}

var versionPattern = regexp.MustCompile(`\d+\.\d+(\.\d+)?`)

// ParseVersion extracts the first dotted version number from tool output,
// e.g. "go version go1.22.1 linux/amd64" or "v20.11.0".
func ParseVersion(output string) (*semver.Version, error) {
	m := versionPattern.FindString(output)
	if m == "" {
		return nil, fmt.Errorf("no version in %q", output)
	}
	return semver.NewVersion(m)
}
