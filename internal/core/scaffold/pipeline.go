package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/fullstack-creator/create-fullstack/internal/core/git"
	"github.com/fullstack-creator/create-fullstack/internal/core/project"
	"github.com/fullstack-creator/create-fullstack/internal/generator"
	"github.com/fullstack-creator/create-fullstack/internal/github"
	"github.com/fullstack-creator/create-fullstack/internal/preflight"
	"github.com/fullstack-creator/create-fullstack/internal/runner"
	"github.com/fullstack-creator/create-fullstack/internal/template"
	"github.com/fullstack-creator/create-fullstack/pkg/models"
)

// Options tune the pipeline from user configuration.
type Options struct {
	CommitMessage string // Defaults to "Initial commit".
	Editor        string // Command used by open-after; empty tries code, then the OS opener.
	GOOS          string // Defaults to runtime.GOOS.
}

// Deps are the collaborators of a Pipeline. Runner, Registry and Renderer
// are required; the rest have working defaults.
type Deps struct {
	Runner    runner.Runner
	Registry  *generator.Registry
	Renderer  template.Renderer
	Checker   *preflight.Checker
	NewRepo   func(root string) (git.Repository, error)
	NewGitHub func(root string) github.Client
	Reporter  Reporter
	Logger    *slog.Logger
	Options   Options
}

// Pipeline generates one project.
type Pipeline struct {
	deps   Deps
	opts   Options
	logger *slog.Logger
}

// New returns a Pipeline, filling in defaults for optional dependencies.
func New(d Deps) *Pipeline {
	if d.Logger == nil {
		d.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	opts := d.Options
	if opts.CommitMessage == "" {
		opts.CommitMessage = "Initial commit"
	}
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}
	if d.Checker == nil {
		d.Checker = preflight.NewChecker(d.Runner, preflight.WithGOOS(opts.GOOS), preflight.WithLogger(d.Logger))
	}
	if d.NewRepo == nil {
		logger := d.Logger
		d.NewRepo = func(root string) (git.Repository, error) {
			return git.NewManager(root, git.WithLogger(logger))
		}
	}
	if d.NewGitHub == nil {
		d.NewGitHub = func(root string) github.Client { return github.NewClient(root) }
	}
	if d.Reporter == nil {
		d.Reporter = NopReporter{}
	}
	return &Pipeline{deps: d, opts: opts, logger: d.Logger.With("module", "scaffold")}
}

// run carries the state of one Run call.
type run struct {
	p      *Pipeline
	cfg    project.Config
	root   string
	res    *Result
	report *preflight.Report
	repo   git.Repository // Set once git init succeeded.
}

// Run generates the project described by cfg. The returned Result is never
// nil. The error is non-nil only for fatal filesystem problems (wrapping
// ErrFilesystem) or context cancellation; everything else becomes a warning.
func (p *Pipeline) Run(ctx context.Context, cfg project.Config) (*Result, error) {
	r := &run{p: p, cfg: cfg, root: cfg.Root(), res: &Result{Root: cfg.Root()}}

	p.logger.Info("pipeline started", "root", r.root, "language", cfg.Language,
		"type", cfg.Type, "frontend", cfg.Frontend, "backend", cfg.Backend)

	if err := r.prepareTarget(); err != nil {
		return r.res, err
	}
	r.preflight(ctx)

	for _, side := range []models.Side{models.SideFrontend, models.SideBackend} {
		if err := r.generateSide(ctx, side); err != nil {
			return r.res, err
		}
	}

	if err := r.writeFiles(); err != nil {
		return r.res, err
	}
	r.initGit(ctx)
	r.createGitHubRepo(ctx)
	r.openProject(ctx)

	p.logger.Info("pipeline finished", "root", r.root, "warnings", len(r.res.Warnings))
	return r.res, nil
}

func (r *run) start(name, title string) {
	r.p.deps.Reporter.StepStarted(name, title)
}

func (r *run) finish(s StepResult) {
	r.res.Steps = append(r.res.Steps, s)
	r.p.deps.Reporter.StepFinished(s)
	r.p.logger.Debug("step finished", "step", s.Name, "status", s.Status, "detail", s.Detail)
}

// record stores a step the user did not ask for without reporting it.
func (r *run) record(s StepResult) {
	r.res.Steps = append(r.res.Steps, s)
}

func (r *run) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.res.Warnings = append(r.res.Warnings, msg)
	// The summary shows warnings; the log only records them.
	r.p.logger.Info("warning", "message", msg)
}

// prepareTarget refuses existing content, creates the root and proves it
// is writable.
func (r *run) prepareTarget() error {
	r.start(StepTarget, "Preparing "+r.root)

	if err := project.CheckTarget(r.root); err != nil {
		r.finish(StepResult{Name: StepTarget, Status: StepFailed, Detail: err.Error()})
		return fsErr("check target", r.root, err)
	}
	if err := os.MkdirAll(r.root, 0o755); err != nil {
		r.finish(StepResult{Name: StepTarget, Status: StepFailed, Detail: err.Error()})
		return fsErr("create project root", r.root, errors.Join(ErrTargetNotWritable, err))
	}
	probe, err := os.CreateTemp(r.root, ".create-fullstack-*")
	if err != nil {
		r.finish(StepResult{Name: StepTarget, Status: StepFailed, Detail: err.Error()})
		return fsErr("write project root", r.root, errors.Join(ErrTargetNotWritable, err))
	}
	_ = probe.Close()
	_ = os.Remove(probe.Name())

	r.res.Dirs = append(r.res.Dirs, ".")
	r.finish(StepResult{Name: StepTarget, Status: StepDone, Detail: r.root})
	return nil
}

func (r *run) preflight(ctx context.Context) {
	r.start(StepPreflight, "Checking required tools")

	tools := preflight.ToolsFor(r.cfg, r.p.opts.GOOS)
	r.report = r.p.deps.Checker.Run(ctx, tools)

	var missing []string
	for _, c := range r.report.Checks {
		switch {
		case c.Path == "":
			missing = append(missing, c.Tool.Name)
		case c.Status == preflight.StatusWarn:
			r.warn("%s: %s. %s", c.Tool.Label, c.Detail, c.Hint)
		}
	}

	detail := fmt.Sprintf("%d tools checked", len(tools))
	if len(missing) > 0 {
		detail += ", missing: " + strings.Join(missing, ", ")
	}
	r.finish(StepResult{Name: StepPreflight, Status: StepDone, Detail: detail})
}

// generateSide runs the generator of one side. Only failing to create the
// side directory is fatal.
func (r *run) generateSide(ctx context.Context, side models.Side) error {
	name := string(side)
	dir := filepath.Join(r.root, side.Dir())

	var (
		included bool
		label    string
		gen      generator.Generator
		err      error
	)
	switch side {
	case models.SideFrontend:
		included = r.cfg.HasFrontend()
		label = r.cfg.Frontend.String()
		if included && !r.cfg.Frontend.IsNone() {
			gen, err = r.p.deps.Registry.Frontend(r.cfg.Frontend)
		}
	case models.SideBackend:
		included = r.cfg.HasBackend()
		label = r.cfg.Backend.String()
		if included && !r.cfg.Backend.IsNone() {
			gen, err = r.p.deps.Registry.Backend(r.cfg.Backend)
		}
	}
	if !included {
		return nil
	}

	r.start(name, fmt.Sprintf("Creating %s (%s)", name, label))

	ensureDir := func() error {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			r.finish(StepResult{Name: name, Status: StepFailed, Detail: err.Error()})
			return fsErr("create "+side.Dir(), dir, err)
		}
		return nil
	}
	defer func() {
		if _, statErr := os.Stat(dir); statErr == nil {
			r.res.Dirs = append(r.res.Dirs, side.Dir())
		}
	}()

	if gen == nil {
		if err := ensureDir(); err != nil {
			return err
		}
		detail := "no framework selected"
		if err != nil {
			detail = err.Error()
			r.warn("Skipping %s: %v", name, err)
		}
		r.finish(StepResult{Name: name, Status: StepSkipped, Detail: detail})
		return nil
	}

	if missing := r.report.MissingOf(gen.Tools()); len(missing) > 0 {
		if err := ensureDir(); err != nil {
			return err
		}
		hints := make([]string, 0, len(missing))
		for _, t := range missing {
			hints = append(hints, preflight.InstallHint(t, r.p.opts.GOOS))
		}
		r.warn("Skipping %s (%s): %s not found. %s", name, gen.Framework(),
			strings.Join(missing, ", "), strings.Join(hints, "; "))
		r.finish(StepResult{Name: name, Status: StepSkipped, Detail: "missing " + strings.Join(missing, ", ")})
		return nil
	}

	if !gen.CreatesDir() {
		if err := ensureDir(); err != nil {
			return err
		}
	}

	out, genErr := gen.Generate(ctx, r.root, r.cfg)
	if out != nil {
		r.res.Files = append(r.res.Files, out.Files...)
	}

	// The layout must hold even when the scaffolder failed before creating it.
	if err := ensureDir(); err != nil {
		return err
	}

	if genErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			r.finish(StepResult{Name: name, Status: StepFailed, Detail: ctxErr.Error()})
			return ctxErr
		}
		step := StepResult{Name: name, Status: StepFailed, Detail: genErr.Error()}
		var cmdErr *runner.CommandError
		if errors.As(genErr, &cmdErr) {
			step.Output = cmdErr.Output
		}
		r.warn("%s (%s) failed: %v", name, gen.Framework(), genErr)
		r.finish(step)
		return nil
	}

	r.res.Services = append(r.res.Services, gen.Service(r.cfg))
	r.finish(StepResult{Name: name, Status: StepDone, Detail: gen.Framework()})
	return nil
}

// writeFiles renders the start scripts, README and .gitignore. Write
// failures are fatal.
func (r *run) writeFiles() error {
	r.start(StepFiles, "Writing start scripts and docs")

	langs := r.cfg.Languages()
	has := func(l models.Language) bool { return slices.Contains(langs, l) }
	base := []template.ContextOption{
		template.WithStack(r.cfg.Language.String(), r.cfg.Type.String(),
			sideLabel(r.cfg.HasFrontend(), r.cfg.Frontend.String()),
			sideLabel(r.cfg.HasBackend(), r.cfg.Backend.String())),
		template.WithIgnores(has(models.JavaScript), has(models.Python), has(models.Rust),
			has(models.Go), has(models.CSharp)),
	}

	scripts := append([]template.ContextOption(nil), base...)
	for _, s := range r.res.Services {
		scripts = append(scripts, template.WithService(s))
	}
	scriptCtx := template.NewTemplateContext(r.cfg.Name, scripts...)

	docs := append([]template.ContextOption(nil), base...)
	for _, s := range r.selectedServices() {
		docs = append(docs, template.WithService(s))
	}
	docCtx := template.NewTemplateContext(r.cfg.Name, docs...)

	files := []struct {
		name string
		tmpl string
		data any
		mode os.FileMode
		crlf bool
	}{
		{"start.sh", "start.sh.tmpl", scriptCtx, 0o755, false},
		{"start.bat", "start.bat.tmpl", scriptCtx, 0o644, true},
		{"README.md", "README.md.tmpl", docCtx, 0o644, false},
		{".gitignore", "gitignore.tmpl", docCtx, 0o644, false},
	}
	for _, f := range files {
		content, err := r.p.deps.Renderer.Render(f.tmpl, f.data)
		if err != nil {
			r.finish(StepResult{Name: StepFiles, Status: StepFailed, Detail: err.Error()})
			return fsErr("render "+f.name, r.root, err)
		}
		if f.crlf {
			content = template.CRLF(content)
		}
		path := filepath.Join(r.root, f.name)
		if err := os.WriteFile(path, content, f.mode); err != nil {
			r.finish(StepResult{Name: StepFiles, Status: StepFailed, Detail: err.Error()})
			return fsErr("write "+f.name, path, err)
		}
		// WriteFile honours the umask; the script must be executable.
		if err := os.Chmod(path, f.mode); err != nil {
			r.finish(StepResult{Name: StepFiles, Status: StepFailed, Detail: err.Error()})
			return fsErr("chmod "+f.name, path, err)
		}
		r.res.Files = append(r.res.Files, f.name)
	}

	r.finish(StepResult{Name: StepFiles, Status: StepDone, Detail: fmt.Sprintf("%d files", len(files))})
	return nil
}

// selectedServices describes every selected framework, generated or not,
// so the README documents setup even for skipped sides.
func (r *run) selectedServices() []template.ServiceContext {
	gens, err := r.p.deps.Registry.ForConfig(r.cfg)
	if err != nil {
		return r.res.Services
	}
	out := make([]template.ServiceContext, 0, len(gens))
	for _, g := range gens {
		out = append(out, g.Service(r.cfg))
	}
	return out
}

func sideLabel(included bool, label string) string {
	if !included {
		return ""
	}
	return label
}

func (r *run) initGit(ctx context.Context) {
	r.start(StepGit, "Initializing git repository")

	if r.report.Missing("git") {
		r.warn("Skipping git: git not found. %s", preflight.InstallHint("git", r.p.opts.GOOS))
		r.finish(StepResult{Name: StepGit, Status: StepSkipped, Detail: "git not found"})
		return
	}

	fail := func(err error) {
		r.warn("git: %v", err)
		r.finish(StepResult{Name: StepGit, Status: StepFailed, Detail: err.Error()})
	}

	repo, err := r.p.deps.NewRepo(r.root)
	if err != nil {
		fail(err)
		return
	}
	if err := repo.Init(ctx); err != nil {
		fail(err)
		return
	}
	r.repo = repo
	if err := r.removeNestedRepos(); err != nil {
		fail(err)
		return
	}
	if err := repo.AddAll(ctx); err != nil {
		fail(err)
		return
	}
	if err := repo.Commit(ctx, r.p.opts.CommitMessage); err != nil {
		fail(err)
		return
	}
	r.finish(StepResult{Name: StepGit, Status: StepDone, Detail: r.p.opts.CommitMessage})
}

// removeNestedRepos deletes .git directories a scaffolder left inside a
// side directory. git add refuses a nested repository without commits and
// would record one with commits as an empty gitlink.
func (r *run) removeNestedRepos() error {
	for _, side := range []models.Side{models.SideFrontend, models.SideBackend} {
		nested := filepath.Join(r.root, side.Dir(), ".git")
		if _, err := os.Lstat(nested); err != nil {
			continue
		}
		if err := os.RemoveAll(nested); err != nil {
			return fmt.Errorf("remove nested repository %s: %w", filepath.ToSlash(filepath.Join(side.Dir(), ".git")), err)
		}
		r.p.logger.Info("removed nested repository", "dir", side.Dir())
	}
	return nil
}

func (r *run) createGitHubRepo(ctx context.Context) {
	if r.cfg.Visibility == models.Skip || r.cfg.Visibility == "" {
		r.record(StepResult{Name: StepGitHub, Status: StepSkipped, Detail: "not requested"})
		return
	}
	r.start(StepGitHub, "Creating GitHub repository")

	skip := func(detail string) {
		r.finish(StepResult{Name: StepGitHub, Status: StepSkipped, Detail: detail})
	}

	if r.repo == nil || !r.repo.HasCommits(ctx) {
		r.warn("Skipping GitHub repository: the initial commit was not created")
		skip("no initial commit")
		return
	}

	gh := r.p.deps.NewGitHub(r.root)
	if !gh.Available() {
		r.warn("Skipping GitHub repository: gh not found. %s", preflight.InstallHint("gh", r.p.opts.GOOS))
		skip("gh not found")
		return
	}
	if err := gh.IsAuthenticated(ctx); err != nil {
		r.warn("Skipping GitHub repository: gh is not logged in. Run gh auth login, then gh repo create %s --%s --source . --push",
			r.cfg.Name, r.cfg.Visibility)
		skip("gh not authenticated")
		return
	}

	url, err := gh.RepoCreate(ctx, github.RepoCreateOptions{
		Name:       r.cfg.Name,
		Visibility: r.cfg.Visibility,
		Push:       true,
	})
	if err != nil {
		r.warn("GitHub repository: %v", err)
		r.finish(StepResult{Name: StepGitHub, Status: StepFailed, Detail: err.Error()})
		return
	}
	r.res.RepoURL = url
	r.finish(StepResult{Name: StepGitHub, Status: StepDone, Detail: url})
}

// openProject opens the root in the configured editor, VS Code, or the
// OS file browser, in that order of preference.
func (r *run) openProject(ctx context.Context) {
	if !r.cfg.OpenAfter {
		r.record(StepResult{Name: StepOpen, Status: StepSkipped, Detail: "not requested"})
		return
	}
	r.start(StepOpen, "Opening project")

	cmds := r.p.deps.Runner
	var candidates [][]string
	if fields := strings.Fields(r.p.opts.Editor); len(fields) > 0 {
		candidates = append(candidates, fields)
	}
	candidates = append(candidates, []string{"code"}, []string{osOpener(r.p.opts.GOOS)})

	for _, c := range candidates {
		if _, err := cmds.LookPath(c[0]); err != nil {
			continue
		}
		args := append(append([]string(nil), c[1:]...), r.root)
		_, err := cmds.Run(ctx, r.root, c[0], args...)
		// explorer.exe exits 1 even when the window opens.
		if err != nil && c[0] != "explorer" {
			r.warn("Could not open the project with %s: %v", c[0], err)
			r.finish(StepResult{Name: StepOpen, Status: StepFailed, Detail: err.Error()})
			return
		}
		r.finish(StepResult{Name: StepOpen, Status: StepDone, Detail: c[0]})
		return
	}

	r.warn("Could not open the project: no editor or file opener found")
	r.finish(StepResult{Name: StepOpen, Status: StepSkipped, Detail: "no opener found"})
}

func osOpener(goos string) string {
	switch goos {
	case "darwin":
		return "open"
	case "windows":
		return "explorer"
	default:
		return "xdg-open"
	}
}
