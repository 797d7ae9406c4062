package project

import (
	"fmt"
	"path/filepath"

	"github.com/fullstack-creator/create-fullstack/pkg/models"
)

// Config is the finalized answer set of one wizard run. It is a value type:
// generation receives a copy and nothing mutates it after Build.
type Config struct {
	Name       string                   // Project (and directory) name.
	Directory  string                   // Absolute parent directory.
	Language   models.Language          // Primary language.
	Type       models.ProjectType       // Which sides are generated.
	Frontend   models.FrontendFramework // FrontendNone when the type has no frontend.
	Backend    models.BackendFramework  // BackendNone when the type has no backend.
	Visibility models.Visibility        // GitHub repository visibility or Skip.
	OpenAfter  bool                     // Open the project once generated.
}

// Root returns the absolute path of the project directory.
func (c Config) Root() string {
	return filepath.Join(c.Directory, c.Name)
}

// HasFrontend reports whether a frontend/ subtree is generated.
func (c Config) HasFrontend() bool {
	return c.Type.HasFrontend()
}

// HasBackend reports whether a backend/ subtree is generated.
func (c Config) HasBackend() bool {
	return c.Type.HasBackend()
}

// Languages returns every language present in the project: the primary
// language, JavaScript when a frontend framework is used, and the backend's
// language. Order is stable and without duplicates.
func (c Config) Languages() []models.Language {
	seen := map[models.Language]bool{}
	var out []models.Language
	add := func(l models.Language) {
		if l != "" && !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	add(c.Language)
	if c.HasFrontend() && !c.Frontend.IsNone() {
		add(models.JavaScript)
	}
	if c.HasBackend() {
		add(c.Backend.Language())
	}
	return out
}

// Builder assembles a Config from answers given in wizard order. Each
// setter validates its answer; a rejected answer leaves the builder
// unchanged and an accepted one cannot be replaced.
type Builder struct {
	cfg Config
	set map[string]bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{set: make(map[string]bool)}
}

func (b *Builder) lock(field string) error {
	if b.set[field] {
		return fmt.Errorf("%s: %w", field, ErrFieldLocked)
	}
	return nil
}

// IsSet reports whether the named field has an accepted answer.
// Field names are "name", "directory", "language", "type", "frontend",
// "backend", "visibility" and "open_after".
func (b *Builder) IsSet(field string) bool {
	return b.set[field]
}

// Snapshot returns the answers accepted so far. Unset fields are zero.
func (b *Builder) Snapshot() Config {
	return b.cfg
}

// SetName accepts the project name.
func (b *Builder) SetName(name string) error {
	if err := b.lock("name"); err != nil {
		return err
	}
	name = NormalizeName(name)
	if err := ValidateName(name); err != nil {
		return err
	}
	b.cfg.Name = name
	b.set["name"] = true
	return nil
}

// SetDirectory accepts the parent directory. Empty means the current
// working directory.
func (b *Builder) SetDirectory(dir string) error {
	if err := b.lock("directory"); err != nil {
		return err
	}
	abs, err := ResolveDirectory(dir)
	if err != nil {
		return inputErr("directory", dir, err.Error())
	}
	b.cfg.Directory = abs
	b.set["directory"] = true
	return nil
}

// SetLanguage accepts the primary language.
func (b *Builder) SetLanguage(s string) error {
	if err := b.lock("language"); err != nil {
		return err
	}
	lang, err := models.ParseLanguage(s)
	if err != nil {
		return inputErr("language", s, "not one of the offered languages")
	}
	b.cfg.Language = lang
	b.set["language"] = true
	return nil
}

// SetProjectType accepts the project type.
func (b *Builder) SetProjectType(s string) error {
	if err := b.lock("type"); err != nil {
		return err
	}
	t, err := models.ParseProjectType(s)
	if err != nil {
		return inputErr("project type", s, "not one of the offered project types")
	}
	b.cfg.Type = t
	b.set["type"] = true
	return nil
}

// SetFrontend accepts the frontend framework. It requires a project type
// with a frontend side.
func (b *Builder) SetFrontend(s string) error {
	if err := b.lock("frontend"); err != nil {
		return err
	}
	f, err := models.ParseFrontendFramework(s)
	if err != nil {
		return inputErr("frontend framework", s, "not one of the offered frameworks")
	}
	if b.set["type"] && !b.cfg.Type.HasFrontend() && !f.IsNone() {
		return inputErr("frontend framework", s, "project type "+b.cfg.Type.String()+" has no frontend")
	}
	b.cfg.Frontend = f
	b.set["frontend"] = true
	return nil
}

// SetBackend accepts the backend framework. It requires a project type with
// a backend side and a framework written in the chosen language.
func (b *Builder) SetBackend(s string) error {
	if err := b.lock("backend"); err != nil {
		return err
	}
	fw, err := models.ParseBackendFramework(s)
	if err != nil {
		return inputErr("backend framework", s, "not one of the offered frameworks")
	}
	if b.set["type"] && !b.cfg.Type.HasBackend() && !fw.IsNone() {
		return inputErr("backend framework", s, "project type "+b.cfg.Type.String()+" has no backend")
	}
	if b.set["language"] && !models.SupportsBackend(b.cfg.Language, fw) {
		return inputErr("backend framework", s, "not offered for "+b.cfg.Language.String())
	}
	b.cfg.Backend = fw
	b.set["backend"] = true
	return nil
}

// SetVisibility accepts the GitHub visibility.
func (b *Builder) SetVisibility(s string) error {
	if err := b.lock("visibility"); err != nil {
		return err
	}
	v, err := models.ParseVisibility(s)
	if err != nil {
		return inputErr("visibility", s, "must be Public, Private or Skip")
	}
	b.cfg.Visibility = v
	b.set["visibility"] = true
	return nil
}

// SetOpenAfter accepts the open-after-creation toggle.
func (b *Builder) SetOpenAfter(open bool) error {
	if err := b.lock("open_after"); err != nil {
		return err
	}
	b.cfg.OpenAfter = open
	b.set["open_after"] = true
	return nil
}

// Build finalizes the configuration. Sides not included in the project
// type are normalized to None so the layout invariant holds downstream.
func (b *Builder) Build() (Config, error) {
	for _, field := range []string{"name", "directory", "language", "type", "visibility"} {
		if !b.set[field] {
			return Config{}, fmt.Errorf("%w: missing %s", ErrIncomplete, field)
		}
	}

	cfg := b.cfg
	if cfg.Type.HasFrontend() {
		if !b.set["frontend"] {
			return Config{}, fmt.Errorf("%w: missing frontend", ErrIncomplete)
		}
	} else {
		cfg.Frontend = models.FrontendNone
	}

	if cfg.Type.HasBackend() {
		if !b.set["backend"] {
			return Config{}, fmt.Errorf("%w: missing backend", ErrIncomplete)
		}
		if !models.SupportsBackend(cfg.Language, cfg.Backend) {
			return Config{}, inputErr("backend framework", string(cfg.Backend), "not offered for "+cfg.Language.String())
		}
	} else {
		cfg.Backend = models.BackendNone
	}

	return cfg, nil
}
