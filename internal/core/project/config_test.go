package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fullstack-creator/create-fullstack/pkg/models"
)

// newCompleteBuilder returns a builder with every answer for a fullstack
// JavaScript project accepted.
func newCompleteBuilder(t *testing.T, dir string) *Builder {
	t.Helper()
	b := NewBuilder()
	steps := []func() error{
		func() error { return b.SetName("my-app") },
		func() error { return b.SetDirectory(dir) },
		func() error { return b.SetLanguage("JavaScript") },
		func() error { return b.SetProjectType("Fullstack") },
		func() error { return b.SetFrontend("Vite + React") },
		func() error { return b.SetBackend("Express (Node.js)") },
		func() error { return b.SetVisibility("Skip") },
		func() error { return b.SetOpenAfter(false) },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	return b
}

func TestBuilder_Complete(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg, err := newCompleteBuilder(t, dir).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if cfg.Name != "my-app" {
		t.Errorf("Name = %q, want %q", cfg.Name, "my-app")
	}
	if cfg.Root() != filepath.Join(dir, "my-app") {
		t.Errorf("Root() = %q, want %q", cfg.Root(), filepath.Join(dir, "my-app"))
	}
	if cfg.Frontend != models.ViteReact || cfg.Backend != models.Express {
		t.Errorf("frameworks = %s/%s, want vite-react/express", cfg.Frontend, cfg.Backend)
	}
	if !cfg.HasFrontend() || !cfg.HasBackend() {
		t.Error("fullstack config should have both sides")
	}
}

func TestBuilder_RejectedAnswerLeavesFieldUnset(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	err := b.SetLanguage("COBOL")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("SetLanguage(COBOL) error = %v, want ErrInvalidInput", err)
	}
	var inputErr *InputError
	if !errors.As(err, &inputErr) || inputErr.Field != "language" {
		t.Errorf("expected InputError for field language, got %v", err)
	}
	if b.IsSet("language") {
		t.Error("rejected answer must not mark the field as set")
	}
	if err := b.SetLanguage("Go"); err != nil {
		t.Fatalf("retry SetLanguage(Go) error = %v", err)
	}
}

func TestBuilder_DirectoryNamingFileIsReprompted(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "hostname")
	if err := os.WriteFile(file, []byte("box\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	b := NewBuilder()
	err := b.SetDirectory(file)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("SetDirectory(file) error = %v, want ErrInvalidInput", err)
	}
	if b.IsSet("directory") {
		t.Error("a file must not be accepted as the parent directory")
	}
	if err := b.SetDirectory(dir); err != nil {
		t.Fatalf("retry SetDirectory(dir) error = %v", err)
	}

	missing := filepath.Join(dir, "not-yet")
	if got, err := ResolveDirectory(missing); err != nil || got != missing {
		t.Errorf("ResolveDirectory(missing) = %q, %v; want it accepted", got, err)
	}
	if _, err := ResolveDirectory(file); !errors.Is(err, ErrTargetNotDir) {
		t.Errorf("ResolveDirectory(file) error = %v, want ErrTargetNotDir", err)
	}
}

func TestBuilder_FieldLocked(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	if err := b.SetName("first"); err != nil {
		t.Fatal(err)
	}
	if err := b.SetName("second"); !errors.Is(err, ErrFieldLocked) {
		t.Fatalf("second SetName error = %v, want ErrFieldLocked", err)
	}
	if b.Snapshot().Name != "first" {
		t.Errorf("Name = %q, want %q", b.Snapshot().Name, "first")
	}
}

func TestBuilder_BackendMustMatchLanguage(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	_ = b.SetLanguage("Python")
	_ = b.SetProjectType("Backend only")

	if err := b.SetBackend("Express"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("SetBackend(Express) for Python error = %v, want ErrInvalidInput", err)
	}
	if err := b.SetBackend("FastAPI"); err != nil {
		t.Fatalf("SetBackend(FastAPI) error = %v", err)
	}
}

func TestBuilder_SideNotInProjectType(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	_ = b.SetProjectType("Backend only")
	if err := b.SetFrontend("Vue"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("SetFrontend(Vue) on backend-only error = %v, want ErrInvalidInput", err)
	}
	if err := b.SetFrontend("None"); err != nil {
		t.Errorf("SetFrontend(None) on backend-only error = %v", err)
	}
}

func TestBuilder_BuildIncomplete(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	_ = b.SetName("x")
	if _, err := b.Build(); !errors.Is(err, ErrIncomplete) {
		t.Fatalf("Build() error = %v, want ErrIncomplete", err)
	}

	b = NewBuilder()
	_ = b.SetName("x")
	_ = b.SetDirectory(t.TempDir())
	_ = b.SetLanguage("Go")
	_ = b.SetProjectType("Fullstack")
	_ = b.SetVisibility("Skip")
	_, err := b.Build()
	if !errors.Is(err, ErrIncomplete) || !strings.Contains(err.Error(), "frontend") {
		t.Fatalf("Build() error = %v, want missing frontend", err)
	}
}

func TestBuilder_UnselectedSideNormalizedToNone(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	_ = b.SetName("api")
	_ = b.SetDirectory(t.TempDir())
	_ = b.SetLanguage("Python")
	_ = b.SetProjectType("Backend only")
	_ = b.SetBackend("FastAPI")
	_ = b.SetVisibility("Private")

	cfg, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if cfg.Frontend != models.FrontendNone {
		t.Errorf("Frontend = %q, want none", cfg.Frontend)
	}
	if cfg.HasFrontend() {
		t.Error("backend-only config must not have a frontend")
	}
}

func TestConfig_Languages(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Language: models.Python,
		Type:     models.Fullstack,
		Frontend: models.Vue,
		Backend:  models.Django,
	}
	got := cfg.Languages()
	want := []models.Language{models.Python, models.JavaScript}
	if len(got) != len(want) {
		t.Fatalf("Languages() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Languages()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestValidateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		wantErr bool
	}{
		{"my-app", false},
		{"project_2", false},
		{"café", false},
		{"", true},
		{".", true},
		{"..", true},
		{"a/b", true},
		{`a\b`, true},
		{"what?", true},
		{"CON", true},
		{"nul.txt", true},
		{"trailing.", true},
		{"tab\tname", true},
		{strings.Repeat("a", 101), true},
	}

	for _, tt := range tests {
		err := ValidateName(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidInput) {
			t.Errorf("ValidateName(%q) error should wrap ErrInvalidInput", tt.name)
		}
	}
}

func TestNormalizeName(t *testing.T) {
	t.Parallel()

	// "e" followed by a combining acute accent normalizes to the precomposed form.
	decomposed := "  cafe\u0301 "
	if got := NormalizeName(decomposed); got != "caf\u00e9" {
		t.Errorf("NormalizeName() = %q, want %q", got, "caf\u00e9")
	}
}

func TestResolveDirectory(t *testing.T) {
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	got, err := ResolveDirectory("")
	if err != nil || got != cwd {
		t.Errorf("ResolveDirectory(\"\") = %q, %v; want %q", got, err, cwd)
	}

	home, err := os.UserHomeDir()
	if err == nil {
		got, err := ResolveDirectory("~/projects")
		if err != nil || got != filepath.Join(home, "projects") {
			t.Errorf("ResolveDirectory(~/projects) = %q, %v", got, err)
		}
	}

	got, err = ResolveDirectory("relative")
	if err != nil || !filepath.IsAbs(got) {
		t.Errorf("ResolveDirectory(relative) = %q, %v; want absolute", got, err)
	}
}

func TestCheckTarget(t *testing.T) {
	t.Parallel()

	base := t.TempDir()

	if err := CheckTarget(filepath.Join(base, "missing")); err != nil {
		t.Errorf("missing target error = %v, want nil", err)
	}

	empty := filepath.Join(base, "empty")
	if err := os.Mkdir(empty, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := CheckTarget(empty); err != nil {
		t.Errorf("empty target error = %v, want nil", err)
	}

	full := filepath.Join(base, "full")
	if err := os.MkdirAll(full, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(full, "notes.txt"), []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := CheckTarget(full); !errors.Is(err, ErrTargetNotEmpty) {
		t.Errorf("non-empty target error = %v, want ErrTargetNotEmpty", err)
	}

	file := filepath.Join(base, "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := CheckTarget(file); !errors.Is(err, ErrTargetNotDir) {
		t.Errorf("file target error = %v, want ErrTargetNotDir", err)
	}
}
