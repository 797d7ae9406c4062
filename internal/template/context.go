package template

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fullstack-creator/create-fullstack/pkg/version"
)

// ServiceContext describes one service launched by the start scripts.
type ServiceContext struct {
	Name           string   // "Frontend" or "Backend"
	Framework      string   // Menu label, e.g. "FastAPI"
	Dir            string   // Directory relative to the project root.
	Port           int      // Conventional port.
	UnixCommand    string   // Command run in Dir by start.sh.
	WindowsCommand string   // Command run in Dir by start.bat.
	VenvUnix       string   // Activation script sourced before UnixCommand, if any.
	VenvWindows    string   // Activation script called before WindowsCommand, if any.
	Setup          []string // Commands shown in the README setup section.
}

// TemplateContext provides data for rendering project-level files.
// All fields are exported for use with Go's text/template package.
type TemplateContext struct {
	ProjectName string
	DisplayName string
	Language    string
	ProjectType string
	Frontend    string
	Backend     string
	Services    []ServiceContext

	// .gitignore sections
	IgnoreNode   bool
	IgnorePython bool
	IgnoreRust   bool
	IgnoreGo     bool
	IgnoreDotnet bool

	Version     string
	GeneratedAt string
}

// ContextOption configures a TemplateContext.
type ContextOption func(*TemplateContext)

// WithService appends a service to the start scripts and README.
func WithService(s ServiceContext) ContextOption {
	return func(c *TemplateContext) {
		c.Services = append(c.Services, s)
	}
}

// WithStack records the menu labels of the chosen stack.
func WithStack(lang, projectType, frontend, backend string) ContextOption {
	return func(c *TemplateContext) {
		c.Language = lang
		c.ProjectType = projectType
		c.Frontend = frontend
		c.Backend = backend
	}
}

// WithIgnores selects the .gitignore sections to render.
func WithIgnores(node, python, rust, golang, dotnet bool) ContextOption {
	return func(c *TemplateContext) {
		c.IgnoreNode = node
		c.IgnorePython = python
		c.IgnoreRust = rust
		c.IgnoreGo = golang
		c.IgnoreDotnet = dotnet
	}
}

// NewTemplateContext builds a context for the named project.
func NewTemplateContext(projectName string, opts ...ContextOption) *TemplateContext {
	c := &TemplateContext{
		ProjectName: projectName,
		DisplayName: DisplayName(projectName),
		Version:     version.GetVersion(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DisplayName turns a directory-style name into a title: "my-cool_app"
// becomes "My Cool App".
func DisplayName(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || r == '.' || r == ' '
	})
	if len(words) == 0 {
		return name
	}
	return cases.Title(language.Und).String(strings.Join(words, " "))
}
