package models

import (
	"fmt"
	"slices"
)

// Side identifies one half of a generated project.
type Side string

const (
	SideFrontend Side = "frontend"
	SideBackend  Side = "backend"
)

// Dir returns the subdirectory name of the side inside the project root.
func (s Side) Dir() string {
	return string(s)
}

// FrontendFramework is the tool used to scaffold frontend/.
type FrontendFramework string

const (
	FrontendNone FrontendFramework = "none"
	ViteReact    FrontendFramework = "vite-react"
	Vue          FrontendFramework = "vue"
	Angular      FrontendFramework = "angular"
	Svelte       FrontendFramework = "svelte"
)

var frontendLabels = map[FrontendFramework]string{
	ViteReact:    "Vite + React",
	Vue:          "Vue",
	Angular:      "Angular",
	Svelte:       "Svelte",
	FrontendNone: "None",
}

// AllFrontendFrameworks returns the offered frontend frameworks in menu order.
func AllFrontendFrameworks() []FrontendFramework {
	return []FrontendFramework{ViteReact, Vue, Angular, Svelte, FrontendNone}
}

func (f FrontendFramework) String() string {
	if label, ok := frontendLabels[f]; ok {
		return label
	}
	return string(f)
}

// IsValid reports whether f is one of the offered frontend frameworks.
func (f FrontendFramework) IsValid() bool {
	_, ok := frontendLabels[f]
	return ok
}

// IsNone reports whether no frontend framework was chosen.
func (f FrontendFramework) IsNone() bool {
	return f == "" || f == FrontendNone
}

// ParseFrontendFramework accepts a frontend framework value or label.
func ParseFrontendFramework(s string) (FrontendFramework, error) {
	for _, f := range AllFrontendFrameworks() {
		if matchChoice(s, string(f), f.String()) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: frontend framework %q", ErrUnknownChoice, s)
}

// BackendFramework is the tool used to scaffold backend/.
type BackendFramework string

const (
	BackendNone BackendFramework = "none"
	Express     BackendFramework = "express"
	FastAPI     BackendFramework = "fastapi"
	Flask       BackendFramework = "flask"
	Django      BackendFramework = "django"
	Axum        BackendFramework = "axum"
	Gin         BackendFramework = "gin"
	ASPNetCore  BackendFramework = "aspnetcore"
)

var backendLabels = map[BackendFramework]string{
	Express:     "Express (Node.js)",
	FastAPI:     "FastAPI",
	Flask:       "Flask",
	Django:      "Django",
	Axum:        "Axum",
	Gin:         "Gin",
	ASPNetCore:  "ASP.NET Core",
	BackendNone: "None",
}

var backendLanguages = map[BackendFramework]Language{
	Express:    JavaScript,
	FastAPI:    Python,
	Flask:      Python,
	Django:     Python,
	Axum:       Rust,
	Gin:        Go,
	ASPNetCore: CSharp,
}

// AllBackendFrameworks returns every backend framework in menu order.
func AllBackendFrameworks() []BackendFramework {
	return []BackendFramework{Express, FastAPI, Flask, Django, Axum, Gin, ASPNetCore, BackendNone}
}

func (b BackendFramework) String() string {
	if label, ok := backendLabels[b]; ok {
		return label
	}
	return string(b)
}

// IsValid reports whether b is a known backend framework.
func (b BackendFramework) IsValid() bool {
	_, ok := backendLabels[b]
	return ok
}

// IsNone reports whether no backend framework was chosen.
func (b BackendFramework) IsNone() bool {
	return b == "" || b == BackendNone
}

// Language returns the language the backend is written in.
// BackendNone has no language and returns "".
func (b BackendFramework) Language() Language {
	return backendLanguages[b]
}

// BackendFrameworksFor returns the backend frameworks offered for a language,
// always ending with BackendNone.
func BackendFrameworksFor(lang Language) []BackendFramework {
	var out []BackendFramework
	for _, b := range AllBackendFrameworks() {
		if b.IsNone() || b.Language() == lang {
			out = append(out, b)
		}
	}
	return out
}

// SupportsBackend reports whether b may be chosen for a project in lang.
func SupportsBackend(lang Language, b BackendFramework) bool {
	return slices.Contains(BackendFrameworksFor(lang), b)
}

// ParseBackendFramework accepts a backend framework value or label.
// "Express" is accepted as shorthand for "Express (Node.js)".
func ParseBackendFramework(s string) (BackendFramework, error) {
	for _, b := range AllBackendFrameworks() {
		if matchChoice(s, string(b), b.String()) {
			return b, nil
		}
	}
	return "", fmt.Errorf("%w: backend framework %q", ErrUnknownChoice, s)
}
