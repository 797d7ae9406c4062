package template

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/fstest"
)

func TestRendererRender(t *testing.T) {
	t.Run("successful_render", func(t *testing.T) {
		fs := fstest.MapFS{
			"README.md.tmpl": &fstest.MapFile{
				Data: []byte("# {{.ProjectName}}\n\nVersion: {{.Version}}\n"),
			},
		}
		r := NewRenderer(fs)

		data := map[string]string{
			"ProjectName": "my-app",
			"Version":     "1.0.0",
		}

		result, err := r.Render("README.md.tmpl", data)
		if err != nil {
			t.Fatalf("Render error: %v", err)
		}

		expected := "# my-app\n\nVersion: 1.0.0\n"
		if string(result) != expected {
			t.Errorf("Render result = %q, want %q", string(result), expected)
		}
	})

	t.Run("missing_key_strict_mode", func(t *testing.T) {
		fs := fstest.MapFS{
			"test.tmpl": &fstest.MapFile{
				Data: []byte("Hello {{.Name}}, port {{.Port}}"),
			},
		}
		r := NewRenderer(fs)

		_, err := r.Render("test.tmpl", map[string]string{"Name": "api"})
		if !errors.Is(err, ErrMissingTemplateKey) {
			t.Errorf("expected ErrMissingTemplateKey, got: %v", err)
		}
	})

	t.Run("nonexistent_template", func(t *testing.T) {
		r := NewRenderer(fstest.MapFS{})

		_, err := r.Render("nonexistent.tmpl", nil)
		if !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("expected ErrTemplateNotFound, got: %v", err)
		}
	})

	t.Run("leftover_action_detected", func(t *testing.T) {
		fs := fstest.MapFS{
			"nested.tmpl": &fstest.MapFile{
				Data: []byte(`{{.Inner}}`),
			},
		}
		r := NewRenderer(fs)

		_, err := r.Render("nested.tmpl", map[string]string{"Inner": "{{.Leak}}"})
		if !errors.Is(err, ErrUnexpandedToken) {
			t.Errorf("expected ErrUnexpandedToken, got: %v", err)
		}
	})

	t.Run("shell_variables_allowed", func(t *testing.T) {
		fs := fstest.MapFS{
			"sh.tmpl": &fstest.MapFile{
				Data: []byte(`kill "${PIDS[@]}"; echo $HOME {{.Name}}`),
			},
		}
		r := NewRenderer(fs)

		out, err := r.Render("sh.tmpl", map[string]string{"Name": "x"})
		if err != nil {
			t.Fatalf("Render error: %v", err)
		}
		if !strings.Contains(string(out), "${PIDS[@]}") {
			t.Errorf("shell variables should survive rendering, got %q", out)
		}
	})
}

func sampleContext() *TemplateContext {
	return NewTemplateContext("my-app",
		WithStack("JavaScript", "Fullstack", "Vite + React", "Express (Node.js)"),
		WithIgnores(true, false, false, false, false),
		WithService(ServiceContext{
			Name:           "Frontend",
			Framework:      "Vite + React",
			Dir:            "frontend",
			Port:           5173,
			UnixCommand:    "npm run dev",
			WindowsCommand: "npm run dev",
			Setup:          []string{"npm install", "npm run dev"},
		}),
		WithService(ServiceContext{
			Name:           "Backend",
			Framework:      "FastAPI",
			Dir:            "backend",
			Port:           8000,
			UnixCommand:    "uvicorn main:app --reload --port 8000",
			WindowsCommand: "uvicorn main:app --reload --port 8000",
			VenvUnix:       "venv/bin/activate",
			VenvWindows:    `venv\Scripts\activate.bat`,
			Setup:          []string{"source venv/bin/activate", "pip install -r requirements.txt"},
		}),
	)
}

func TestEmbeddedStartScript(t *testing.T) {
	r := NewRenderer(Embedded())

	out, err := r.Render("start.sh.tmpl", sampleContext())
	if err != nil {
		t.Fatalf("Render(start.sh) error: %v", err)
	}
	script := string(out)

	if !strings.HasPrefix(script, "#!/usr/bin/env bash\n") {
		t.Errorf("start.sh should start with a shebang, got %q", script[:20])
	}
	for _, want := range []string{
		`cd "frontend"`,
		"npm run dev",
		`source "venv/bin/activate"`,
		"uvicorn main:app --reload --port 8000",
		") &",
		"wait",
	} {
		if !strings.Contains(script, want) {
			t.Errorf("start.sh missing %q:\n%s", want, script)
		}
	}
	// The venv must be activated before the backend command runs.
	if strings.Index(script, "venv/bin/activate") > strings.Index(script, "uvicorn") {
		t.Error("venv activation must precede the backend command")
	}
}

func TestEmbeddedStartBat(t *testing.T) {
	r := NewRenderer(Embedded())

	out, err := r.Render("start.bat.tmpl", sampleContext())
	if err != nil {
		t.Fatalf("Render(start.bat) error: %v", err)
	}
	script := string(out)

	if !strings.HasPrefix(script, "@echo off") {
		t.Errorf("start.bat should begin with @echo off")
	}
	if !strings.Contains(script, `call venv\Scripts\activate.bat && uvicorn`) {
		t.Errorf("start.bat should activate the venv before uvicorn:\n%s", script)
	}
	if !strings.Contains(script, `start "my-app Frontend" cmd /k "cd /d frontend && npm run dev"`) {
		t.Errorf("start.bat missing frontend launch:\n%s", script)
	}
}

func TestEmbeddedStartScript_NoServices(t *testing.T) {
	r := NewRenderer(Embedded())

	out, err := r.Render("start.sh.tmpl", NewTemplateContext("empty"))
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if !strings.Contains(string(out), "No services were generated") {
		t.Errorf("expected no-services message, got:\n%s", out)
	}
}

func TestEmbeddedReadme(t *testing.T) {
	r := NewRenderer(Embedded())

	out, err := r.Render("README.md.tmpl", sampleContext())
	if err != nil {
		t.Fatalf("Render(README) error: %v", err)
	}
	readme := string(out)

	for _, want := range []string{
		"# My App",
		"**Frontend:** Vite + React",
		"## Backend Setup (FastAPI)",
		"pip install -r requirements.txt",
		"http://localhost:8000",
	} {
		if !strings.Contains(readme, want) {
			t.Errorf("README missing %q:\n%s", want, readme)
		}
	}
}

func TestEmbeddedGitignore(t *testing.T) {
	r := NewRenderer(Embedded())

	tests := []struct {
		name    string
		opt     ContextOption
		want    []string
		notWant []string
	}{
		{"node", WithIgnores(true, false, false, false, false), []string{"node_modules/", ".env"}, []string{"venv/", "target/"}},
		{"python", WithIgnores(false, true, false, false, false), []string{"venv/", "__pycache__/"}, []string{"node_modules/"}},
		{"rust", WithIgnores(false, false, true, false, false), []string{"target/"}, []string{"venv/"}},
		{"go", WithIgnores(false, false, false, true, false), []string{"bin/", "*.test"}, []string{"target/"}},
		{"dotnet", WithIgnores(false, false, false, false, true), []string{"[Oo]bj/"}, []string{"node_modules/"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Render("gitignore.tmpl", NewTemplateContext("x", tt.opt))
			if err != nil {
				t.Fatalf("Render error: %v", err)
			}
			for _, w := range tt.want {
				if !bytes.Contains(out, []byte(w)) {
					t.Errorf("gitignore missing %q", w)
				}
			}
			for _, nw := range tt.notWant {
				if bytes.Contains(out, []byte(nw)) {
					t.Errorf("gitignore should not contain %q", nw)
				}
			}
		})
	}
}

func TestEmbeddedBackendEntries(t *testing.T) {
	r := NewRenderer(Embedded())
	data := struct {
		ProjectName string
		Port        int
	}{"my-app", 5000}

	for _, name := range []string{
		"backend/express/server.js.tmpl",
		"backend/fastapi/main.py.tmpl",
		"backend/flask/app.py.tmpl",
		"backend/axum/main.rs.tmpl",
		"backend/gin/main.go.tmpl",
	} {
		out, err := r.Render(name, data)
		if err != nil {
			t.Errorf("Render(%s) error: %v", name, err)
			continue
		}
		if !bytes.Contains(out, []byte("5000")) {
			t.Errorf("%s should contain the port", name)
		}
	}
}

func TestCRLF(t *testing.T) {
	got := string(CRLF([]byte("a\nb\r\nc\n")))
	if got != "a\r\nb\r\nc\r\n" {
		t.Errorf("CRLF() = %q", got)
	}
}

func TestDisplayName(t *testing.T) {
	tests := map[string]string{
		"my-cool_app": "My Cool App",
		"api":         "Api",
		"---":         "---",
	}
	for in, want := range tests {
		if got := DisplayName(in); got != want {
			t.Errorf("DisplayName(%q) = %q, want %q", in, got, want)
		}
	}
}
