package template

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"regexp"
	"strings"
	"text/template"
)

//go:embed all:files
var embedded embed.FS

// Embedded returns the embedded template tree rooted at files/.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "files")
	if err != nil {
		// files/ is compiled in; Sub only fails on an invalid path.
		panic(err)
	}
	return sub
}

// templateFuncMap provides custom functions available in all templates.
var templateFuncMap = template.FuncMap{
	// posixPath converts Windows backslash paths to forward slashes.
	"posixPath": func(s string) string {
		return strings.ReplaceAll(s, "\\", "/")
	},
	// winPath converts forward slashes to Windows backslashes.
	"winPath": func(s string) string {
		return strings.ReplaceAll(s, "/", "\\")
	},
}

// unexpandedTokenPattern detects template actions left in rendered output.
// Shell and JavaScript ${VAR} references are legitimate in generated files
// and are not matched.
var unexpandedTokenPattern = regexp.MustCompile(`\{\{-?\s*\.?[A-Za-z_][A-Za-z0-9_.]*\s*-?\}\}`)

// Renderer renders text/template files with strict mode enabled.
type Renderer interface {
	// Render parses the named template and executes it with data.
	// Returns ErrTemplateNotFound, ErrMissingTemplateKey or
	// ErrUnexpandedToken on failure.
	Render(templateName string, data any) ([]byte, error)
}

// renderer is the concrete implementation of Renderer.
type renderer struct {
	fsys fs.FS
}

// NewRenderer creates a Renderer backed by the given filesystem.
// In production pass Embedded(); in tests use testing/fstest.MapFS.
func NewRenderer(fsys fs.FS) Renderer {
	return &renderer{fsys: fsys}
}

// Render parses and executes a template with missingkey=error.
func (r *renderer) Render(templateName string, data any) ([]byte, error) {
	content, err := fs.ReadFile(r.fsys, templateName)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, templateName)
	}

	tmpl, err := template.New(templateName).
		Funcs(templateFuncMap).
		Option("missingkey=error").
		Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("template parse %q: %w", templateName, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingTemplateKey, err)
	}

	result := buf.Bytes()
	if loc := unexpandedTokenPattern.Find(result); loc != nil {
		return nil, fmt.Errorf("%w: found %q", ErrUnexpandedToken, string(loc))
	}

	return result, nil
}

// CRLF converts LF line endings to CRLF for Windows batch files.
func CRLF(b []byte) []byte {
	normalized := bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(normalized, []byte("\n"), []byte("\r\n"))
}
