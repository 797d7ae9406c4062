package wizard

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/fullstack-creator/create-fullstack/internal/core/project"
	"github.com/fullstack-creator/create-fullstack/internal/ui"
	"github.com/fullstack-creator/create-fullstack/pkg/models"
)

// scriptedPrompter answers questions from a queue keyed by question ID.
type scriptedPrompter struct {
	answers map[string][]string
	asked   []Prompt
}

func (s *scriptedPrompter) Ask(p Prompt) (string, error) {
	s.asked = append(s.asked, p)
	queue := s.answers[p.Question.ID]
	if len(queue) == 0 {
		return "", fmt.Errorf("no scripted answer for %q", p.Question.ID)
	}
	s.answers[p.Question.ID] = queue[1:]
	if queue[0] == "^C" {
		return "", ErrCancelled
	}
	return queue[0], nil
}

func (s *scriptedPrompter) askedIDs() []string {
	var ids []string
	for _, p := range s.asked {
		ids = append(ids, p.Question.ID)
	}
	return ids
}

func TestRun_Fullstack(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := &scriptedPrompter{answers: map[string][]string{
		"name":       {"shop"},
		"directory":  {dir},
		"language":   {"javascript"},
		"type":       {"fullstack"},
		"frontend":   {"vite-react"},
		"backend":    {"express"},
		"visibility": {"private"},
		"open_after": {"true"},
	}}

	cfg, err := Run(DefaultQuestions(Defaults{}), p, nil)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	wantOrder := []string{"name", "directory", "language", "type", "frontend", "backend", "visibility", "open_after"}
	if got := p.askedIDs(); !slices.Equal(got, wantOrder) {
		t.Errorf("question order = %v, want %v", got, wantOrder)
	}
	want := project.Config{
		Name:       "shop",
		Directory:  dir,
		Language:   models.JavaScript,
		Type:       models.Fullstack,
		Frontend:   models.ViteReact,
		Backend:    models.Express,
		Visibility: models.Private,
		OpenAfter:  true,
	}
	if cfg != want {
		t.Errorf("Run() = %+v, want %+v", cfg, want)
	}
	if cfg.Root() != filepath.Join(dir, "shop") {
		t.Errorf("Root() = %q", cfg.Root())
	}
}

func TestRun_SkipsSidesNotInType(t *testing.T) {
	t.Parallel()

	p := &scriptedPrompter{answers: map[string][]string{
		"name":       {"api"},
		"directory":  {t.TempDir()},
		"language":   {"Python"},
		"type":       {"backend"},
		"backend":    {"FastAPI"},
		"visibility": {"skip"},
		"open_after": {"false"},
	}}

	cfg, err := Run(DefaultQuestions(Defaults{}), p, nil)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if slices.Contains(p.askedIDs(), "frontend") {
		t.Error("frontend question asked for a backend-only project")
	}
	if cfg.Frontend != models.FrontendNone || cfg.Backend != models.FastAPI {
		t.Errorf("frameworks = %s/%s", cfg.Frontend, cfg.Backend)
	}
}

func TestRun_BackendOptionsFollowLanguage(t *testing.T) {
	t.Parallel()

	p := &scriptedPrompter{answers: map[string][]string{
		"name":       {"svc"},
		"directory":  {t.TempDir()},
		"language":   {"rust"},
		"type":       {"backend"},
		"backend":    {"axum"},
		"visibility": {"skip"},
		"open_after": {"false"},
	}}
	if _, err := Run(DefaultQuestions(Defaults{}), p, nil); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	for _, prompt := range p.asked {
		if prompt.Question.ID != "backend" {
			continue
		}
		var values []string
		for _, o := range prompt.Options {
			values = append(values, o.Value)
		}
		if want := []string{"axum", "none"}; !slices.Equal(values, want) {
			t.Errorf("backend options = %v, want %v", values, want)
		}
		if prompt.Default != "axum" {
			t.Errorf("backend default = %q, want first option", prompt.Default)
		}
	}
}

func TestRun_RepromptsInvalidAnswers(t *testing.T) {
	t.Parallel()

	p := &scriptedPrompter{answers: map[string][]string{
		"name":       {"", "bad/name", "CON", "good-name"},
		"directory":  {t.TempDir()},
		"language":   {"cobol", "go"},
		"type":       {"backend"},
		"backend":    {"express", "gin"},
		"visibility": {"skip"},
		"open_after": {"maybe", "no"},
	}}

	cfg, err := Run(DefaultQuestions(Defaults{}), p, nil)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if cfg.Name != "good-name" || cfg.Language != models.Go || cfg.Backend != models.Gin || cfg.OpenAfter {
		t.Errorf("cfg = %+v", cfg)
	}

	var nameAttempts []Prompt
	for _, prompt := range p.asked {
		if prompt.Question.ID == "name" {
			nameAttempts = append(nameAttempts, prompt)
		}
	}
	if len(nameAttempts) != 4 {
		t.Fatalf("name asked %d times, want 4", len(nameAttempts))
	}
	if nameAttempts[0].Error != "" {
		t.Errorf("first attempt should carry no error, got %q", nameAttempts[0].Error)
	}
	for _, a := range nameAttempts[1:] {
		if a.Error == "" {
			t.Errorf("attempt %d should explain the rejection", a.Attempt)
		}
	}
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	p := &scriptedPrompter{answers: map[string][]string{
		"name":      {"shop"},
		"directory": {"^C"},
	}}
	_, err := Run(DefaultQuestions(Defaults{}), p, nil)
	if !errors.Is(err, ErrCancelled) {
		t.Errorf("Run() error = %v, want ErrCancelled", err)
	}
}

func TestRun_GivesUpAfterMaxAttempts(t *testing.T) {
	t.Parallel()

	bad := make([]string, maxAttempts)
	p := &scriptedPrompter{answers: map[string][]string{"name": bad}}
	_, err := Run(DefaultQuestions(Defaults{}), p, nil)
	if !errors.Is(err, ErrTooManyAttempts) {
		t.Errorf("Run() error = %v, want ErrTooManyAttempts", err)
	}
}

func TestRun_NoQuestions(t *testing.T) {
	t.Parallel()
	if _, err := Run(nil, &scriptedPrompter{}, nil); !errors.Is(err, ErrNoQuestions) {
		t.Errorf("Run(nil) error = %v, want ErrNoQuestions", err)
	}
}

func TestDefaultQuestions_Defaults(t *testing.T) {
	t.Parallel()

	qs := DefaultQuestions(Defaults{Directory: "~/src", Language: "C#", Visibility: "bogus"})
	byID := map[string]Question{}
	for _, q := range qs {
		byID[q.ID] = q
	}

	tests := []struct {
		id, want string
	}{
		{"name", "my-app"},
		{"directory", "~/src"},
		{"language", "csharp"},
		{"visibility", ""}, // unknown configured values are dropped
		{"open_after", "false"},
	}
	for _, tt := range tests {
		if got := byID[tt.id].Default; got != tt.want {
			t.Errorf("%s default = %q, want %q", tt.id, got, tt.want)
		}
	}

	for _, q := range qs {
		if q.Apply == nil {
			t.Errorf("%s has no Apply", q.ID)
		}
		if q.Type == QuestionTypeSelect && len(q.Options(project.NewBuilder())) == 0 {
			t.Errorf("%s offers no options", q.ID)
		}
	}
}

func TestNewWizardTheme(t *testing.T) {
	t.Parallel()

	if newWizardTheme(ui.NewTheme(true)) == nil {
		t.Error("no-color theme is nil")
	}
	th := newWizardTheme(ui.NewTheme(false))
	if !strings.Contains(th.Focused.SelectSelector.String(), "▸") {
		t.Errorf("selector = %q", th.Focused.SelectSelector.String())
	}
}
