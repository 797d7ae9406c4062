package wizard

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/fullstack-creator/create-fullstack/internal/core/project"
	"github.com/fullstack-creator/create-fullstack/internal/ui"
)

// maxAttempts bounds re-prompting for one question.
const maxAttempts = 10

// Run asks every applicable question in order and returns the finished
// configuration. Answers rejected with project.ErrInvalidInput are
// reported and the same question is asked again.
func Run(questions []Question, p Prompter, logger *slog.Logger) (project.Config, error) {
	if len(questions) == 0 {
		return project.Config{}, ErrNoQuestions
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger = logger.With("module", "wizard")

	b := project.NewBuilder()
	for _, q := range questions {
		if q.Condition != nil && !q.Condition(b) {
			logger.Debug("question skipped", "id", q.ID)
			continue
		}
		if err := ask(q, b, p, logger); err != nil {
			return project.Config{}, err
		}
	}

	cfg, err := b.Build()
	if err != nil {
		return project.Config{}, fmt.Errorf("finish configuration: %w", err)
	}
	return cfg, nil
}

func ask(q Question, b *project.Builder, p Prompter, logger *slog.Logger) error {
	prompt := Prompt{Question: q, Default: q.Default}
	if q.Options != nil {
		prompt.Options = q.Options(b)
		if prompt.Default == "" && len(prompt.Options) > 0 {
			prompt.Default = prompt.Options[0].Value
		}
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		prompt.Attempt = attempt
		answer, err := p.Ask(prompt)
		if err != nil {
			return err
		}
		err = q.Apply(b, answer)
		if err == nil {
			logger.Debug("answer accepted", "id", q.ID, "value", answer)
			return nil
		}
		if !errors.Is(err, project.ErrInvalidInput) {
			return fmt.Errorf("%s: %w", q.ID, err)
		}
		logger.Debug("answer rejected", "id", q.ID, "value", answer, "error", err)
		prompt.Error = err.Error()
	}
	return fmt.Errorf("%s: %w", q.ID, ErrTooManyAttempts)
}

// HuhPrompter renders each question as its own huh form. Each question
// runs as an independent form to avoid the huh v0.8.x YOffset scroll bug
// that occurs when multiple groups share a single viewport.
type HuhPrompter struct {
	theme      *huh.Theme
	accessible bool
}

// NewHuhPrompter returns a prompter styled with theme. Accessible mode
// replaces the TUI with plain line prompts for non-interactive stdin.
func NewHuhPrompter(theme *ui.Theme, accessible bool) *HuhPrompter {
	return &HuhPrompter{theme: newWizardTheme(theme), accessible: accessible}
}

// Ask implements Prompter.
func (h *HuhPrompter) Ask(p Prompt) (string, error) {
	q := p.Question
	desc := q.Description
	if p.Error != "" {
		desc = "✗ " + p.Error
	}

	var (
		field  huh.Field
		answer = p.Default
		yes    bool
	)
	switch q.Type {
	case QuestionTypeSelect:
		opts := make([]huh.Option[string], len(p.Options))
		for i, o := range p.Options {
			key := o.Label
			if o.Desc != "" {
				key = o.Label + " - " + o.Desc
			}
			opts[i] = huh.NewOption(key, o.Value)
		}
		field = huh.NewSelect[string]().
			Title(q.Title).
			Description(desc).
			Options(opts...).
			Value(&answer)
	case QuestionTypeConfirm:
		yes, _ = strconv.ParseBool(p.Default)
		field = huh.NewConfirm().
			Title(q.Title).
			Description(desc).
			Affirmative("Yes").
			Negative("No").
			Value(&yes)
	default:
		answer = ""
		inp := huh.NewInput().
			Title(q.Title).
			Description(desc).
			Value(&answer)
		if p.Default != "" {
			inp = inp.Placeholder(p.Default)
		}
		field = inp
	}

	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(h.theme).
		WithAccessible(h.accessible)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("wizard error: %w", err)
	}

	switch q.Type {
	case QuestionTypeConfirm:
		return strconv.FormatBool(yes), nil
	case QuestionTypeInput:
		if answer == "" {
			answer = p.Default
		}
	}
	return answer, nil
}

// newWizardTheme creates a huh.Theme from the application palette.
func newWizardTheme(th *ui.Theme) *huh.Theme {
	t := huh.ThemeBase()
	if th == nil || th.NoColor {
		return t
	}

	c := th.Colors
	primary := ui.Adaptive(c.Primary)
	secondary := ui.Adaptive(c.Secondary)
	green := ui.Adaptive(c.Success)
	red := ui.Adaptive(c.Error)
	text := ui.Adaptive(c.Text)
	muted := ui.Adaptive(c.Muted)
	border := ui.Adaptive(c.Border)

	t.Focused.Base = t.Focused.Base.BorderForeground(border)
	t.Focused.Card = t.Focused.Base
	t.Focused.Title = t.Focused.Title.Foreground(primary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(red)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(red)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(primary).SetString("▸ ")
	t.Focused.Option = t.Focused.Option.Foreground(text)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(green)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(primary)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(muted)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(secondary)
	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}).
		Background(primary)
	t.Focused.BlurredButton = t.Focused.BlurredButton.
		Foreground(text).
		Background(lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#374151"})
	t.Focused.Next = t.Focused.FocusedButton

	t.Blurred = t.Focused
	t.Blurred.Base = t.Focused.Base.BorderStyle(lipgloss.HiddenBorder())
	t.Blurred.Card = t.Blurred.Base

	t.Group.Title = t.Focused.Title
	t.Group.Description = t.Focused.Description

	return t
}
