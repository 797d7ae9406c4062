package wizard

import (
	"strconv"
	"strings"

	"github.com/fullstack-creator/create-fullstack/internal/core/project"
	"github.com/fullstack-creator/create-fullstack/pkg/models"
)

// Defaults pre-fills answers. Every question is still asked.
type Defaults struct {
	Name       string
	Directory  string
	Language   string
	Visibility string
}

// DefaultQuestions returns the questions in the fixed order: project name,
// directory, language, project type, frontend framework, backend framework,
// GitHub visibility and open-after-creation.
func DefaultQuestions(d Defaults) []Question {
	if d.Name == "" {
		d.Name = "my-app"
	}
	if d.Directory == "" {
		d.Directory = "."
	}
	if d.Language == "" {
		d.Language = string(models.JavaScript)
	}
	if d.Visibility == "" {
		d.Visibility = string(models.Skip)
	}

	return []Question{
		{
			ID:          "name",
			Type:        QuestionTypeInput,
			Title:       "Project name",
			Description: "Used as the directory name and the GitHub repository name.",
			Default:     d.Name,
			Apply:       (*project.Builder).SetName,
		},
		{
			ID:          "directory",
			Type:        QuestionTypeInput,
			Title:       "Parent directory",
			Description: "The project is created in a new folder inside this directory.",
			Default:     d.Directory,
			Apply:       (*project.Builder).SetDirectory,
		},
		{
			ID:      "language",
			Type:    QuestionTypeSelect,
			Title:   "Primary language",
			Options: staticOptions(languageOptions()),
			Default: canonical(d.Language, models.ParseLanguage),
			Apply:   (*project.Builder).SetLanguage,
		},
		{
			ID:    "type",
			Type:  QuestionTypeSelect,
			Title: "Project type",
			Options: staticOptions([]Option{
				{Label: models.Fullstack.String(), Value: string(models.Fullstack), Desc: "frontend/ and backend/"},
				{Label: models.FrontendOnly.String(), Value: string(models.FrontendOnly), Desc: "frontend/ only"},
				{Label: models.BackendOnly.String(), Value: string(models.BackendOnly), Desc: "backend/ only"},
			}),
			Default: string(models.Fullstack),
			Apply:   (*project.Builder).SetProjectType,
		},
		{
			ID:      "frontend",
			Type:    QuestionTypeSelect,
			Title:   "Frontend framework",
			Options: staticOptions(frontendOptions()),
			Default: string(models.ViteReact),
			Condition: func(b *project.Builder) bool {
				return b.Snapshot().Type.HasFrontend()
			},
			Apply: (*project.Builder).SetFrontend,
		},
		{
			ID:          "backend",
			Type:        QuestionTypeSelect,
			Title:       "Backend framework",
			Description: "Frameworks offered for the chosen language.",
			Options:     backendOptions,
			Condition: func(b *project.Builder) bool {
				return b.Snapshot().Type.HasBackend()
			},
			Apply: (*project.Builder).SetBackend,
		},
		{
			ID:    "visibility",
			Type:  QuestionTypeSelect,
			Title: "Create a GitHub repository?",
			Options: staticOptions([]Option{
				{Label: models.Public.String(), Value: string(models.Public), Desc: "gh repo create --public"},
				{Label: models.Private.String(), Value: string(models.Private), Desc: "gh repo create --private"},
				{Label: models.Skip.String(), Value: string(models.Skip), Desc: "local repository only"},
			}),
			Default: canonical(d.Visibility, models.ParseVisibility),
			Apply:   (*project.Builder).SetVisibility,
		},
		{
			ID:      "open_after",
			Type:    QuestionTypeConfirm,
			Title:   "Open the project when done?",
			Default: "false",
			Apply: func(b *project.Builder, s string) error {
				open, err := parseYesNo(s)
				if err != nil {
					return &project.InputError{Field: "open after creation", Value: s, Reason: "answer yes or no"}
				}
				return b.SetOpenAfter(open)
			},
		},
	}
}

// parseYesNo accepts yes/no and y/n as well as the strconv.ParseBool forms.
func parseYesNo(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return strconv.ParseBool(strings.TrimSpace(s))
}

func staticOptions(opts []Option) func(*project.Builder) []Option {
	return func(*project.Builder) []Option { return opts }
}

// canonical maps a configured default to its enum value, dropping unknown ones.
func canonical[T ~string](s string, parse func(string) (T, error)) string {
	v, err := parse(s)
	if err != nil {
		return ""
	}
	return string(v)
}

func languageOptions() []Option {
	var opts []Option
	for _, l := range models.AllLanguages() {
		opts = append(opts, Option{Label: l.String(), Value: string(l)})
	}
	return opts
}

func frontendOptions() []Option {
	var opts []Option
	for _, f := range models.AllFrontendFrameworks() {
		opts = append(opts, Option{Label: f.String(), Value: string(f)})
	}
	return opts
}

// backendOptions offers the frameworks of the language answered earlier.
func backendOptions(b *project.Builder) []Option {
	var opts []Option
	for _, fw := range models.BackendFrameworksFor(b.Snapshot().Language) {
		opts = append(opts, Option{Label: fw.String(), Value: string(fw)})
	}
	return opts
}
