package config

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/fullstack-creator/create-fullstack/pkg/models"
)

// Dynamic token patterns that must not appear in configuration values.
var dynamicTokenPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$\{[^}]+\}`),        // ${VAR}
	regexp.MustCompile(`\{\{[^}]+\}\}`),      // {{VAR}}
	regexp.MustCompile(`\$[A-Z_][A-Z0-9_]*`), // $VAR
}

// validLogLevels lists accepted log_level values.
var validLogLevels = []string{"debug", "info", "warn", "error"}

// Validate checks the configuration for correctness.
func Validate(cfg *Config) error {
	var errs []ValidationError

	if cfg.LogLevel != "" && !slices.Contains(validLogLevels, strings.ToLower(cfg.LogLevel)) {
		errs = append(errs, ValidationError{
			Field:   "log_level",
			Message: fmt.Sprintf("must be one of: %s", strings.Join(validLogLevels, ", ")),
			Value:   cfg.LogLevel,
			Wrapped: ErrInvalidConfig,
		})
	}

	if cfg.Defaults.Language != "" {
		if _, err := models.ParseLanguage(cfg.Defaults.Language); err != nil {
			errs = append(errs, ValidationError{
				Field:   "defaults.language",
				Message: "unknown language",
				Value:   cfg.Defaults.Language,
				Wrapped: ErrInvalidConfig,
			})
		}
	}

	if cfg.Defaults.Visibility != "" {
		if _, err := models.ParseVisibility(cfg.Defaults.Visibility); err != nil {
			errs = append(errs, ValidationError{
				Field:   "defaults.visibility",
				Message: "must be one of: public, private, skip",
				Value:   cfg.Defaults.Visibility,
				Wrapped: ErrInvalidConfig,
			})
		}
	}

	if b := cfg.Git.DefaultBranch; b != "" && strings.ContainsAny(b, " ~^:?*[\\") {
		errs = append(errs, ValidationError{
			Field:   "git.default_branch",
			Message: "not a valid branch name",
			Value:   b,
			Wrapped: ErrInvalidConfig,
		})
	}

	errs = append(errs, validateDynamicTokens(cfg)...)

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

// validateDynamicTokens rejects values that still contain template or shell
// variables, which usually means a file was copied without being filled in.
func validateDynamicTokens(cfg *Config) []ValidationError {
	fields := map[string]string{
		"defaults.directory": cfg.Defaults.Directory,
		"git.commit_message": cfg.Git.CommitMessage,
		"git.default_branch": cfg.Git.DefaultBranch,
	}

	var errs []ValidationError
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		value := fields[name]
		for _, p := range dynamicTokenPatterns {
			if p.MatchString(value) {
				errs = append(errs, ValidationError{
					Field:   name,
					Message: "contains unexpanded token",
					Value:   value,
					Wrapped: ErrDynamicToken,
				})
				break
			}
		}
	}
	return errs
}
