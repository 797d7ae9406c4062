package models

import (
	"fmt"
	"strings"
)

// Language is the primary programming language of a generated project.
type Language string

const (
	JavaScript Language = "javascript"
	Python     Language = "python"
	Rust       Language = "rust"
	Go         Language = "go"
	CSharp     Language = "csharp"
)

var languageLabels = map[Language]string{
	JavaScript: "JavaScript",
	Python:     "Python",
	Rust:       "Rust",
	Go:         "Go",
	CSharp:     "C#",
}

// AllLanguages returns the offered languages in menu order.
func AllLanguages() []Language {
	return []Language{JavaScript, Python, Rust, Go, CSharp}
}

// String returns the menu label of the language.
func (l Language) String() string {
	if label, ok := languageLabels[l]; ok {
		return label
	}
	return string(l)
}

// IsValid reports whether l is one of the offered languages.
func (l Language) IsValid() bool {
	_, ok := languageLabels[l]
	return ok
}

// ParseLanguage accepts a language value or label, case-insensitively.
// "csharp", "c#" and "C#" all parse to CSharp.
func ParseLanguage(s string) (Language, error) {
	for _, l := range AllLanguages() {
		if matchChoice(s, string(l), l.String()) {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: language %q", ErrUnknownChoice, s)
}

// matchChoice compares s against a value and a label ignoring case and
// surrounding whitespace.
func matchChoice(s, value, label string) bool {
	s = strings.TrimSpace(s)
	return strings.EqualFold(s, value) || strings.EqualFold(s, label)
}
