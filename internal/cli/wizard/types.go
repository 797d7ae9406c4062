// Package wizard collects a project configuration through an ordered set
// of prompts. Questions are plain data; a Prompter renders them, so the
// same flow runs against huh forms or a scripted prompter in tests.
package wizard

import (
	"errors"

	"github.com/fullstack-creator/create-fullstack/internal/core/project"
)

// QuestionType represents the type of wizard question.
type QuestionType int

const (
	// QuestionTypeSelect is a single-choice selection question.
	QuestionTypeSelect QuestionType = iota
	// QuestionTypeInput is a text input question.
	QuestionTypeInput
	// QuestionTypeConfirm is a yes/no question answered with "true" or "false".
	QuestionTypeConfirm
)

// Question defines a single wizard question.
type Question struct {
	ID          string                          // Builder field the answer is applied to.
	Type        QuestionType                    // Select, Input or Confirm
	Title       string                          // Question title
	Description string                          // Additional description
	Options     func(*project.Builder) []Option // Options for select questions, computed from earlier answers.
	Default     string                          // Default value
	Condition   func(*project.Builder) bool     // Condition for asking this question
	Apply       func(*project.Builder, string) error
}

// Option represents a selectable option.
type Option struct {
	Label string // Display label
	Value string // Actual value stored
	Desc  string // Optional description
}

// Prompt is one rendering request handed to a Prompter.
type Prompt struct {
	Question Question
	Options  []Option
	Default  string
	Error    string // Why the previous answer was rejected; empty on the first attempt.
	Attempt  int
}

// Prompter asks a single question and returns the raw answer.
type Prompter interface {
	Ask(p Prompt) (string, error)
}

// Error definitions for the wizard package.
var (
	// ErrCancelled is returned when the user cancels the wizard.
	ErrCancelled = errors.New("wizard cancelled by user")
	// ErrNoQuestions is returned when no questions are provided.
	ErrNoQuestions = errors.New("no questions provided")
	// ErrTooManyAttempts is returned when a question keeps getting invalid answers.
	ErrTooManyAttempts = errors.New("too many invalid answers")
)
