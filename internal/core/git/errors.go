// Package git initializes the repository of a freshly generated project
// using the system git binary.
package git

import "errors"

// Sentinel errors for git operations.
var (
	// ErrSystemGitNotFound indicates git is not installed or not on PATH.
	ErrSystemGitNotFound = errors.New("system git not found")

	// ErrNothingToCommit indicates the working tree had no staged changes.
	ErrNothingToCommit = errors.New("nothing to commit")
)
