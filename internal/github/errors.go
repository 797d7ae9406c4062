// Package github publishes a freshly generated project to GitHub through
// the gh CLI.
package github

import "errors"

// Sentinel errors for gh operations.
var (
	// ErrGHNotFound indicates the gh CLI is not installed or not on PATH.
	ErrGHNotFound = errors.New("gh CLI not found")

	// ErrGHNotAuthenticated indicates gh has no logged-in account.
	ErrGHNotAuthenticated = errors.New("gh CLI not authenticated")

	// ErrRepoExists indicates the repository name is already taken.
	ErrRepoExists = errors.New("repository already exists")

	// ErrInvalidVisibility indicates a visibility gh cannot create.
	ErrInvalidVisibility = errors.New("invalid repository visibility")
)
