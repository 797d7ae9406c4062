// Package scaffold runs the project generation pipeline: target checks,
// tool preflight, framework generators, start scripts and docs, git and
// GitHub. Only filesystem errors on the project root abort a run; every
// other failure is recorded as a warning and the run continues.
package scaffold

import (
	"errors"
	"fmt"
)

// Sentinel errors for fatal pipeline failures.
var (
	// ErrFilesystem marks every fatal error returned by Pipeline.Run.
	ErrFilesystem = errors.New("filesystem error")

	// ErrTargetNotWritable indicates the project root cannot be created or written.
	ErrTargetNotWritable = errors.New("target directory not writable")
)

// FilesystemError describes a fatal failure on the project tree.
type FilesystemError struct {
	Op   string // What the pipeline was doing, e.g. "create project root".
	Path string
	Err  error
}

// Error implements the error interface.
func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap exposes ErrFilesystem and the cause.
func (e *FilesystemError) Unwrap() []error {
	return []error{ErrFilesystem, e.Err}
}

func fsErr(op, path string, err error) error {
	return &FilesystemError{Op: op, Path: path, Err: err}
}
