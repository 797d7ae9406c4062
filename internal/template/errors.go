// Package template renders the files create-fullstack writes itself: start
// scripts, README, .gitignore and backend entry points. Templates are
// embedded in the binary and rendered with text/template in strict mode.
package template

import "errors"

// Sentinel errors for template rendering.
var (
	// ErrTemplateNotFound indicates the named template is not embedded.
	ErrTemplateNotFound = errors.New("template: not found")

	// ErrMissingTemplateKey indicates the data lacks a key the template uses.
	ErrMissingTemplateKey = errors.New("template: missing key")

	// ErrUnexpandedToken indicates template syntax survived rendering.
	ErrUnexpandedToken = errors.New("template: unexpanded token in output")
)
