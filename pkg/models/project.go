package models

import (
	"errors"
	"fmt"
)

// ErrUnknownChoice is returned when a value is not among the offered choices.
var ErrUnknownChoice = errors.New("unknown choice")

// ProjectType decides which sides of the project are generated.
type ProjectType string

const (
	Fullstack    ProjectType = "fullstack"
	FrontendOnly ProjectType = "frontend"
	BackendOnly  ProjectType = "backend"
)

var projectTypeLabels = map[ProjectType]string{
	Fullstack:    "Fullstack",
	FrontendOnly: "Frontend only",
	BackendOnly:  "Backend only",
}

// AllProjectTypes returns the offered project types in menu order.
func AllProjectTypes() []ProjectType {
	return []ProjectType{Fullstack, FrontendOnly, BackendOnly}
}

func (t ProjectType) String() string {
	if label, ok := projectTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

// IsValid reports whether t is one of the offered project types.
func (t ProjectType) IsValid() bool {
	_, ok := projectTypeLabels[t]
	return ok
}

// HasFrontend reports whether a frontend/ subtree belongs to this type.
func (t ProjectType) HasFrontend() bool {
	return t == Fullstack || t == FrontendOnly
}

// HasBackend reports whether a backend/ subtree belongs to this type.
func (t ProjectType) HasBackend() bool {
	return t == Fullstack || t == BackendOnly
}

// ParseProjectType accepts a project type value or label.
func ParseProjectType(s string) (ProjectType, error) {
	for _, t := range AllProjectTypes() {
		if matchChoice(s, string(t), t.String()) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: project type %q", ErrUnknownChoice, s)
}

// Visibility is the GitHub repository visibility, or Skip for no repository.
type Visibility string

const (
	Public  Visibility = "public"
	Private Visibility = "private"
	Skip    Visibility = "skip"
)

var visibilityLabels = map[Visibility]string{
	Public:  "Public",
	Private: "Private",
	Skip:    "Skip",
}

// AllVisibilities returns the offered visibilities in menu order.
func AllVisibilities() []Visibility {
	return []Visibility{Public, Private, Skip}
}

func (v Visibility) String() string {
	if label, ok := visibilityLabels[v]; ok {
		return label
	}
	return string(v)
}

// IsValid reports whether v is one of the offered visibilities.
func (v Visibility) IsValid() bool {
	_, ok := visibilityLabels[v]
	return ok
}

// ParseVisibility accepts a visibility value or label.
func ParseVisibility(s string) (Visibility, error) {
	for _, v := range AllVisibilities() {
		if matchChoice(s, string(v), v.String()) {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: visibility %q", ErrUnknownChoice, s)
}
