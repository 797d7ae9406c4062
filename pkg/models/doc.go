// Package models provides the shared choice types offered by the
// create-fullstack wizard.
//
// # Languages
//
// The primary language of a project is one of [JavaScript], [Python],
// [Rust], [Go] or [CSharp]. It decides which backend frameworks are offered
// and which ignore patterns end up in the generated .gitignore.
//
// # Project Types
//
// Exactly one [ProjectType] is selected per project:
//   - Fullstack: frontend/ and backend/ subtrees
//   - FrontendOnly: frontend/ only
//   - BackendOnly: backend/ only
//
// # Frameworks
//
// Frontend frameworks are JavaScript tooling and are offered for every
// language. Backend frameworks belong to a language:
//
//	opts := models.BackendFrameworksFor(models.Python)
//	// [FastAPI Flask Django None]
//
// All enums parse from either their value or their menu label:
//
//	fw, err := models.ParseFrontendFramework("Vite + React")
package models
