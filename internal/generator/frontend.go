package generator

import (
	"github.com/fullstack-creator/create-fullstack/internal/core/project"
	"github.com/fullstack-creator/create-fullstack/internal/template"
	"github.com/fullstack-creator/create-fullstack/pkg/models"
)

const (
	vitePort    = 5173
	angularPort = 4200
)

func nodeService(port int, script string) func(project.Config) template.ServiceContext {
	return func(project.Config) template.ServiceContext {
		return template.ServiceContext{
			Name:           "Frontend",
			Port:           port,
			UnixCommand:    script,
			WindowsCommand: script,
			Setup:          []string{"npm install", script},
		}
	}
}

// newViteTemplate scaffolds a Vite project from one of its stock templates.
// create-vite creates frontend/ itself, so it runs from the project root.
func newViteTemplate(d Deps, f models.FrontendFramework, viteTemplate string) *recipe {
	return &recipe{
		deps:       d,
		side:       models.SideFrontend,
		framework:  f.String(),
		tools:      []string{"node", "npm"},
		createsDir: true,
		steps: func(project.Config) []step {
			return viteSteps(viteTemplate)
		},
		service: nodeService(vitePort, "npm run dev"),
	}
}

func viteSteps(viteTemplate string) []step {
	return []step{
		command(".", "npm", "create", "vite@latest", "frontend", "--", "--template", viteTemplate),
		command("frontend", "npm", "install"),
	}
}

const tailwindConfig = `/** @type {import('tailwindcss').Config} */
export default {
  content: ["./index.html", "./src/**/*.{js,ts,jsx,tsx}"],
  theme: {
    extend: {},
  },
  plugins: [],
}
`

const tailwindCSS = `@tailwind base;
@tailwind components;
@tailwind utilities;
`

// newViteReact is the Vite React template plus Tailwind CSS.
func newViteReact(d Deps) *recipe {
	r := newViteTemplate(d, models.ViteReact, "react")
	r.steps = func(project.Config) []step {
		return append(viteSteps("react"),
			command("frontend", "npm", "install", "-D", "tailwindcss@3", "postcss", "autoprefixer"),
			command("frontend", "npx", "tailwindcss", "init", "-p"),
			writeFile("frontend", "tailwind.config.js", tailwindConfig),
			writeFile("frontend", "src/index.css", tailwindCSS),
		)
	}
	r.tools = []string{"node", "npm", "npx"}
	return r
}

func newAngular(d Deps) *recipe {
	return &recipe{
		deps:       d,
		side:       models.SideFrontend,
		framework:  models.Angular.String(),
		tools:      []string{"node", "npm", "npx"},
		createsDir: true,
		steps: func(project.Config) []step {
			return []step{
				command(".", "npx", "-p", "@angular/cli", "ng", "new", "frontend",
					"--skip-git", "--routing", "--style=css", "--defaults"),
			}
		},
		service: nodeService(angularPort, "npm start"),
	}
}
