package generator

import (
	"strings"
	"unicode"

	"github.com/fullstack-creator/create-fullstack/internal/core/project"
	"github.com/fullstack-creator/create-fullstack/internal/template"
	"github.com/fullstack-creator/create-fullstack/pkg/models"
)

// Conventional backend ports.
const (
	expressPort = 5000
	fastAPIPort = 8000
	flaskPort   = 5000
	djangoPort  = 8000
	axumPort    = 3000
	ginPort     = 8080
	aspNetPort  = 5000
)

const backendDir = "backend"

// entryData feeds the backend entry-point templates.
type entryData struct {
	ProjectName string
	Port        int
}

func newExpress(d Deps) *recipe {
	return &recipe{
		deps:      d,
		side:      models.SideBackend,
		framework: models.Express.String(),
		tools:     []string{"node", "npm"},
		steps: func(cfg project.Config) []step {
			return []step{
				command(backendDir, "npm", "init", "-y"),
				command(backendDir, "npm", "install", "express", "cors", "dotenv"),
				command(backendDir, "npm", "install", "-D", "nodemon"),
				renderFile(backendDir, "server.js", "backend/express/server.js.tmpl",
					entryData{ProjectName: cfg.Name, Port: expressPort}),
				setPackageScripts(backendDir, map[string]string{
					"start": "node server.js",
					"dev":   "nodemon server.js",
				}),
			}
		},
		service: func(project.Config) template.ServiceContext {
			return template.ServiceContext{
				Name:           "Backend",
				Port:           expressPort,
				UnixCommand:    "npm run dev",
				WindowsCommand: "npm run dev",
				Setup:          []string{"npm install", "npm run dev"},
			}
		},
	}
}

// pythonService is the launch description shared by Python backends. The
// virtual environment is always activated before the server command.
func pythonService(port int, cmd string) func(project.Config) template.ServiceContext {
	return func(project.Config) template.ServiceContext {
		return template.ServiceContext{
			Name:           "Backend",
			Port:           port,
			UnixCommand:    cmd,
			WindowsCommand: cmd,
			VenvUnix:       "venv/bin/activate",
			VenvWindows:    `venv\Scripts\activate.bat`,
			Setup: []string{
				"python3 -m venv venv",
				`source venv/bin/activate  # On Windows: venv\Scripts\activate`,
				"pip install -r requirements.txt",
				cmd,
			},
		}
	}
}

// pythonSteps creates the virtual environment and installs packages into it.
func pythonSteps(d Deps, packages ...string) []step {
	install := append([]string{"install"}, packages...)
	return []step{
		command(backendDir, PythonBin(d.goos()), "-m", "venv", "venv"),
		venvCommand(backendDir, "pip", install...),
	}
}

func pythonTools(d Deps) []string {
	return []string{PythonBin(d.goos())}
}

func newFastAPI(d Deps) *recipe {
	return &recipe{
		deps:      d,
		side:      models.SideBackend,
		framework: models.FastAPI.String(),
		tools:     pythonTools(d),
		steps: func(cfg project.Config) []step {
			return append(pythonSteps(d, "fastapi", "uvicorn[standard]", "python-dotenv"),
				writeFile(backendDir, "requirements.txt", "fastapi\nuvicorn[standard]\npython-dotenv\n"),
				renderFile(backendDir, "main.py", "backend/fastapi/main.py.tmpl",
					entryData{ProjectName: cfg.Name, Port: fastAPIPort}),
				writeFile(backendDir, ".env", "PORT=8000\n"),
			)
		},
		service: pythonService(fastAPIPort, "uvicorn main:app --reload --port 8000"),
	}
}

func newFlask(d Deps) *recipe {
	return &recipe{
		deps:      d,
		side:      models.SideBackend,
		framework: models.Flask.String(),
		tools:     pythonTools(d),
		steps: func(cfg project.Config) []step {
			return append(pythonSteps(d, "flask", "flask-cors", "python-dotenv"),
				writeFile(backendDir, "requirements.txt", "flask\nflask-cors\npython-dotenv\n"),
				renderFile(backendDir, "app.py", "backend/flask/app.py.tmpl",
					entryData{ProjectName: cfg.Name, Port: flaskPort}),
				writeFile(backendDir, ".env", "PORT=5000\n"),
			)
		},
		service: pythonService(flaskPort, "python app.py"),
	}
}

func newDjango(d Deps) *recipe {
	return &recipe{
		deps:      d,
		side:      models.SideBackend,
		framework: models.Django.String(),
		tools:     pythonTools(d),
		steps: func(project.Config) []step {
			return append(pythonSteps(d, "django", "djangorestframework", "django-cors-headers"),
				venvCommand(backendDir, "python", "-m", "django", "startproject", "backend_app", "."),
				writeFile(backendDir, "requirements.txt", "django\ndjangorestframework\ndjango-cors-headers\n"),
			)
		},
		service: pythonService(djangoPort, "python manage.py runserver 8000"),
	}
}

// newAxum uses cargo new, which refuses an existing directory, so it runs
// from the project root and creates backend/ itself. The project root
// owns the repository, so cargo must not create one in backend/.
func newAxum(d Deps) *recipe {
	return &recipe{
		deps:       d,
		side:       models.SideBackend,
		framework:  models.Axum.String(),
		tools:      []string{"cargo"},
		createsDir: true,
		steps: func(cfg project.Config) []step {
			return []step{
				command(".", "cargo", "new", backendDir, "--vcs", "none", "--name", CrateName(cfg.Name)),
				command(backendDir, "cargo", "add", "axum"),
				command(backendDir, "cargo", "add", "tokio", "--features", "full"),
				renderFile(backendDir, "src/main.rs", "backend/axum/main.rs.tmpl",
					entryData{ProjectName: cfg.Name, Port: axumPort}),
			}
		},
		service: func(project.Config) template.ServiceContext {
			return template.ServiceContext{
				Name:           "Backend",
				Port:           axumPort,
				UnixCommand:    "cargo run --release",
				WindowsCommand: "cargo run --release",
				Setup:          []string{"cargo build", "cargo run --release"},
			}
		},
	}
}

func newGin(d Deps) *recipe {
	return &recipe{
		deps:      d,
		side:      models.SideBackend,
		framework: models.Gin.String(),
		tools:     []string{"go"},
		steps: func(cfg project.Config) []step {
			return []step{
				command(backendDir, "go", "mod", "init", ModulePath(cfg.Name)),
				command(backendDir, "go", "get", "github.com/gin-gonic/gin"),
				renderFile(backendDir, "main.go", "backend/gin/main.go.tmpl",
					entryData{ProjectName: cfg.Name, Port: ginPort}),
				command(backendDir, "go", "mod", "tidy"),
			}
		},
		service: func(project.Config) template.ServiceContext {
			return template.ServiceContext{
				Name:           "Backend",
				Port:           ginPort,
				UnixCommand:    "GIN_MODE=release go run .",
				WindowsCommand: "set GIN_MODE=release&& go run .",
				Setup:          []string{"go mod download", "go run ."},
			}
		},
	}
}

func newASPNetCore(d Deps) *recipe {
	run := "dotnet run --configuration Release --urls http://localhost:5000"
	return &recipe{
		deps:      d,
		side:      models.SideBackend,
		framework: models.ASPNetCore.String(),
		tools:     []string{"dotnet"},
		steps: func(cfg project.Config) []step {
			return []step{
				command(backendDir, "dotnet", "new", "web", "--name", DotnetName(cfg.Name), "--output", ".", "--force"),
			}
		},
		service: func(project.Config) template.ServiceContext {
			return template.ServiceContext{
				Name:           "Backend",
				Port:           aspNetPort,
				UnixCommand:    run,
				WindowsCommand: run,
				Setup:          []string{"dotnet restore", run},
			}
		},
	}
}

// CrateName turns a project name into a valid Cargo package name.
func CrateName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	s := strings.Trim(b.String(), "_")
	if s == "" || !unicode.IsLetter(rune(s[0])) {
		s = "app_" + s
	}
	return strings.TrimRight(s, "_")
}

// ModulePath returns the Go module path of the generated backend.
func ModulePath(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)),
			r == '-', r == '.', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	s := strings.Trim(b.String(), "-.")
	if s == "" {
		s = "app"
	}
	return s + "/backend"
}

// DotnetName returns a C# identifier derived from the project name.
func DotnetName(name string) string {
	s := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return r
		}
		return -1
	}, template.DisplayName(name))
	if s == "" || !unicode.IsLetter(rune(s[0])) {
		s = "App" + s
	}
	return s
}
