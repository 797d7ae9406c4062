package preflight

import "fmt"

// installHints maps tool -> GOOS -> instructions; "" is the fallback.
var installHints = map[string]map[string]string{
	"git": {
		"darwin":  "Install git: xcode-select --install (or brew install git)",
		"windows": "Install git: winget install Git.Git (or https://git-scm.com/download/win)",
		"":        "Install git: sudo apt install git (or sudo yum install git)",
	},
	"node": {
		"darwin":  "Install Node.js 18+: brew install node",
		"windows": "Install Node.js 18+: winget install OpenJS.NodeJS.LTS",
		"":        "Install Node.js 18+ from https://nodejs.org (or sudo apt install nodejs npm)",
	},
	"python3": {
		"darwin": "Install Python 3.8+: brew install python",
		"":       "Install Python 3.8+: sudo apt install python3 python3-venv",
	},
	"python": {
		"windows": "Install Python 3.8+: winget install Python.Python.3.12",
		"":        "Install Python 3.8+ from https://www.python.org/downloads",
	},
	"cargo": {
		"": "Install Rust: https://rustup.rs",
	},
	"go": {
		"darwin":  "Install Go 1.21+: brew install go",
		"windows": "Install Go 1.21+: winget install GoLang.Go",
		"":        "Install Go 1.21+ from https://go.dev/dl",
	},
	"dotnet": {
		"darwin":  "Install the .NET SDK: brew install --cask dotnet-sdk",
		"windows": "Install the .NET SDK: winget install Microsoft.DotNet.SDK.8",
		"":        "Install the .NET SDK from https://dotnet.microsoft.com/download",
	},
	"gh": {
		"darwin":  "Install the GitHub CLI: brew install gh, then run gh auth login",
		"windows": "Install the GitHub CLI: winget install GitHub.cli, then run gh auth login",
		"":        "Install the GitHub CLI from https://cli.github.com, then run gh auth login",
	},
}

// npm and npx ship with Node.js.
var hintAliases = map[string]string{"npm": "node", "npx": "node"}

// InstallHint returns OS-specific install instructions for tool.
func InstallHint(tool, goos string) string {
	key := tool
	if alias, ok := hintAliases[tool]; ok {
		key = alias
	}
	hints, ok := installHints[key]
	if !ok {
		return fmt.Sprintf("Install %s and make sure it is on PATH", tool)
	}
	if h, ok := hints[goos]; ok {
		return h
	}
	return hints[""]
}
