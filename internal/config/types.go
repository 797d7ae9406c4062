package config

// Config is the user configuration file.
type Config struct {
	Defaults DefaultsConfig `yaml:"defaults"`
	Git      GitConfig      `yaml:"git"`
	Editor   string         `yaml:"editor"`    // Command that opens the project; empty tries code, then the OS opener.
	LogLevel string         `yaml:"log_level"` // debug, info, warn or error.
	NoColor  bool           `yaml:"no_color"`
}

// DefaultsConfig pre-fills wizard answers. Every question is still asked.
type DefaultsConfig struct {
	Directory  string `yaml:"directory"`
	Language   string `yaml:"language"`
	Visibility string `yaml:"visibility"`
}

// GitConfig controls repository initialization.
type GitConfig struct {
	CommitMessage string `yaml:"commit_message"`
	DefaultBranch string `yaml:"default_branch"`
}
