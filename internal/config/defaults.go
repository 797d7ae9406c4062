package config

// Default values applied when the file or a key is absent.
const (
	DefaultCommitMessage = "Initial commit"
	DefaultLogLevel      = "warn"
	DefaultVisibility    = "skip"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CREATE_FULLSTACK_"

// NewDefaultConfig returns a Config with all defaults applied.
// DefaultBranch stays empty so git uses its own init.defaultBranch.
func NewDefaultConfig() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			Visibility: DefaultVisibility,
		},
		Git: GitConfig{
			CommitMessage: DefaultCommitMessage,
		},
		LogLevel: DefaultLogLevel,
	}
}

// fillDefaults restores defaults for keys that a file set to empty.
func fillDefaults(cfg *Config) {
	if cfg.Git.CommitMessage == "" {
		cfg.Git.CommitMessage = DefaultCommitMessage
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.Defaults.Visibility == "" {
		cfg.Defaults.Visibility = DefaultVisibility
	}
}
