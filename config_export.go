package phosphor

import "pkt.systems/phosphor/internal/config"

// Config mirrors the Phosphor configuration.
type Config = config.Config

// SessionConfig configures the shell process.
type SessionConfig = config.SessionConfig

// TerminalConfig configures terminal defaults.
type TerminalConfig = config.TerminalConfig

// LogConfig configures the session log.
type LogConfig = config.LogConfig

// Loader wraps configuration loading via Viper.
type Loader = config.Loader

const (
	// DefaultConfigDirName is the directory name under the home directory.
	DefaultConfigDirName = config.DefaultConfigDirName
	// DefaultConfigFileName is the default config file name.
	DefaultConfigFileName = config.DefaultConfigFileName
	// DefaultLogFileName is the default session log file name.
	DefaultLogFileName = config.DefaultLogFileName

	// DefaultShell is the fallback shell.
	DefaultShell = config.DefaultShell
	// DefaultTerminalCols is the default terminal column count.
	DefaultTerminalCols = config.DefaultTerminalCols
	// DefaultTerminalRows is the default terminal row count.
	DefaultTerminalRows = config.DefaultTerminalRows
	// DefaultScrollbackLines is the default scrollback capacity.
	DefaultScrollbackLines = config.DefaultScrollbackLines
	// DefaultTerminalTerm is the default TERM for the PTY session.
	DefaultTerminalTerm = config.DefaultTerminalTerm
)

// NewLoader returns a config loader with defaults wired.
func NewLoader() *config.Loader {
	return config.NewLoader()
}

// DefaultConfig returns the built-in default configuration.
func DefaultConfig() Config {
	return config.DefaultConfig()
}

// DefaultConfigDir returns the default config directory.
func DefaultConfigDir() string {
	return config.DefaultConfigDir()
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	return config.DefaultConfigPath()
}

// DefaultLogPath returns the default session log file path.
func DefaultLogPath() string {
	return config.DefaultLogPath()
}
