package config

const (
	// DefaultConfigDirName is the directory name under the home directory.
	DefaultConfigDirName = ".phosphor"
	// DefaultConfigFileName is the default config file name.
	DefaultConfigFileName = "config.yaml"
	// DefaultLogFileName is the default session log file name.
	DefaultLogFileName = "phosphor.log"

	// DefaultShell is the fallback shell when neither the config nor
	// the environment names one.
	DefaultShell = "/bin/sh"
	// DefaultTerminalCols is the default terminal columns.
	DefaultTerminalCols = 80
	// DefaultTerminalRows is the default terminal rows.
	DefaultTerminalRows = 24
	// DefaultScrollbackLines is the default scrollback capacity.
	DefaultScrollbackLines = 10000
	// DefaultTerminalTerm is the default TERM for the PTY session.
	DefaultTerminalTerm = "xterm-256color"
)
