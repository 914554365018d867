package config

// DefaultConfig returns the default configuration values.
func DefaultConfig() Config {
	return Config{
		Session: SessionConfig{
			Shell: "",
		},
		Terminal: TerminalConfig{
			Term:            DefaultTerminalTerm,
			Cols:            DefaultTerminalCols,
			Rows:            DefaultTerminalRows,
			ScrollbackLines: DefaultScrollbackLines,
		},
		Log: LogConfig{
			File: DefaultLogPath(),
		},
	}
}
