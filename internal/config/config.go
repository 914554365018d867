package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config is the root configuration for Phosphor.
type Config struct {
	Session  SessionConfig  `mapstructure:"session" yaml:"session"`
	Terminal TerminalConfig `mapstructure:"terminal" yaml:"terminal"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

// SessionConfig configures the shell process behind the PTY.
type SessionConfig struct {
	Shell string   `mapstructure:"shell" yaml:"shell"`
	Cwd   string   `mapstructure:"cwd" yaml:"cwd"`
	Env   []string `mapstructure:"env" yaml:"env"`
}

// TerminalConfig configures terminal emulation defaults.
type TerminalConfig struct {
	Term            string `mapstructure:"term" yaml:"term"`
	Cols            int    `mapstructure:"cols" yaml:"cols"`
	Rows            int    `mapstructure:"rows" yaml:"rows"`
	ScrollbackLines int    `mapstructure:"scrollback_lines" yaml:"scrollback_lines"`
}

// LogConfig configures the session log.
type LogConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

// Loader wraps Viper configuration loading for Phosphor.
type Loader struct {
	v          *viper.Viper
	configFile string
}

// NewLoader initializes a Loader with standard defaults.
func NewLoader() *Loader {
	v := viper.New()
	v.SetEnvPrefix("PHOSPHOR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/phosphor")
	v.AddConfigPath("$HOME/.phosphor")

	return &Loader{v: v}
}

// Viper exposes the underlying Viper instance for flag binding and defaults.
func (l *Loader) Viper() *viper.Viper {
	return l.v
}

// SetConfigFile sets an explicit config file path.
func (l *Loader) SetConfigFile(path string) {
	l.configFile = strings.TrimSpace(path)
}

// ReadInConfig reads configuration from file if available.
func (l *Loader) ReadInConfig() error {
	if l.configFile != "" {
		l.v.SetConfigFile(l.configFile)
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}

// Load reads configuration and unmarshals it into a Config struct.
func (l *Loader) Load() (Config, error) {
	if err := l.ReadInConfig(); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
