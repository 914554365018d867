package main

import (
	"github.com/spf13/cobra"

	"pkt.systems/phosphor"
)

// NewRootCommand builds the root CLI command.
func NewRootCommand(loader *phosphor.Loader) *cobra.Command {
	var configFile string
	var cols int
	var rows int
	var shellPath string
	var termName string
	var cwd string
	var scrollback int

	v := loader.Viper()
	v.SetDefault("terminal.term", phosphor.DefaultTerminalTerm)
	v.SetDefault("terminal.cols", phosphor.DefaultTerminalCols)
	v.SetDefault("terminal.rows", phosphor.DefaultTerminalRows)
	v.SetDefault("terminal.scrollback_lines", phosphor.DefaultScrollbackLines)
	v.SetDefault("log.file", phosphor.DefaultLogPath())

	cmd := &cobra.Command{
		Use:   "phosphor",
		Short: "Phosphor terminal engine",
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if configFile != "" {
				loader.SetConfigFile(configFile)
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loader.Load()
			if err != nil {
				return err
			}

			shellValue := shellPath
			if !cmd.Flags().Changed("shell") {
				shellValue = cfg.Session.Shell
			}
			termValue := termName
			if !cmd.Flags().Changed("term") {
				termValue = cfg.Terminal.Term
			}
			cwdValue := cwd
			if !cmd.Flags().Changed("cwd") {
				cwdValue = cfg.Session.Cwd
			}
			// Unless pinned by flag, geometry follows the hosting
			// terminal.
			colsValue := cols
			if !cmd.Flags().Changed("cols") {
				colsValue = 0
			}
			rowsValue := rows
			if !cmd.Flags().Changed("rows") {
				rowsValue = 0
			}
			scrollbackValue := cfg.Terminal.ScrollbackLines
			if cmd.Flags().Changed("scrollback-lines") {
				scrollbackValue = scrollback
			}

			logger, closer, err := openSessionLogger(cfg.Log.File)
			if err != nil {
				return err
			}
			defer func() {
				_ = closer.Close()
			}()

			return phosphor.Interactive(cmd.Context(), phosphor.InteractiveOptions{
				Cols:            colsValue,
				Rows:            rowsValue,
				Shell:           shellValue,
				Term:            termValue,
				Cwd:             cwdValue,
				ScrollbackLines: scrollbackValue,
				Logger:          logger,
			})
		},
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	flags := cmd.Flags()
	flags.IntVar(&cols, "cols", phosphor.DefaultTerminalCols, "initial columns")
	flags.IntVar(&rows, "rows", phosphor.DefaultTerminalRows, "initial rows")
	flags.StringVar(&shellPath, "shell", "", "override login shell path")
	flags.StringVar(&termName, "term", phosphor.DefaultTerminalTerm, "TERM for the PTY session")
	flags.StringVar(&cwd, "cwd", "", "working directory for the shell")
	flags.IntVar(&scrollback, "scrollback-lines", phosphor.DefaultScrollbackLines, "scrollback line capacity")

	cmd.AddCommand(NewConfigCommand(loader))
	cmd.AddCommand(NewBootstrapCommand())

	return cmd
}
