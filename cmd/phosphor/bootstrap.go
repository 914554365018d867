package main

import (
	"github.com/spf13/cobra"

	"pkt.systems/phosphor"
	"pkt.systems/pslog"
)

// NewBootstrapCommand builds the bootstrap command.
func NewBootstrapCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Write the default config file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := pslog.Ctx(cmd.Context()).With("component", "bootstrap")
			cfg := phosphor.DefaultConfig()
			_, err := phosphor.Bootstrap(cfg, logger)
			return err
		},
	}

	return cmd
}
