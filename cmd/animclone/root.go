package main

import (
	"fmt"
	"os"

	"github.com/aretw0/animclone/internal/config"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "animclone",
		Short: "animclone deep-copies animation state machine assets",
		Long: `animclone copies nested animation state machines, remaps every transition onto the copy
and registers the new objects with an ownership container.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags (available to all commands)
	root.PersistentFlags().String("config", config.DefaultPath, "Path to the configuration file (YAML or JSON)")
	root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	root.PersistentFlags().String("log-format", "", "Log format: text or json (overrides config)")
	root.PersistentFlags().String("assets", "", "Directory holding asset files (overrides config)")

	root.AddCommand(
		newCloneCmd(),
		newCheckCmd(),
		newGraphCmd(),
		newListCmd(),
		newServeCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
