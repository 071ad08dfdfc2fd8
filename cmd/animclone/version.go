package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/animclone"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of animclone",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "animclone version %s\n", strings.TrimSpace(animclone.Version))
		},
	}
}
