package main

import (
	"fmt"

	"github.com/aretw0/animclone"
	"github.com/aretw0/animclone/internal/presentation/tui"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check SRC",
		Short: "Report what a clone of an asset would lose",
		Long: `Performs a dry clone of SRC without saving or registering anything and lists the
references that would be redirected or dropped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			strict, _ := cmd.Flags().GetBool("strict")

			root, err := e.store().Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			res, err := animclone.New(
				animclone.WithLogger(e.logger),
				animclone.WithBehaviours(e.behaviours()),
			).Clone(cmd.Context(), root)
			if err != nil {
				return err
			}

			tui.PrintReport(cmd.OutOrStdout(), tui.Report{
				Source:   args[0],
				Summary:  res.Summary,
				Warnings: res.Warnings,
			})
			if strict && len(res.Warnings) > 0 {
				return fmt.Errorf("%s: %d warning(s)", args[0], len(res.Warnings))
			}
			return nil
		},
	}
	cmd.Flags().Bool("strict", false, "Fail when the clone raises any warning")
	return cmd
}
