package main

import (
	"github.com/aretw0/animclone"
	"github.com/aretw0/animclone/internal/presentation/tui"
	"github.com/aretw0/animclone/pkg/diagnostics"
	"github.com/aretw0/animclone/pkg/ports"
	"github.com/spf13/cobra"
)

func newCloneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clone SRC DST",
		Short: "Copy an asset and register the copy",
		Long: `Loads the asset SRC, deep-copies its state machine tree, saves the copy as DST and registers
every new object with the configured ownership container.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			noRegister, _ := cmd.Flags().GetBool("no-register")

			opts := []animclone.Option{
				animclone.WithLogger(e.logger),
				animclone.WithBehaviours(e.behaviours()),
				animclone.WithStore(e.store()),
				animclone.WithDiagnostics(diagnostics.NewLogSink(e.logger)),
			}

			var container ports.Container
			if !noRegister {
				c, closeFn, err := e.openContainer(cmd.Context())
				if err != nil {
					return err
				}
				defer func() {
					if err := closeFn(); err != nil {
						e.logger.Warn("failed to close container backend", "error", err)
					}
				}()
				container = c
				opts = append(opts, animclone.WithContainer(container))
			}

			res, err := animclone.New(opts...).CloneAsset(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			tui.PrintReport(cmd.OutOrStdout(), tui.Report{
				Source:       args[0],
				Destination:  args[1],
				Summary:      res.Summary,
				Warnings:     res.Warnings,
				Registered:   res.Registered,
				Conflicts:    res.Conflicts,
				Failures:     res.Failures,
				Registration: container != nil,
			})
			return nil
		},
	}
	cmd.Flags().String("container", "", "Ownership backend: memory, redis, sqlite, mysql (overrides config)")
	cmd.Flags().Bool("no-register", false, "Save the copy without registering it")
	return cmd
}
