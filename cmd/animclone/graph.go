package main

import (
	"fmt"

	"github.com/aretw0/animclone"
	"github.com/aretw0/animclone/internal/presentation/graph"
	"github.com/spf13/cobra"
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph SRC",
		Short: "Export the state machine visualization",
		Long: `Loads the asset SRC and outputs a Mermaid diagram (stateDiagram-v2) of its machine tree.
With --clone the diagram shows the copy instead, with warned nodes highlighted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			asClone, _ := cmd.Flags().GetBool("clone")

			root, err := e.store().Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !asClone {
				fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(root, nil))
				return nil
			}

			res, err := animclone.New(
				animclone.WithLogger(e.logger),
				animclone.WithBehaviours(e.behaviours()),
			).Clone(cmd.Context(), root)
			if err != nil {
				return err
			}
			overlay := &graph.Overlay{}
			for _, w := range res.Warnings {
				overlay.Warned = append(overlay.Warned, w.Source)
			}
			fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(res.Root, overlay))
			return nil
		},
	}
	cmd.Flags().Bool("clone", false, "Draw the cloned tree instead of the source")
	return cmd
}
