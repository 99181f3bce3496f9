package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dotforge/dotforge/internal/ui"
)

func newApplyCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply [module...]",
		Short: "Reconcile the machine with the configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := buildEngine(root)
			if err != nil {
				return err
			}

			results, err := eng.Apply(cmd.Context(), args...)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), ui.RenderApply(results))

			for _, result := range results {
				if !result.Success {
					return fmt.Errorf("apply finished with errors")
				}
			}
			return nil
		},
	}

	return cmd
}
