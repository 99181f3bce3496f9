package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dotforge/dotforge/internal/ui"
)

func newPlanCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan [module...]",
		Short: "Show what apply would change, without touching anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := buildEngine(root)
			if err != nil {
				return err
			}

			results, err := eng.Plan(cmd.Context(), args...)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), ui.RenderPlan(results))

			for _, result := range results {
				if result.Err != nil {
					return fmt.Errorf("plan finished with errors")
				}
			}
			return nil
		},
	}

	return cmd
}
