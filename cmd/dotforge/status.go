package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dotforge/dotforge/internal/model"
	"github.com/dotforge/dotforge/internal/ui"
)

func newStatusCmd(root *rootFlags) *cobra.Command {
	var showDetails bool

	cmd := &cobra.Command{
		Use:   "status [module...]",
		Short: "Report each module's state against the configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := buildEngine(root)
			if err != nil {
				return err
			}

			results, err := eng.Statuses(cmd.Context(), args...)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), ui.RenderStatuses(results))

			if showDetails {
				details, err := eng.Details(cmd.Context(), args...)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), ui.RenderDetails(details))
			}

			for _, result := range results {
				if result.Status == model.StatusFailed {
					return fmt.Errorf("status finished with errors")
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showDetails, "details", false, "Include per-module diagnostic details")

	return cmd
}
