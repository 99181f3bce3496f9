package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dotforge/dotforge/internal/version"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display build information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "dotforge %s\ncommit: %s\nbuilt: %s\n",
				version.Version, version.Commit, version.Date)
			return nil
		},
	}

	return cmd
}
