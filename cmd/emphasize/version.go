package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitrdm/gokanetr/pkg/emphasis"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := emphasis.GetVersionInfo()
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "emphasize %s (%s)\n", info.Version, info.GoVersion)
			return err
		},
	}
}
