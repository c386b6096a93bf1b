package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set by the release build via -ldflags; dev builds report "dev".
var version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the weave version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		},
	}
}
