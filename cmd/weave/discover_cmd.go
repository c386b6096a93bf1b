package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/weave/internal/cli"
)

func newDiscoverCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "discover",
		Short: "scan the project and print a summary of the registered entities and operations",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadAppContext(flags)
			if err != nil {
				return err
			}

			reg, err := cli.BuildRegistry(app.ProjectRoot, app.Config)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "discovered %d entities, %d operations\n", reg.EntityCount(), reg.OperationCount())
			for _, e := range reg.ListEntities() {
				fmt.Fprintf(cmd.OutOrStdout(), "  entity %s (%d fields)\n", e.Name, len(e.AttributeOrder))
			}
			for _, o := range reg.ListOperations() {
				fmt.Fprintf(cmd.OutOrStdout(), "  operation %s (reads %v, writes %v)\n", o.Name, o.Reads, o.Writes)
			}
			return nil
		},
	}
}
