package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/weave/internal/cli"
	"github.com/alexisbeaulieu97/weave/internal/graph"
	"github.com/alexisbeaulieu97/weave/internal/model"
	"github.com/alexisbeaulieu97/weave/internal/validate"
)

func newValidateCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "run the validation rules and print every diagnostic",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadAppContext(flags)
			if err != nil {
				return err
			}

			reg, err := cli.BuildRegistry(app.ProjectRoot, app.Config)
			if err != nil {
				return err
			}

			g := graph.Build(reg)
			diags := validate.Run(reg, g)
			printDiagnostics(cmd, diags)

			if validate.HasErrors(diags) {
				os.Exit(1)
			}
			return nil
		},
	}
}

func printDiagnostics(cmd *cobra.Command, diags []model.Diagnostic) {
	if len(diags) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no diagnostics")
		return
	}
	for _, d := range diags {
		line := fmt.Sprintf("[%s] %s %s: %s", d.Severity, d.Code, d.Subject, d.Message)
		if d.Hint != "" {
			line += fmt.Sprintf(" (hint: %s)", d.Hint)
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
}
