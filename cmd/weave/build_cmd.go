package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/weave/internal/cli"
	"github.com/alexisbeaulieu97/weave/internal/orchestrator"
	"github.com/alexisbeaulieu97/weave/internal/registry"
	"github.com/alexisbeaulieu97/weave/internal/tui"
)

func newBuildCmd(flags *rootFlags) *cobra.Command {
	var noTUI bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "run the full pipeline: discover, validate, synthesize artifacts, and write the cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadAppContext(flags)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			discover := func() (*registry.Registry, error) {
				return cli.BuildRegistry(app.ProjectRoot, app.Config)
			}

			opts := orchestrator.Options{
				CacheDir:    app.Config.CacheDir,
				DocsDir:     app.Config.DocsDir,
				GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			}

			var result orchestrator.Result
			if !noTUI && term.IsTerminal(int(os.Stdout.Fd())) {
				result = tui.RunWithProgress(ctx, discover, opts, app.Logger)
			} else {
				result = orchestrator.Run(ctx, discover, opts, app.Logger)
			}

			printDiagnostics(cmd, result.Diagnostics)

			if result.State != orchestrator.StateDone {
				if result.Err != nil {
					return result.Err
				}
				return fmt.Errorf("build failed during %s", result.State)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d artifacts, skipped %d unchanged\n", result.ArtifactsWritten, result.ArtifactsSkipped)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noTUI, "no-tui", false, "disable the live progress display and print plain log lines")
	return cmd
}
