package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/weave/internal/config"
	"github.com/alexisbeaulieu97/weave/internal/logger"
)

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "weave",
		Short:         "weave discovers, validates and generates artifacts from a metadata registry",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flags.projectRoot, "project", ".", "project root directory")
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to the project config file (defaults to <project>/weave.yaml)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newDiscoverCmd(flags))
	cmd.AddCommand(newValidateCmd(flags))
	cmd.AddCommand(newBuildCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// loadAppContext resolves the project root, parses its configuration, and
// builds a logger. Logging renders human-readable when stderr is a
// terminal and as structured JSON otherwise, so piping into another tool
// (jq, a log aggregator) never has to parse console-formatted lines.
func loadAppContext(flags *rootFlags) (*AppContext, error) {
	root, err := filepath.Abs(flags.projectRoot)
	if err != nil {
		return nil, fmt.Errorf("resolve project root: %w", err)
	}

	configPath := flags.configPath
	if configPath == "" {
		configPath = filepath.Join(root, "weave.yaml")
	}

	cfg, err := config.ParseConfig(configPath)
	if err != nil {
		return nil, err
	}

	level := "info"
	if flags.verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{
		Level:         level,
		HumanReadable: term.IsTerminal(int(os.Stderr.Fd())),
		Component:     "cli",
	})
	if err != nil {
		return nil, err
	}

	return &AppContext{ProjectRoot: root, Config: cfg, Logger: log}, nil
}
