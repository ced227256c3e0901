package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/markpatch/cmd/markpatch/commands"
	"github.com/walteh/markpatch/cmd/markpatch/opts"
	"github.com/walteh/markpatch/pkg/log"
)

var (
	// Flags
	configFile string
	debug      bool
	dryRun     bool
	workers    int
)

// newRootCmd wires the shared options into every subcommand
func newRootCmd() *cobra.Command {
	rootOpts := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:           "markpatch",
		Short:         "Replace marker-delimited regions of source files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogging()
			ctx := logger.WithContext(cmd.Context())
			cmd.SetContext(ctx)

			level := zerolog.InfoLevel
			if debug {
				level = zerolog.DebugLevel
			}
			rootOpts.ConfigFile = configFile
			rootOpts.DryRun = dryRun
			rootOpts.Workers = workers
			rootOpts.Console = log.New(os.Stdout, level)
			rootOpts.UserLogger = log.NewUserLogger(ctx, os.Stdout)
			if dryRun {
				rootOpts.Preview = os.Stdout
			}
			return nil
		},
	}

	addRootFlags(cmd)

	cmd.AddCommand(
		commands.NewApplyCmd(rootOpts),
		commands.NewTailCmd(rootOpts),
		commands.NewBoundedCmd(rootOpts),
		commands.NewRebuildCmd(rootOpts),
		commands.NewRestoreCmd(rootOpts),
		newVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "markpatch.hcl", "patch plan file path")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "show what would change without writing")
	cmd.PersistentFlags().IntVarP(&workers, "workers", "w", 0, "max files patched in parallel for async plans (0 = no limit)")
}

// setupLogging configures zerolog based on flags
func setupLogging() *zerolog.Logger {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
	return &log
}
