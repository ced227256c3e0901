package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/markpatch/cmd/markpatch/opts"
	"github.com/walteh/markpatch/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// NewApplyCmd creates the command that runs every patch in a plan file
func NewApplyCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply [plan]",
		Short: "Apply every patch in a plan file",
		Long: `Apply loads a patch plan (HCL, YAML or JSON) and applies each patch to
the files its globs match, in declaration order.

Patches with backup enabled snapshot each file before its first write.
Rebuild patches always start from that snapshot, so running apply twice
produces the same bytes as running it once.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			path := opts.ConfigFile
			if len(args) == 1 {
				path = args[0]
			}

			cfg, err := config.Load(ctx, path)
			if err != nil {
				return errors.Errorf("loading plan: %w", err)
			}

			opts.Console.Header("applying " + path)
			return run(ctx, opts, cfg)
		},
	}

	return cmd
}
