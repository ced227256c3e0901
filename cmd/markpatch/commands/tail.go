package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/markpatch/cmd/markpatch/opts"
)

// NewTailCmd creates the command that replaces everything from a marker to end of file
func NewTailCmd(opts *opts.RootOpts) *cobra.Command {
	flags := &patchFlags{}

	cmd := &cobra.Command{
		Use:   "tail <file-glob>...",
		Short: "Replace everything from the first start marker to end of file",
		Long: `Tail finds the first line containing the start marker and replaces it,
and everything after it, with the replacement text.

Use --anchor keep to preserve the marker line and --terminator to append
a closing fragment after the replacement.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.plan("tail", "tail", args)
			if err != nil {
				return err
			}
			return run(cmd.Context(), opts, cfg)
		},
	}

	flags.register(cmd, false)
	cmd.Flags().StringVarP(&flags.terminator, "terminator", "t", "", "text appended after the replacement")

	return cmd
}
