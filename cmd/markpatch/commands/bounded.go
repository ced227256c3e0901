package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/markpatch/cmd/markpatch/opts"
)

// NewBoundedCmd creates the command that replaces the lines between two markers
func NewBoundedCmd(opts *opts.RootOpts) *cobra.Command {
	flags := &patchFlags{}

	cmd := &cobra.Command{
		Use:   "bounded <file-glob>...",
		Short: "Replace the lines between a start marker and the next end marker",
		Long: `Bounded keeps the start marker line and the end marker line and swaps
everything between them for the replacement text.

The end marker must appear on a line after the start marker.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.plan("bounded", "bounded", args)
			if err != nil {
				return err
			}
			return run(cmd.Context(), opts, cfg)
		},
	}

	flags.register(cmd, true)

	return cmd
}
