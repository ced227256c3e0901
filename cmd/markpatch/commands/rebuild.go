package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/markpatch/cmd/markpatch/opts"
	"github.com/walteh/markpatch/pkg/config"
)

// NewRebuildCmd creates the command that re-derives files from their backups
func NewRebuildCmd(opts *opts.RootOpts) *cobra.Command {
	flags := &patchFlags{}
	var imports, usings, regexes []string

	cmd := &cobra.Command{
		Use:   "rebuild <file-glob>...",
		Short: "Strip statements from a backup and apply a bounded patch to it",
		Long: `Rebuild reads each file's backup snapshot, removes the statements named
by --strip-import, --strip-using and --strip-regex, then applies a bounded
replacement. The result overwrites the live file; the backup is left alone,
so rebuilding again yields the same output.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var statements []config.Statement
			for _, sym := range imports {
				statements = append(statements, config.Statement{Keyword: "import", Symbol: sym})
			}
			for _, sym := range usings {
				statements = append(statements, config.Statement{Keyword: "using", Symbol: sym})
			}
			for _, re := range regexes {
				statements = append(statements, config.Statement{Regex: re})
			}

			cfg, err := flags.plan("rebuild", "rebuild", args, statements...)
			if err != nil {
				return err
			}

			return run(cmd.Context(), opts, cfg)
		},
	}

	flags.register(cmd, true)
	cmd.Flags().StringSliceVar(&imports, "strip-import", nil, "remove import statements naming this symbol")
	cmd.Flags().StringSliceVar(&usings, "strip-using", nil, "remove using statements naming this symbol")
	cmd.Flags().StringSliceVar(&regexes, "strip-regex", nil, "remove lines matching this expression")

	return cmd
}
