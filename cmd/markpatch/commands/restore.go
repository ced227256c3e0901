package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/walteh/markpatch/cmd/markpatch/opts"
	"github.com/walteh/markpatch/pkg/config"
	"github.com/walteh/markpatch/pkg/operation"
	"github.com/walteh/markpatch/pkg/store"
	"gitlab.com/tozd/go/errors"
)

// NewRestoreCmd creates the command that puts backups back in place
func NewRestoreCmd(opts *opts.RootOpts) *cobra.Command {
	var backupSuffix string

	cmd := &cobra.Command{
		Use:   "restore <file-glob>...",
		Short: "Copy each file's backup snapshot back over it",
		Long: `Restore undoes every patch applied since a file was backed up by copying
its backup (written by --backup) back over the live file. The backup itself
is kept, so patches can be applied again afterwards.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			wd, err := os.Getwd()
			if err != nil {
				return errors.Errorf("getting working directory: %w", err)
			}

			suffix := backupSuffix
			if suffix == "" {
				suffix = store.DefaultBackupSuffix
			}
			files, err := config.Patch{Name: "restore", Files: args}.ExpandFiles(wd, suffix, store.TempSuffix)
			if err != nil {
				return errors.Errorf("expanding files: %w", err)
			}

			outcomes, runErr := operation.Restore(ctx, store.New(wd, suffix), opts.Console, files, opts.DryRun)
			summarize(opts, operation.Changes(outcomes, opts.DryRun))
			if runErr != nil {
				return errors.Errorf("restoring backups: %w", runErr)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&backupSuffix, "backup-suffix", "", "suffix of the backup snapshots (default .backup)")

	return cmd
}
