package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/walteh/markpatch/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// patchFlags are the flags shared by the single-patch commands
type patchFlags struct {
	start           string
	end             string
	replacement     string
	replacementFile string
	terminator      string
	anchor          string
	backup          bool
	backupSuffix    string
}

func (f *patchFlags) register(cmd *cobra.Command, bounded bool) {
	cmd.Flags().StringVar(&f.start, "start", "", "start marker text")
	if bounded {
		cmd.Flags().StringVar(&f.end, "end", "", "end marker text")
		_ = cmd.MarkFlagRequired("end")
	}
	_ = cmd.MarkFlagRequired("start")
	cmd.Flags().StringVarP(&f.replacement, "replacement", "r", "", "replacement text")
	cmd.Flags().StringVarP(&f.replacementFile, "replacement-file", "f", "", "read the replacement text from a file")
	cmd.Flags().StringVar(&f.anchor, "anchor", "", "keep or replace the start marker line")
	cmd.Flags().BoolVar(&f.backup, "backup", false, "snapshot each file before its first write")
	cmd.Flags().StringVar(&f.backupSuffix, "backup-suffix", "", "suffix for backup snapshots (default .backup)")
}

// plan builds a one-patch in-memory plan rooted at the working directory
func (f *patchFlags) plan(name, mode string, files []string, statements ...config.Statement) (*config.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Errorf("getting working directory: %w", err)
	}

	cfg := &config.Config{
		BackupSuffix: f.backupSuffix,
		Patches: []config.Patch{{
			Name:            name,
			Files:           files,
			Mode:            mode,
			Start:           f.start,
			End:             f.end,
			Replacement:     f.replacement,
			ReplacementFile: f.replacementFile,
			Terminator:      f.terminator,
			Anchor:          f.anchor,
			Backup:          f.backup,
			Statements:      statements,
		}},
	}
	cfg.SetLocation(filepath.Join(wd, "markpatch"))

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating flags: %w", err)
	}
	return cfg, nil
}
