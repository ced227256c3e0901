package opts

import (
	"io"

	"github.com/walteh/markpatch/pkg/log"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile string
	DryRun     bool
	Workers    int
	Preview    io.Writer
	Console    *log.Logger
	UserLogger *log.UserLogger
}
