package crx

import (
	"io"

	"github.com/lifegpc/circus-crx-tool/internal/logger"
)

var log = logger.New(io.Discard, logger.InfoLevel).Named("crx")

// SetLogger installs the logger used for the package's debug output.
// The shell layer calls this once at startup with a logger built from
// the --log-level flag; callers that never call it get silent defaults.
func SetLogger(l *logger.Logger) {
	log = l.Named("crx")
}
