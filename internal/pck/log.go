package pck

import (
	"io"

	"github.com/lifegpc/circus-crx-tool/internal/logger"
)

var log = logger.New(io.Discard, logger.InfoLevel).Named("pck")

// SetLogger installs the logger used for the package's debug output.
func SetLogger(l *logger.Logger) {
	log = l.Named("pck")
}
