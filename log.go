package polarity

import (
	"io"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

var pkgLogger atomic.Pointer[log.Logger]

func init() {
	pkgLogger.Store(log.NewWithOptions(io.Discard, log.Options{
		Level:  log.InfoLevel,
		Prefix: "polarity",
	}))
}

// SetLogger replaces the logger used by backends and runtimes. Nothing is
// logged by default.
func SetLogger(l *log.Logger) {
	if l != nil {
		pkgLogger.Store(l)
	}
}

// Logger returns the package logger.
func Logger() *log.Logger {
	return pkgLogger.Load()
}
