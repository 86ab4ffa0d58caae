package rootio

import (
	"log/slog"
	"sync/atomic"
)

// pkgLogger is the package-wide default, overridable via WithLogger.
// A Logger must always be safe to call even before any file has been
// opened, so we never leave it nil.
var pkgLogger atomic.Pointer[slog.Logger]

func defaultLogger() *slog.Logger {
	if l := pkgLogger.Load(); l != nil {
		return l
	}
	return slog.Default()
}

func setDefaultLogger(l *slog.Logger) {
	if l == nil {
		return
	}
	pkgLogger.Store(l)
}
