// Package diag holds the logging setup and the debug assertions used by the
// simulation. Gameplay code never returns errors; a missing reference is
// reported here and the action is dropped. In strict mode (--debug, tests)
// a failed assertion panics instead.
package diag

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

var strict atomic.Bool

// SetStrict makes failed assertions panic.
func SetStrict(on bool) {
	strict.Store(on)
}

// Strict reports whether assertions panic.
func Strict() bool {
	return strict.Load()
}

// Assert logs msg with the key/value pairs when cond is false and panics in
// strict mode. It returns cond so callers can bail out inline.
func Assert(cond bool, msg string, keyvals ...any) bool {
	if cond {
		return true
	}
	log.Error("assertion failed: "+msg, keyvals...)
	if strict.Load() {
		panic(fmt.Sprintf("assertion failed: %s %v", msg, keyvals))
	}
	return false
}

// NewLogger creates a prefixed logger in the platform's style.
func NewLogger(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

// Setup points the default logger at a file under ~/.rewind so logging does
// not corrupt the TUI. The returned closer must be called on exit.
func Setup(path string, debug bool) (io.Closer, error) {
	if path != "" && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("diag: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("diag: cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("diag: cannot open log file: %w", err)
	}

	logger := NewLogger(f, "rewind")
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	log.SetDefault(logger)
	SetStrict(debug)
	return f, nil
}
