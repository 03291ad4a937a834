// Package debug provides optional debug logging for swipeview.
//
// Logging is enabled by setting the SWIPEVIEW_DEBUG environment variable. A
// value of "1" writes to stderr; any other value is treated as a file path the
// messages are appended to. The terminal is owned by the application while it
// runs, so a file is usually what you want:
//
//	SWIPEVIEW_DEBUG=/tmp/swipeview.log swipedemo
//
// When disabled (default) all functions are no-ops.
package debug

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// EnvVar is the environment variable that enables debug logging.
const EnvVar = "SWIPEVIEW_DEBUG"

var (
	mu      sync.Mutex
	enabled bool
	logger  *log.Logger
	closer  io.Closer
)

func init() {
	target := os.Getenv(EnvVar)
	if target == "" {
		return
	}
	if target == "1" {
		SetOutput(os.Stderr)
		return
	}
	if err := Init(target); err != nil {
		fmt.Fprintf(os.Stderr, "swipeview: %v\n", err)
	}
}

// Init opens path for appending and routes debug output to it.
func Init(path string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open debug log: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	logger = log.New(f, "[swipeview] ", log.Ltime|log.Lmicroseconds)
	closer = f
	enabled = true
	return nil
}

// SetOutput routes debug output to w and enables logging. A nil writer
// disables logging.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	if w == nil {
		enabled = false
		logger = nil
		return
	}
	logger = log.New(w, "[swipeview] ", log.Ltime|log.Lmicroseconds)
	enabled = true
}

// Close closes the log file opened by Init, if any, and disables logging.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	err := closeLocked()
	enabled = false
	logger = nil
	return err
}

func closeLocked() error {
	if closer == nil {
		return nil
	}
	err := closer.Close()
	closer = nil
	return err
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// Log writes a printf-style message if debug logging is enabled.
func Log(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if !enabled {
		return
	}
	logger.Printf(format, args...)
}

// LogIf writes a message only if cond is true.
func LogIf(cond bool, format string, args ...any) {
	if !cond {
		return
	}
	Log(format, args...)
}
