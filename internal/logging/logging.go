// Package logging configures the shared logrus logger.
//
// The CLI logs to stderr. The MCP server logs to a file, because stdout
// carries the protocol stream and stderr is visible to the agent host.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Fields re-exports logrus.Fields so callers don't import logrus directly.
type Fields = logrus.Fields

var root = logrus.StandardLogger()

// Configure sets the global level and format. Unknown level names fall back
// to info.
func Configure(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	root.SetLevel(lvl)
	root.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	root.SetOutput(os.Stderr)
}

// SetupFile redirects the global logger to the given file, creating parent
// directories as needed. Returns the file's closer for cleanup.
func SetupFile(path string) (io.Closer, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory %s: %w", dir, err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	root.SetOutput(f)
	return f, nil
}

// Component returns an entry tagged with a component field, e.g. "runner",
// "approval", "store".
func Component(name string) *logrus.Entry {
	return root.WithField("component", name)
}
