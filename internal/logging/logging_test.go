package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestConfigure_LevelParsing(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  logrus.Level
	}{
		{"debug", "debug", logrus.DebugLevel},
		{"warn", "warn", logrus.WarnLevel},
		{"unknown falls back to info", "chatty", logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Configure(tt.level)
			if got := logrus.StandardLogger().GetLevel(); got != tt.want {
				t.Errorf("level = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetupFile_CreatesParentDirs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logs", "server.log")

	closer, err := SetupFile(path)
	if err != nil {
		t.Fatalf("SetupFile() error = %v", err)
	}
	defer closer.Close() //nolint:errcheck

	Component("test").Info("hello")

	if _, err := os.Stat(path); err != nil {
		t.Errorf("log file not created: %v", err)
	}
}

func TestComponent_AddsField(t *testing.T) {
	entry := Component("runner")
	if entry.Data["component"] != "runner" {
		t.Errorf("component field = %v, want %q", entry.Data["component"], "runner")
	}
}
