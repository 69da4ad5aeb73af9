package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPlayLogger(t *testing.T) {
	t.Run("quiet without debug", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "play.log")
		logger, closeLog, err := playLogger(path)
		if err != nil {
			t.Fatalf("playLogger() failed: %v", err)
		}
		logger.Debug("level started")
		if err := closeLog(); err != nil {
			t.Fatalf("close: %v", err)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("no log file should be created without --debug, stat err = %v", err)
		}
	})

	t.Run("debug writes to file", func(t *testing.T) {
		flagDebug = true
		t.Cleanup(func() { flagDebug = false })

		path := filepath.Join(t.TempDir(), "play.log")
		logger, closeLog, err := playLogger(path)
		if err != nil {
			t.Fatalf("playLogger() failed: %v", err)
		}
		logger.Debug("level started", "level", 1)
		if err := closeLog(); err != nil {
			t.Fatalf("close: %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read log: %v", err)
		}
		if !strings.Contains(string(data), "level started") {
			t.Errorf("log file should hold debug output, got %q", data)
		}
	})

	t.Run("unwritable path", func(t *testing.T) {
		flagDebug = true
		t.Cleanup(func() { flagDebug = false })

		if _, _, err := playLogger(filepath.Join(t.TempDir(), "missing", "play.log")); err == nil {
			t.Error("expected an error for a missing directory")
		}
	})
}
