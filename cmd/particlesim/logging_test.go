package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestSetupLoggingDisabledByDefault(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	if f := setupLogging(dir, false); f != nil {
		f.Close()
		t.Error("expected nil log file when debug=false")
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("expected no logs directory when debug=false")
	}
}

func TestSetupLoggingWritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	f := setupLogging(dir, true)
	if f == nil {
		t.Fatal("expected non-nil log file when debug=true")
	}
	defer func() {
		setupLogging(dir, false)
		f.Close()
	}()

	log.Info("test message", "tick", 3)

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "test message") || !strings.Contains(string(data), "tick=3") {
		t.Errorf("unexpected log content %q", data)
	}
}

func TestSetupLoggingRotation(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, logFileName)

	if err := os.WriteFile(logPath, make([]byte, maxLogSize+1), 0644); err != nil {
		t.Fatal(err)
	}

	f := setupLogging(dir, true)
	if f == nil {
		t.Fatal("expected non-nil log file")
	}
	defer func() {
		setupLogging(dir, false)
		f.Close()
	}()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	rotated := false
	for _, e := range entries {
		if e.Name() != logFileName && filepath.Ext(e.Name()) == ".log" {
			rotated = true
		}
	}
	if !rotated {
		t.Error("expected rotated log file")
	}

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() > maxLogSize {
		t.Errorf("expected fresh log file, got %d bytes", info.Size())
	}
}
