package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func inTempDir(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
	prev := log.Writer()
	t.Cleanup(func() { log.SetOutput(prev) })
}

func TestSetupLogging_OffDiscards(t *testing.T) {
	inTempDir(t)
	if f := setupLogging(false); f != nil {
		f.Close()
		t.Fatal("expected nil file with debug off")
	}
	if log.Writer() != io.Discard {
		t.Errorf("log output = %v, want io.Discard", log.Writer())
	}
	if _, err := os.Stat(logDir); !os.IsNotExist(err) {
		t.Error("log dir created with debug off")
	}
}

func TestSetupLogging_DebugWritesFile(t *testing.T) {
	inTempDir(t)
	f := setupLogging(true)
	if f == nil {
		t.Fatal("expected log file with debug on")
	}
	defer f.Close()

	if w := log.Writer(); w == os.Stdout || w == os.Stderr {
		t.Error("logs must not reach the terminal")
	}
	log.Printf("[TEST] hello")

	data, err := os.ReadFile(filepath.Join(logDir, logFileName))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[TEST] hello") {
		t.Errorf("log file missing message: %q", data)
	}
}

func TestSetupLogging_RotatesLargeFile(t *testing.T) {
	inTempDir(t)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		t.Fatal(err)
	}
	logPath := filepath.Join(logDir, logFileName)
	if err := os.WriteFile(logPath, make([]byte, maxLogSize+1), 0644); err != nil {
		t.Fatal(err)
	}

	f := setupLogging(true)
	if f == nil {
		t.Fatal("expected log file")
	}
	defer f.Close()

	entries, err := os.ReadDir(logDir)
	if err != nil {
		t.Fatal(err)
	}
	rotated := 0
	for _, e := range entries {
		if e.Name() != logFileName && strings.HasPrefix(e.Name(), "hamstercide-") {
			rotated++
		}
	}
	if rotated != 1 {
		t.Errorf("rotated files = %d, want 1", rotated)
	}
	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() > maxLogSize {
		t.Errorf("fresh log is %d bytes", info.Size())
	}
}
