package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupLoggingDisabled(t *testing.T) {
	t.Chdir(t.TempDir())

	if f := setupLogging(false); f != nil {
		f.Close()
		t.Fatal("expected nil log file without debug")
	}
	if log.Writer() != io.Discard {
		t.Errorf("log output = %v, want io.Discard", log.Writer())
	}
	if _, err := os.Stat(logDir); !os.IsNotExist(err) {
		t.Error("log directory created without debug")
	}
}

func TestSetupLoggingDebug(t *testing.T) {
	t.Chdir(t.TempDir())

	f := setupLogging(true)
	if f == nil {
		t.Fatal("expected a log file with debug")
	}
	defer func() {
		log.SetOutput(io.Discard)
		f.Close()
	}()

	if out := log.Writer(); out == os.Stdout || out == os.Stderr {
		t.Error("log output must not be the terminal")
	}

	log.Printf("[director] Login -> Terminal")
	data, err := os.ReadFile(filepath.Join(logDir, logFileName))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Login -> Terminal") {
		t.Errorf("log file missing message: %q", data)
	}
}

func TestSetupLoggingRotation(t *testing.T) {
	t.Chdir(t.TempDir())

	if err := os.MkdirAll(logDir, 0755); err != nil {
		t.Fatal(err)
	}
	logPath := filepath.Join(logDir, logFileName)
	if err := os.WriteFile(logPath, make([]byte, maxLogSize+1), 0644); err != nil {
		t.Fatal(err)
	}

	f := setupLogging(true)
	if f == nil {
		t.Fatal("expected a log file")
	}
	defer func() {
		log.SetOutput(io.Discard)
		f.Close()
	}()

	entries, err := os.ReadDir(logDir)
	if err != nil {
		t.Fatal(err)
	}
	rotated := 0
	for _, e := range entries {
		if e.Name() != logFileName && filepath.Ext(e.Name()) == ".log" {
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
