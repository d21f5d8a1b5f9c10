package shared

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLogger(t *testing.T) {
	t.Run("writes to the provided writer", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewLogger(buf)

		logger.Info("hello")

		if !strings.Contains(buf.String(), "hello") {
			t.Errorf("expected log output, got %q", buf.String())
		}
	})

	t.Run("nil writer defaults to stderr", func(t *testing.T) {
		logger := NewLogger(nil)
		if logger == nil {
			t.Fatal("expected logger")
		}
	})
}

func TestNewFileLogger(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "logs", "app.log")

	logger, err := NewFileLogger(logPath)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	logger.Info("file entry")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("expected log file to exist, got %v", err)
	}
	if !strings.Contains(string(data), "file entry") {
		t.Errorf("expected log entry in file, got %q", string(data))
	}
}

func TestWithLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewLogger(buf)

	child := WithLogger(logger, "component", "sync")
	child.Info("tagged")

	if !strings.Contains(buf.String(), "component") {
		t.Errorf("expected key-value pair in output, got %q", buf.String())
	}
}

func TestSetLogLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewLogger(buf)

	SetLogLevel(logger, log.ErrorLevel)
	logger.Info("suppressed")

	if strings.Contains(buf.String(), "suppressed") {
		t.Errorf("expected info entry to be suppressed, got %q", buf.String())
	}
}

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	if a == "" || b == "" {
		t.Fatal("expected non-empty IDs")
	}
	if a == b {
		t.Error("expected IDs to be unique")
	}
	if len(a) != 36 {
		t.Errorf("expected UUID string length 36, got %d", len(a))
	}
}
