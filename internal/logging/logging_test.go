package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want logrus.Level
	}{
		{"quiet", Options{}, logrus.WarnLevel},
		{"verbose", Options{Verbose: true}, logrus.InfoLevel},
		{"debug", Options{Debug: true}, logrus.DebugLevel},
		{"debug wins", Options{Verbose: true, Debug: true}, logrus.DebugLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Console = &bytes.Buffer{}
			log, closer, err := New(tt.opts)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			defer closer.Close()
			if log.GetLevel() != tt.want {
				t.Errorf("level = %v, want %v", log.GetLevel(), tt.want)
			}
		})
	}
}

func TestNewWritesFile(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "cleaninstall.log")

	log, closer, err := New(Options{Verbose: true, File: path, Console: &console})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	log.WithField("path", "/p/node_modules").Info("Removing")
	log.Debug("not recorded")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if !strings.Contains(console.String(), "Removing") {
		t.Errorf("console output missing entry: %q", console.String())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("log file has %d lines, want 1: %q", len(lines), data)
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["path"] != "/p/node_modules" || entry["msg"] != "Removing" {
		t.Errorf("unexpected entry: %v", entry)
	}
}
