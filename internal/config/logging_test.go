package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestSetupLoggerWithWriters(t *testing.T) {
	var stderr, file bytes.Buffer
	logger := SetupLoggerWithWriters(&stderr, &file, slog.LevelInfo)

	logger.Info("request resolved", "outcome", "succeeded")
	logger.Debug("below threshold")

	if !strings.Contains(stderr.String(), "request resolved") {
		t.Errorf("stderr output = %q, want text record", stderr.String())
	}
	if strings.Contains(stderr.String(), "below threshold") {
		t.Error("debug record emitted despite info level")
	}

	var rec map[string]any
	if err := json.Unmarshal(file.Bytes(), &rec); err != nil {
		t.Fatalf("file output is not a JSON record: %v (%q)", err, file.String())
	}
	if rec["msg"] != "request resolved" {
		t.Errorf("JSON msg = %v, want request resolved", rec["msg"])
	}
	if rec["outcome"] != "succeeded" {
		t.Errorf("JSON outcome = %v, want succeeded", rec["outcome"])
	}
}
