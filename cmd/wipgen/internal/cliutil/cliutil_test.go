package cliutil

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/broady/wipgen"
)

func TestSchemaFlags_Logger(t *testing.T) {
	tests := []struct {
		level   string
		enabled slog.Level
		muted   slog.Level
	}{
		{"", slog.LevelWarn, slog.LevelInfo},
		{"debug", slog.LevelDebug, slog.LevelDebug - 1},
		{"info", slog.LevelInfo, slog.LevelDebug},
		{"error", slog.LevelError, slog.LevelWarn},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			f := &SchemaFlags{LogLevel: tt.level}
			logger, err := f.Logger(&bytes.Buffer{})
			if err != nil {
				t.Fatalf("Logger() error = %v", err)
			}
			if !logger.Enabled(context.Background(), tt.enabled) {
				t.Errorf("level %s should be enabled", tt.enabled)
			}
			if logger.Enabled(context.Background(), tt.muted) {
				t.Errorf("level %s should be muted", tt.muted)
			}
		})
	}

	if _, err := (&SchemaFlags{LogLevel: "loud"}).Logger(&bytes.Buffer{}); err == nil {
		t.Error("Logger() should reject an unknown level")
	}
}

func TestOutputFlags_Apply(t *testing.T) {
	f := &OutputFlags{Package: "cdp", Runtime: "example.com/rt", Reader: "Parser", NoComments: true}
	cfg := f.Apply(wipgen.FromSchema(nil)).Config()
	if cfg.PackageName != "cdp" || cfg.RuntimeImport != "example.com/rt" || cfg.ReaderName != "Parser" || cfg.EmitComments {
		t.Errorf("Config() = %+v", cfg)
	}

	cfg = (&OutputFlags{Package: "protocol", Reader: "Reader"}).Apply(wipgen.FromSchema(nil)).Config()
	if cfg.RuntimeImport == "" {
		t.Error("empty --runtime should keep the default import")
	}
	if !cfg.EmitComments {
		t.Error("comments should stay on without --no-comments")
	}
}
