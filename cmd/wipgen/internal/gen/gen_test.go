package gen

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/broady/wipgen/cmd/wipgen/internal/cliutil"
)

var schemas = []string{
	"../../../../testdata/browser_protocol.json",
	"../../../../testdata/js_protocol.json",
}

func TestCmd_Run(t *testing.T) {
	dir := t.TempDir()
	metricsFile := filepath.Join(t.TempDir(), "wipgen.prom")
	var stdout, stderr bytes.Buffer
	cmd := &Cmd{
		Out:         dir,
		SchemaFlags: cliutil.SchemaFlags{Schema: schemas, LogLevel: "info"},
		OutputFlags: cliutil.OutputFlags{Package: "cdp", Reader: "Reader"},
		MetricsFile: metricsFile,
		Stdout:      &stdout,
		Stderr:      &stderr,
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	reader, err := os.ReadFile(filepath.Join(dir, "reader_gen.go"))
	if err != nil {
		t.Fatalf("read reader: %v", err)
	}
	if !strings.Contains(string(reader), "package cdp\n") {
		t.Errorf("reader_gen.go has wrong package clause:\n%s", reader)
	}
	if !strings.Contains(stdout.String(), "wrote ") {
		t.Errorf("stdout = %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "generated protocol bindings") {
		t.Errorf("info log missing from stderr: %q", stderr.String())
	}

	prom, err := os.ReadFile(metricsFile)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	if !strings.Contains(string(prom), `wipgen_runs_total{result="ok"} 1`) {
		t.Errorf("metrics file missing run counter:\n%s", prom)
	}

	stdout.Reset()
	if err := cmd.Run(); err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if !strings.HasPrefix(stdout.String(), "wrote 0 files") {
		t.Errorf("second run stdout = %q, want nothing rewritten", stdout.String())
	}
}

func TestCmd_Run_InvalidSchema(t *testing.T) {
	dir := t.TempDir()
	cmd := &Cmd{
		Out: dir,
		SchemaFlags: cliutil.SchemaFlags{Schema: []string{
			"../../../../testdata/browser_protocol.json",
			"../../../../testdata/duplicate.json",
		}},
		Stdout: &bytes.Buffer{},
		Stderr: &bytes.Buffer{},
	}
	err := cmd.Run()
	if err == nil || !strings.Contains(err.Error(), "duplicate domain") {
		t.Fatalf("Run() error = %v, want duplicate domain", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("%d files written for invalid schema", len(entries))
	}
}

func TestCmd_Run_GenerationFailure(t *testing.T) {
	dir := t.TempDir()
	metricsFile := filepath.Join(t.TempDir(), "wipgen.prom")
	cmd := &Cmd{
		Out: dir,
		// Page refers to Runtime.ScriptId, which is only in js_protocol.json.
		SchemaFlags: cliutil.SchemaFlags{Schema: schemas[:1]},
		MetricsFile: metricsFile,
		Stdout:      &bytes.Buffer{},
		Stderr:      &bytes.Buffer{},
	}
	if err := cmd.Run(); err == nil {
		t.Fatal("Run() should fail on an unresolved reference")
	}
	prom, err := os.ReadFile(metricsFile)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	if !strings.Contains(string(prom), `wipgen_runs_total{result="error"} 1`) {
		t.Errorf("metrics file missing failed run:\n%s", prom)
	}
}
