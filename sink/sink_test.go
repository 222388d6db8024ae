package sink

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
		errMsg  string
	}{
		{name: "simple file", path: "debugger_requests.go"},
		{name: "nested path", path: "protocol/debugger_paused_event_data.go"},
		{name: "dots inside name", path: "a..b_gen.go"},
		{name: "empty path", path: "", wantErr: true, errMsg: "empty"},
		{name: "absolute path", path: "/etc/passwd", wantErr: true, errMsg: "absolute paths not allowed"},
		{name: "windows drive", path: "C:foo.go", wantErr: true, errMsg: "absolute paths not allowed"},
		{name: "traversal", path: "a/../b.go", wantErr: true, errMsg: "path traversal not allowed"},
		{name: "leading traversal", path: "../b.go", wantErr: true, errMsg: "path traversal not allowed"},
		{name: "current dir prefix", path: "./b.go", wantErr: true, errMsg: "not clean"},
		{name: "double slash", path: "a//b.go", wantErr: true, errMsg: "not clean"},
		{name: "trailing slash", path: "a/", wantErr: true, errMsg: "not clean"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidatePath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("ValidatePath() error = %v, want error containing %q", err, tt.errMsg)
			}
		})
	}
}

func generatedOnly(_ string, content []byte) bool {
	return strings.HasPrefix(string(content), "// generated")
}

var _ Pruner = (*MemorySink)(nil)
var _ Pruner = (*FilesystemSink)(nil)

func TestMemorySink(t *testing.T) {
	ctx := context.Background()

	t.Run("write and read", func(t *testing.T) {
		s := NewMemorySink()
		if err := s.WriteFile(ctx, "a.go", []byte("package a")); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
		if got := string(s.Get("a.go")); got != "package a" {
			t.Errorf("Get() = %q, want %q", got, "package a")
		}
		if s.Get("missing.go") != nil {
			t.Error("Get() of missing file should be nil")
		}
	})

	t.Run("Get returns copy", func(t *testing.T) {
		s := NewMemorySink()
		_ = s.WriteFile(ctx, "a.go", []byte("original"))
		got := s.Get("a.go")
		got[0] = 'X'
		if string(s.Get("a.go")) != "original" {
			t.Error("modification of Get() result leaked into sink")
		}
	})

	t.Run("only if changed", func(t *testing.T) {
		s := NewMemorySink()
		s.OnlyIfChanged = true
		if err := s.WriteFile(ctx, "a.go", []byte("x")); err != nil {
			t.Fatalf("first WriteFile() error = %v", err)
		}
		if err := s.WriteFile(ctx, "a.go", []byte("x")); !errors.Is(err, ErrUnchanged) {
			t.Errorf("second WriteFile() error = %v, want ErrUnchanged", err)
		}
		if err := s.WriteFile(ctx, "a.go", []byte("y")); err != nil {
			t.Errorf("changed WriteFile() error = %v", err)
		}
	})

	t.Run("prune", func(t *testing.T) {
		s := NewMemorySink()
		_ = s.WriteFile(ctx, "keep_gen.go", []byte("// generated"))
		_ = s.WriteFile(ctx, "stale_gen.go", []byte("// generated"))
		_ = s.WriteFile(ctx, "doc.go", []byte("package protocol"))

		removed, err := s.Prune(ctx, []string{"keep_gen.go"}, generatedOnly)
		if err != nil {
			t.Fatalf("Prune() error = %v", err)
		}
		if len(removed) != 1 || removed[0] != "stale_gen.go" {
			t.Errorf("Prune() removed %v, want [stale_gen.go]", removed)
		}
		if len(s.Files()) != 2 || s.Get("doc.go") == nil {
			t.Errorf("files after prune = %d, want keep_gen.go and doc.go", len(s.Files()))
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		s := NewMemorySink()
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		if err := s.WriteFile(cctx, "a.go", []byte("a")); err == nil {
			t.Error("WriteFile() with cancelled context should fail")
		}
	})
}

func TestFilesystemSink(t *testing.T) {
	ctx := context.Background()

	t.Run("creates parent directories", func(t *testing.T) {
		dir := t.TempDir()
		s := NewFilesystemSink(dir)
		if err := s.WriteFile(ctx, "a/b/c.go", []byte("nested")); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
		got, err := os.ReadFile(filepath.Join(dir, "a", "b", "c.go"))
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if string(got) != "nested" {
			t.Errorf("content = %q, want %q", got, "nested")
		}
	})

	t.Run("skips identical content", func(t *testing.T) {
		dir := t.TempDir()
		s := NewFilesystemSink(dir)
		path := filepath.Join(dir, "a.go")

		if err := s.WriteFile(ctx, "a.go", []byte("same")); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
		old := time.Now().Add(-time.Hour)
		if err := os.Chtimes(path, old, old); err != nil {
			t.Fatalf("Chtimes() error = %v", err)
		}

		if err := s.WriteFile(ctx, "a.go", []byte("same")); !errors.Is(err, ErrUnchanged) {
			t.Fatalf("WriteFile() error = %v, want ErrUnchanged", err)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("Stat() error = %v", err)
		}
		if !info.ModTime().Equal(old) {
			t.Errorf("unchanged file was rewritten: mtime %v, want %v", info.ModTime(), old)
		}
	})

	t.Run("rewrites changed content", func(t *testing.T) {
		dir := t.TempDir()
		s := NewFilesystemSink(dir)
		_ = s.WriteFile(ctx, "a.go", []byte("first"))
		if err := s.WriteFile(ctx, "a.go", []byte("second")); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
		got, _ := os.ReadFile(filepath.Join(dir, "a.go"))
		if string(got) != "second" {
			t.Errorf("content = %q, want %q", got, "second")
		}
	})

	t.Run("default mode", func(t *testing.T) {
		dir := t.TempDir()
		s := NewFilesystemSink(dir)
		s.Mode = 0
		if err := s.WriteFile(ctx, "a.go", []byte("x")); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
		info, err := os.Stat(filepath.Join(dir, "a.go"))
		if err != nil {
			t.Fatalf("Stat() error = %v", err)
		}
		if info.Mode().Perm() != 0644 {
			t.Errorf("mode = %o, want 0644", info.Mode().Perm())
		}
	})

	t.Run("no temp files left behind", func(t *testing.T) {
		dir := t.TempDir()
		s := NewFilesystemSink(dir)
		_ = s.WriteFile(ctx, "a.go", []byte("x"))
		matches, _ := filepath.Glob(filepath.Join(dir, ".wipgen-*.tmp"))
		if len(matches) != 0 {
			t.Errorf("temp files left behind: %v", matches)
		}
	})

	t.Run("rejects invalid path", func(t *testing.T) {
		s := NewFilesystemSink(t.TempDir())
		if err := s.WriteFile(ctx, "../escape.go", []byte("x")); err == nil {
			t.Error("WriteFile() should reject traversal")
		}
	})
	t.Run("prune", func(t *testing.T) {
		dir := t.TempDir()
		s := NewFilesystemSink(dir)
		for path, content := range map[string]string{
			"keep_gen.go":      "// generated",
			"stale_gen.go":     "// generated",
			"sub/stale_gen.go": "// generated",
			"handwritten.go":   "package protocol",
			".git/old_gen.go":  "// generated",
		} {
			if err := s.WriteFile(ctx, path, []byte(content)); err != nil {
				t.Fatalf("WriteFile(%s) error = %v", path, err)
			}
		}

		removed, err := s.Prune(ctx, []string{"keep_gen.go"}, generatedOnly)
		if err != nil {
			t.Fatalf("Prune() error = %v", err)
		}
		want := []string{"stale_gen.go", "sub/stale_gen.go"}
		if strings.Join(removed, ",") != strings.Join(want, ",") {
			t.Errorf("Prune() removed %v, want %v", removed, want)
		}
		for _, path := range []string{"keep_gen.go", "handwritten.go", ".git/old_gen.go"} {
			if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(path))); err != nil {
				t.Errorf("%s should survive: %v", path, err)
			}
		}
	})

	t.Run("prune missing root", func(t *testing.T) {
		s := NewFilesystemSink(filepath.Join(t.TempDir(), "never-created"))
		removed, err := s.Prune(ctx, nil, generatedOnly)
		if err != nil || len(removed) != 0 {
			t.Errorf("Prune() = %v, %v; want nothing", removed, err)
		}
	})
}
