// Package sink provides output destinations for generated files.
package sink

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// ErrUnchanged is returned by a sink that skipped a write because the
// destination already holds identical content. Callers treat it as success.
var ErrUnchanged = errors.New("content unchanged")

// OutputSink receives generated file content.
type OutputSink interface {
	// WriteFile writes content to the specified path.
	// The path is relative; the sink determines the actual location.
	WriteFile(ctx context.Context, path string, content []byte) error
}

// Pruner is implemented by sinks that can delete generated files left over
// from earlier runs.
type Pruner interface {
	// Prune removes every file that owned accepts and that is not listed in
	// keep. It returns the removed paths, sorted.
	Prune(ctx context.Context, keep []string, owned Ownership) ([]string, error)
}

// Ownership reports whether an existing file was produced by the generator
// and may therefore be deleted.
type Ownership func(path string, content []byte) bool

// FilesystemSink writes to a directory on the local filesystem.
type FilesystemSink struct {
	// Root is the base directory for all writes.
	Root string

	// Mode is the file permission mode (default: 0644).
	Mode os.FileMode

	// OnlyIfChanged skips the write, returning ErrUnchanged, when the file
	// already exists with byte-identical content. Keeping mtimes stable
	// means build tools do not recompile untouched output.
	OnlyIfChanged bool
}

// NewFilesystemSink creates a FilesystemSink writing to root that only
// rewrites files whose content changed.
func NewFilesystemSink(root string) *FilesystemSink {
	return &FilesystemSink{
		Root:          root,
		Mode:          0644,
		OnlyIfChanged: true,
	}
}

// resolve maps a relative output path to a location inside Root.
func (s *FilesystemSink) resolve(path string) (string, error) {
	if err := ValidatePath(path); err != nil {
		return "", fmt.Errorf("invalid path %q: %w", path, err)
	}
	absRoot, err := filepath.Abs(s.Root)
	if err != nil {
		return "", fmt.Errorf("resolve root directory: %w", err)
	}
	full := filepath.Join(absRoot, filepath.FromSlash(path))
	if !strings.HasPrefix(full, absRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes root directory: %q", path)
	}
	return full, nil
}

// WriteFile writes content to path within the root directory. Parent
// directories are created as needed and the file is replaced atomically.
func (s *FilesystemSink) WriteFile(ctx context.Context, path string, content []byte) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.OnlyIfChanged {
		existing, err := os.ReadFile(full)
		switch {
		case err == nil && bytes.Equal(existing, content):
			return ErrUnchanged
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return fmt.Errorf("read existing %s: %w", path, err)
		}
	}

	mode := s.Mode
	if mode == 0 {
		mode = 0644
	}
	return replaceFile(ctx, full, content, mode)
}

// replaceFile writes content next to full and renames it into place, so
// readers never observe a partially written file.
func replaceFile(ctx context.Context, full string, content []byte, mode os.FileMode) (err error) {
	dir := filepath.Dir(full)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".wipgen-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	_, werr := tmp.Write(content)
	if cerr := tmp.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return fmt.Errorf("write temp file: %w", werr)
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return fmt.Errorf("set file mode: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), full); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Prune deletes owned regular files under Root that are not in keep.
// Hidden directories are not descended into.
func (s *FilesystemSink) Prune(ctx context.Context, keep []string, owned Ownership) ([]string, error) {
	kept := make(map[string]bool, len(keep))
	for _, k := range keep {
		kept[k] = true
	}

	var removed []string
	err := filepath.WalkDir(s.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if p != s.Root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(s.Root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if kept[rel] {
			return nil
		}
		content, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		if !owned(rel, content) {
			return nil
		}
		if err := os.Remove(p); err != nil {
			return err
		}
		removed = append(removed, rel)
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) && len(removed) == 0 {
		// Nothing was ever generated here.
		return nil, nil
	}
	if err != nil {
		return removed, fmt.Errorf("prune %s: %w", s.Root, err)
	}
	slices.Sort(removed)
	return removed, nil
}

// MemorySink stores generated files in memory.
// All operations are thread-safe.
type MemorySink struct {
	mu    sync.RWMutex
	files map[string][]byte

	// OnlyIfChanged mirrors FilesystemSink.OnlyIfChanged.
	OnlyIfChanged bool
}

// NewMemorySink creates a new MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string][]byte)}
}

// WriteFile stores a copy of content under path.
func (s *MemorySink) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := ValidatePath(path); err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.files[path]; ok && s.OnlyIfChanged && bytes.Equal(existing, content) {
		return ErrUnchanged
	}
	s.files[path] = bytes.Clone(content)
	return nil
}

// Prune drops owned files not listed in keep.
func (s *MemorySink) Prune(ctx context.Context, keep []string, owned Ownership) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var removed []string
	for path, content := range s.files {
		if slices.Contains(keep, path) || !owned(path, content) {
			continue
		}
		delete(s.files, path)
		removed = append(removed, path)
	}
	slices.Sort(removed)
	return removed, nil
}

// Files returns a copy of all stored files.
func (s *MemorySink) Files() map[string][]byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string][]byte, len(s.files))
	for path, content := range s.files {
		out[path] = bytes.Clone(content)
	}
	return out
}

// Get returns the content of one file, or nil if it was never written.
func (s *MemorySink) Get(path string) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return bytes.Clone(s.files[path])
}

// ValidatePath checks that path is a clean, relative, slash-separated path
// that stays inside the sink root.
func ValidatePath(path string) error {
	if path == "" {
		return errors.New("path is empty")
	}
	if filepath.IsAbs(path) || strings.HasPrefix(path, "/") || hasDriveLetter(path) {
		return errors.New("absolute paths not allowed")
	}
	if slices.Contains(strings.Split(path, "/"), "..") {
		return errors.New("path traversal not allowed")
	}
	if cleaned := filepath.ToSlash(filepath.Clean(path)); cleaned != path {
		return fmt.Errorf("path is not clean (expected %q, got %q)", cleaned, path)
	}
	return nil
}

func hasDriveLetter(path string) bool {
	if len(path) < 2 || path[1] != ':' {
		return false
	}
	c := path[0] | 0x20
	return c >= 'a' && c <= 'z'
}
