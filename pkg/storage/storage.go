package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ArtifactStore abstracts where generated site artifacts land so builds can
// target the local filesystem, an object store, or an in-memory sink in tests.
type ArtifactStore interface {
	EnsureDir(ctx context.Context, path string) error
	WriteFile(ctx context.Context, path string, content io.Reader) error
	ReadFile(ctx context.Context, path string) ([]byte, error)
	Remove(ctx context.Context, path string) error
	RemoveAll(ctx context.Context, path string) error
}

// OSStore writes artifacts beneath a root directory on the local filesystem.
// Paths handed to the store are interpreted relative to Root; attempts to
// escape the root are rejected.
type OSStore struct {
	root string
}

// NewOSStore constructs an ArtifactStore rooted at the supplied directory.
func NewOSStore(root string) (*OSStore, error) {
	trimmed := strings.TrimSpace(root)
	if trimmed == "" {
		return nil, fmt.Errorf("storage: root directory is required")
	}
	return &OSStore{root: filepath.Clean(trimmed)}, nil
}

// Root returns the base directory artifacts are written beneath.
func (s *OSStore) Root() string {
	return s.root
}

func (s *OSStore) resolve(path string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(strings.TrimSpace(path)))
	if cleaned == "" || cleaned == "." {
		return s.root, nil
	}
	if filepath.IsAbs(cleaned) || strings.HasPrefix(cleaned, "..") {
		return "", fmt.Errorf("storage: path %q escapes store root", path)
	}
	return filepath.Join(s.root, cleaned), nil
}

// EnsureDir creates the directory (and parents) when missing.
func (s *OSStore) EnsureDir(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := s.resolve(path)
	if err != nil {
		return err
	}
	return os.MkdirAll(target, 0o755)
}

// WriteFile streams content into the target path, creating parent directories.
func (s *OSStore) WriteFile(ctx context.Context, path string, content io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if content == nil {
		return fmt.Errorf("storage: write %s: content reader is required", path)
	}
	target, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("storage: ensure parent for %s: %w", path, err)
	}
	file, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("storage: create %s: %w", path, err)
	}
	defer file.Close()
	if _, err := io.Copy(file, content); err != nil {
		return fmt.Errorf("storage: write %s: %w", path, err)
	}
	return nil
}

// ReadFile loads the artifact at path. Missing files surface fs.ErrNotExist.
func (s *OSStore) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	target, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(target)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", path, err)
	}
	return data, nil
}

// Remove deletes a single artifact, tolerating already-missing files.
func (s *OSStore) Remove(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: remove %s: %w", path, err)
	}
	return nil
}

// RemoveAll deletes the path recursively. An empty path clears the store root.
func (s *OSStore) RemoveAll(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(target); err != nil {
		return fmt.Errorf("storage: remove all %s: %w", path, err)
	}
	return nil
}

// IsNotExist reports whether err indicates a missing artifact.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
