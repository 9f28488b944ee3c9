// Package fsblob stores blobs as plain files under a root directory.
// Refs are the slash-separated keys handed to Put, so a different
// backend (object storage) can be swapped in behind the same interface
// without touching stored metadata semantics.
package fsblob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"docvault/internal/domain/storage"
)

type Store struct {
	root string
}

// New creates a store rooted at dir, creating it if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create blob root: %w", err)
	}
	return &Store{root: dir}, nil
}

var _ storage.BlobStore = (*Store)(nil)

// Put writes the content under key and returns key as the ref.
// The write goes to a temp file first and is renamed into place so a
// failed upload never leaves a half-written blob behind.
func (s *Store) Put(ctx context.Context, key string, r io.Reader) (string, error) {
	path, err := s.resolve(key)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create blob directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp blob: %w", err)
	}

	_, copyErr := io.Copy(tmp, r)
	closeErr := tmp.Close()
	if copyErr != nil || closeErr != nil {
		os.Remove(tmp.Name())
		if copyErr != nil {
			return "", fmt.Errorf("write blob: %w", copyErr)
		}
		return "", fmt.Errorf("close blob: %w", closeErr)
	}

	if err := ctx.Err(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("commit blob: %w", err)
	}

	return key, nil
}

// Open streams a blob back along with its size.
func (s *Store) Open(ctx context.Context, ref string) (io.ReadCloser, int64, error) {
	path, err := s.resolve(ref)
	if err != nil {
		return nil, 0, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, fmt.Errorf("blob %s: %w", ref, os.ErrNotExist)
		}
		return nil, 0, fmt.Errorf("open blob: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("stat blob: %w", err)
	}

	return f, info.Size(), nil
}

// Delete removes a blob. A ref that is already gone is not an error.
func (s *Store) Delete(ctx context.Context, ref string) error {
	path, err := s.resolve(ref)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete blob: %w", err)
	}

	return nil
}

// resolve maps a key to a path under root, refusing traversal outside
// of it.
func (s *Store) resolve(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("empty blob key")
	}

	clean := filepath.Clean(filepath.FromSlash(key))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid blob key %q", key)
	}

	return filepath.Join(s.root, clean), nil
}
