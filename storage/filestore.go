package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Upload folders under the store root
const (
	AvatarDir   = "avatars"
	HospitalDir = "hospitals"
)

// ErrInvalidPath is returned for relative paths that escape the store root
var ErrInvalidPath = errors.New("invalid storage path")

// ErrNotExist is returned by Open when no file is stored at the path
var ErrNotExist = errors.New("stored file does not exist")

// FileStore persists uploaded files and hands back paths relative to its root.
// Only relative paths are recorded in the database.
type FileStore interface {
	Save(ctx context.Context, dir, name string, data []byte) (string, error)
	Open(ctx context.Context, relPath string) ([]byte, error)
}

// LocalFileStore stores files on the local disk below Root
type LocalFileStore struct {
	Root string
}

// NewLocalFileStore creates the store, making sure the upload folders exist
func NewLocalFileStore(root string) (*LocalFileStore, error) {
	for _, dir := range []string{AvatarDir, HospitalDir} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload folder %s: %w", dir, err)
		}
	}
	return &LocalFileStore{Root: root}, nil
}

// Save writes data to dir/name, replacing any existing file, and returns the
// slash-separated relative path
func (s *LocalFileStore) Save(ctx context.Context, dir, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	rel, err := cleanRelative(path.Join(dir, name))
	if err != nil {
		return "", err
	}

	full := filepath.Join(s.Root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create folder for %s: %w", rel, err)
	}

	// Write to a temp file in the same folder so readers never see a partial image
	tmp, err := os.CreateTemp(filepath.Dir(full), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", rel, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write %s: %w", rel, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write %s: %w", rel, err)
	}
	if err := os.Rename(tmp.Name(), full); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to store %s: %w", rel, err)
	}
	return rel, nil
}

// Open reads the file stored at relPath
func (s *LocalFileStore) Open(ctx context.Context, relPath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rel, err := cleanRelative(relPath)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.Root, filepath.FromSlash(rel)))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", rel, err)
	}
	return data, nil
}

func cleanRelative(p string) (string, error) {
	if p == "" || path.IsAbs(p) || strings.Contains(p, "\\") {
		return "", ErrInvalidPath
	}
	cleaned := path.Clean(p)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidPath
	}
	return cleaned, nil
}
