package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/safewings/api/pkg/log"
)

// LocalStore stores blobs as files under a base directory.
type LocalStore struct {
	baseDir string
	logger  *log.Logger
}

// NewLocalStore creates a local filesystem blob store rooted at baseDir.
func NewLocalStore(baseDir string, logger *log.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create blob directory: %w", err)
	}
	return &LocalStore{
		baseDir: baseDir,
		logger:  logger,
	}, nil
}

// resolve maps an object path onto the base directory, refusing paths
// that would escape it.
func (s *LocalStore) resolve(objectPath string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(objectPath))
	if strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid object path: %s", objectPath)
	}
	return filepath.Join(s.baseDir, cleaned), nil
}

func (s *LocalStore) Put(ctx context.Context, objectPath string, r io.Reader, size int64) error {
	target, err := s.resolve(objectPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create blob subdirectory: %w", err)
	}

	f, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create blob file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, r)
	if err != nil {
		os.Remove(target)
		return fmt.Errorf("failed to write blob: %w", err)
	}
	if size >= 0 && written != size {
		os.Remove(target)
		return fmt.Errorf("short blob write: wrote %d of %d bytes", written, size)
	}

	return nil
}

func (s *LocalStore) Remove(ctx context.Context, objectPath string) error {
	target, err := s.resolve(objectPath)
	if err != nil {
		return err
	}

	if err := os.Remove(target); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to remove blob: %w", err)
	}
	return nil
}

func (s *LocalStore) Exists(ctx context.Context, objectPath string) (bool, error) {
	target, err := s.resolve(objectPath)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(target); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
