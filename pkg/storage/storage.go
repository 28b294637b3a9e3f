package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/safewings/api/pkg/config"
	"github.com/safewings/api/pkg/log"
)

// Namespace under which all boarding pass blobs are stored.
const BoardingPassNamespace = "boarding-passes"

var (
	ErrInvalidFileType = errors.New("invalid file type")
	ErrFileTooLarge    = errors.New("file too large")
)

// BlobStore is the blob storage collaborator: opaque byte blobs keyed by
// a slash-separated path.
type BlobStore interface {
	Put(ctx context.Context, objectPath string, r io.Reader, size int64) error
	Remove(ctx context.Context, objectPath string) error
	Exists(ctx context.Context, objectPath string) (bool, error)
}

// New creates the configured blob store.
func New(cfg *config.StorageConfig, logger *log.Logger) (BlobStore, error) {
	switch cfg.Driver {
	case "local":
		return NewLocalStore(cfg.LocalPath, logger)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}

// Validator checks uploads against the configured allow-list and size
// ceiling before any blob or row is written.
type Validator struct {
	allowed  map[string]struct{}
	maxBytes int64
}

// NewValidator creates an upload validator from configuration.
func NewValidator(cfg *config.StorageConfig) *Validator {
	allowed := make(map[string]struct{})
	for _, t := range cfg.AllowedTypeList() {
		allowed[t] = struct{}{}
	}
	return &Validator{
		allowed:  allowed,
		maxBytes: cfg.MaxUploadBytes,
	}
}

// ValidateUpload rejects disallowed declared content types and oversized
// files. The type check runs first, matching the form's own ordering.
func (v *Validator) ValidateUpload(contentType string, size int64) error {
	if _, ok := v.allowed[contentType]; !ok {
		return fmt.Errorf("%w: %s", ErrInvalidFileType, contentType)
	}
	if size > v.maxBytes {
		return fmt.Errorf("%w: %d bytes (limit %d)", ErrFileTooLarge, size, v.maxBytes)
	}
	return nil
}

// StoredName derives a collision-resistant blob name from the message id,
// the current time, and the original file's extension.
func StoredName(messageID uint, originalName string, now time.Time) string {
	ext := path.Ext(originalName)
	return fmt.Sprintf("%d-%d%s", messageID, now.UnixNano(), ext)
}

// ObjectPath namespaces a stored blob by user.
func ObjectPath(userID uint, storedName string) string {
	return fmt.Sprintf("%s/%d/%s", BoardingPassNamespace, userID, storedName)
}
