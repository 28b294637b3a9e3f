package storage

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/safewings/api/pkg/config"
	"github.com/safewings/api/pkg/log"
)

func testLogger(t *testing.T) *log.Logger {
	logger, err := log.New(&config.LoggingConfig{Level: "error", Format: "text", Output: "stdout"})
	require.NoError(t, err)
	return logger
}

func TestLocalStorePutExistsRemove(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), testLogger(t))
	require.NoError(t, err)

	ctx := context.Background()
	path := ObjectPath(7, "12-1700000000.png")
	payload := []byte("fake png bytes")

	require.NoError(t, store.Put(ctx, path, bytes.NewReader(payload), int64(len(payload))))

	ok, err := store.Exists(ctx, path)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, store.Remove(ctx, path))

	ok, err = store.Exists(ctx, path)
	require.NoError(t, err)
	require.False(t, ok)

	// Removing an already absent blob is not an error
	require.NoError(t, store.Remove(ctx, path))
}

func TestLocalStoreRejectsEscapingPaths(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), testLogger(t))
	require.NoError(t, err)

	ctx := context.Background()
	require.Error(t, store.Put(ctx, "../outside.txt", bytes.NewReader([]byte("x")), 1))
	require.Error(t, store.Remove(ctx, "/etc/passwd"))
}

func TestValidateUpload(t *testing.T) {
	v := NewValidator(&config.StorageConfig{
		AllowedTypes:   "image/jpeg,image/jpg,image/png,application/pdf",
		MaxUploadBytes: 5 * 1024 * 1024,
	})

	require.NoError(t, v.ValidateUpload("image/png", 1024))
	require.NoError(t, v.ValidateUpload("application/pdf", 5*1024*1024))
	require.ErrorIs(t, v.ValidateUpload("text/plain", 10), ErrInvalidFileType)
	require.ErrorIs(t, v.ValidateUpload("image/png", 5*1024*1024+1), ErrFileTooLarge)

	// Type check wins when both would fail
	require.ErrorIs(t, v.ValidateUpload("text/plain", 6*1024*1024), ErrInvalidFileType)
}

func TestStoredNameAndObjectPath(t *testing.T) {
	at := time.Unix(0, 1700000000000000000)
	name := StoredName(42, "ticket.pdf", at)
	require.Equal(t, "42-1700000000000000000.pdf", name)
	require.Equal(t, "boarding-passes/9/"+name, ObjectPath(9, name))
}

func TestUploadTokens(t *testing.T) {
	tokens := NewUploadTokens(time.Minute)

	release, err := tokens.Acquire(1)
	require.NoError(t, err)

	_, err = tokens.Acquire(1)
	require.ErrorIs(t, err, ErrUploadInFlight)

	// A different message is unaffected
	release2, err := tokens.Acquire(2)
	require.NoError(t, err)
	release2()

	release()
	release3, err := tokens.Acquire(1)
	require.NoError(t, err)
	release3()
}

func TestUploadTokensSweep(t *testing.T) {
	tokens := NewUploadTokens(time.Nanosecond)

	_, err := tokens.Acquire(1)
	require.NoError(t, err)

	time.Sleep(time.Millisecond)
	require.Equal(t, 1, tokens.Sweep())
	require.Equal(t, 0, tokens.Pending())

	// Expired tokens no longer block a fresh upload
	release, err := tokens.Acquire(1)
	require.NoError(t, err)
	release()
}
