package storage

import (
	"errors"
	"sync"
	"time"
)

// ErrUploadInFlight is returned when an upload is already pending for the
// same message.
var ErrUploadInFlight = errors.New("an upload is already in progress for this message")

// UploadTokens tracks one in-flight upload per message. A second upload
// for the same message is rejected instead of racing the first; tokens
// that outlive their TTL (a crashed or abandoned request) are reclaimed
// by the janitor sweep.
type UploadTokens struct {
	mu       sync.Mutex
	ttl      time.Duration
	inflight map[uint]time.Time
}

// NewUploadTokens creates an upload token registry.
func NewUploadTokens(ttl time.Duration) *UploadTokens {
	return &UploadTokens{
		ttl:      ttl,
		inflight: make(map[uint]time.Time),
	}
}

// Acquire claims the upload slot for a message. The returned release
// function must be called when the upload finishes, success or not.
func (t *UploadTokens) Acquire(messageID uint) (func(), error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if started, ok := t.inflight[messageID]; ok && time.Since(started) < t.ttl {
		return nil, ErrUploadInFlight
	}
	t.inflight[messageID] = time.Now()

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		delete(t.inflight, messageID)
	}, nil
}

// Sweep drops tokens older than the TTL and returns how many were dropped.
func (t *UploadTokens) Sweep() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	dropped := 0
	for id, started := range t.inflight {
		if time.Since(started) >= t.ttl {
			delete(t.inflight, id)
			dropped++
		}
	}
	return dropped
}

// Pending returns the number of tracked in-flight uploads.
func (t *UploadTokens) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.inflight)
}
