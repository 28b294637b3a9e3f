package flow

import "sync"

// AuthEventKind distinguishes the two auth notifications the wizard
// reacts to.
type AuthEventKind string

const (
	AuthSignedIn  AuthEventKind = "signed-in"
	AuthSignedOut AuthEventKind = "signed-out"
)

// AuthEvent is broadcast when a wizard session signs in or out.
type AuthEvent struct {
	Kind      AuthEventKind
	SessionID string
	UserID    uint
	Email     string
}

// AuthFeed fans auth events out to subscribers. Handlers run on the
// publishing goroutine.
type AuthFeed struct {
	mu   sync.Mutex
	next int
	subs map[int]func(AuthEvent)
}

// NewAuthFeed creates an empty feed.
func NewAuthFeed() *AuthFeed {
	return &AuthFeed{subs: make(map[int]func(AuthEvent))}
}

// Subscribe registers a handler and returns its unsubscribe function.
func (f *AuthFeed) Subscribe(handler func(AuthEvent)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.next
	f.next++
	f.subs[id] = handler

	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.subs, id)
	}
}

// Publish delivers an event to every current subscriber.
func (f *AuthFeed) Publish(ev AuthEvent) {
	f.mu.Lock()
	handlers := make([]func(AuthEvent), 0, len(f.subs))
	for _, h := range f.subs {
		handlers = append(handlers, h)
	}
	f.mu.Unlock()

	for _, h := range handlers {
		h(ev)
	}
}
