package flow

import (
	"sync"
	"time"

	"github.com/safewings/api/pkg/log"
	"github.com/safewings/api/pkg/models"
)

// Draft is the in-memory, not-yet-persisted combination of recipients
// and flight details collected before the upgrade decision.
type Draft struct {
	Recipients models.RecipientList `json:"recipients"`
	Flight     models.FlightInfo    `json:"flight"`
}

type session struct {
	state   State
	draft   *Draft
	touched time.Time
}

// Controller owns the navigation state of every active wizard session.
// All transition logic lives in the pure Transition function; the
// controller adds session bookkeeping, draft storage, and the auth feed
// subscription.
type Controller struct {
	mu          sync.RWMutex
	sessions    map[string]*session
	logger      *log.Logger
	unsubscribe func()
}

// NewController creates a controller subscribed to the auth feed for the
// forced sign-in and sign-out transitions.
func NewController(feed *AuthFeed, logger *log.Logger) *Controller {
	c := &Controller{
		sessions: make(map[string]*session),
		logger:   logger,
	}
	c.unsubscribe = feed.Subscribe(c.onAuthEvent)
	return c
}

// Close releases the auth feed subscription.
func (c *Controller) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

func (c *Controller) onAuthEvent(ev AuthEvent) {
	switch ev.Kind {
	case AuthSignedIn:
		c.apply(ev.SessionID, EventSignIn)
	case AuthSignedOut:
		st := c.apply(ev.SessionID, EventSignOut)
		c.clearDraft(ev.SessionID)
		c.logger.LogFlow(ev.SessionID, string(st.Screen), string(EventSignOut))
	}
}

// Get returns the session's current state, creating the session at the
// initial state when it is unknown.
func (c *Controller) Get(sessionID string) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getLocked(sessionID).state
}

func (c *Controller) getLocked(sessionID string) *session {
	s, ok := c.sessions[sessionID]
	if !ok {
		s = &session{state: Initial()}
		c.sessions[sessionID] = s
	}
	s.touched = time.Now()
	return s
}

// Apply runs one navigation event against a session and returns the
// resulting state.
func (c *Controller) Apply(sessionID string, e Event) State {
	st := c.apply(sessionID, e)
	c.logger.LogFlow(sessionID, string(st.Screen), string(e))
	return st
}

func (c *Controller) apply(sessionID string, e Event) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.getLocked(sessionID)
	s.state = Transition(s.state, e)
	return s.state
}

// Restore marks a session authenticated and lands it on the dashboard.
// Used when an existing credential is found at session start.
func (c *Controller) Restore(sessionID string) State {
	return c.apply(sessionID, EventSignIn)
}

// SubmitDraft stores the just-entered recipients and flight details and
// forces the session onto the upgrade screen.
func (c *Controller) SubmitDraft(sessionID string, d Draft) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.getLocked(sessionID)
	s.draft = &d
	s.state = Transition(s.state, EventSubmitDraft)
	return s.state
}

// Draft returns the pending draft for a session, if any.
func (c *Controller) Draft(sessionID string) (Draft, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.sessions[sessionID]
	if !ok || s.draft == nil {
		return Draft{}, false
	}
	return *s.draft, true
}

// CompletePersist clears the draft and lands the session on the
// dashboard. Called only after the message row is durably written.
func (c *Controller) CompletePersist(sessionID string) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.getLocked(sessionID)
	s.draft = nil
	s.state = Transition(s.state, EventPersisted)
	return s.state
}

func (c *Controller) clearDraft(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.sessions[sessionID]; ok {
		s.draft = nil
	}
}

// Forget drops a session entirely.
func (c *Controller) Forget(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, sessionID)
}

// SweepIdle drops sessions untouched for at least maxIdle and returns
// how many were dropped. Abandoned anonymous sessions would otherwise
// accumulate for the life of the process.
func (c *Controller) SweepIdle(maxIdle time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	dropped := 0
	for id, s := range c.sessions {
		if time.Since(s.touched) >= maxIdle {
			delete(c.sessions, id)
			dropped++
		}
	}
	return dropped
}

// ActiveSessions returns the number of tracked wizard sessions.
func (c *Controller) ActiveSessions() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sessions)
}
