package flow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/safewings/api/pkg/config"
	"github.com/safewings/api/pkg/log"
	"github.com/safewings/api/pkg/models"
)

func newTestController(t *testing.T) (*Controller, *AuthFeed) {
	logger, err := log.New(&config.LoggingConfig{Level: "error", Format: "text", Output: "stdout"})
	require.NoError(t, err)

	feed := NewAuthFeed()
	c := NewController(feed, logger)
	t.Cleanup(c.Close)
	return c, feed
}

func TestControllerSessionLifecycle(t *testing.T) {
	c, _ := newTestController(t)

	st := c.Get("sid-1")
	require.Equal(t, Initial(), st)

	st = c.Apply("sid-1", EventNext)
	require.Equal(t, ScreenRecipients, st.Screen)

	// Sessions are independent
	require.Equal(t, ScreenOnboarding, c.Get("sid-2").Screen)
	require.Equal(t, 2, c.ActiveSessions())

	c.Forget("sid-2")
	require.Equal(t, 1, c.ActiveSessions())
}

func TestControllerDraftLifecycle(t *testing.T) {
	c, feed := newTestController(t)

	feed.Publish(AuthEvent{Kind: AuthSignedIn, SessionID: "sid"})
	require.Equal(t, State{Screen: ScreenDashboard, Authed: true}, c.Get("sid"))

	c.Apply("sid", EventCreateNew)

	draft := Draft{
		Recipients: models.RecipientList{{Name: "Asha", Email: "a@x.com", Message: "hi"}},
		Flight:     models.FlightInfo{FlightNumber: "AI 2031"},
	}
	st := c.SubmitDraft("sid", draft)
	require.Equal(t, ScreenUpgrade, st.Screen)

	got, ok := c.Draft("sid")
	require.True(t, ok)
	require.Equal(t, draft, got)

	st = c.CompletePersist("sid")
	require.Equal(t, ScreenDashboard, st.Screen)

	_, ok = c.Draft("sid")
	require.False(t, ok)
}

func TestControllerSignOutResetsEverything(t *testing.T) {
	c, feed := newTestController(t)

	feed.Publish(AuthEvent{Kind: AuthSignedIn, SessionID: "sid"})
	c.Apply("sid", EventCreateNew)
	c.SubmitDraft("sid", Draft{
		Recipients: models.RecipientList{{Name: "Asha", Phone: "1", Message: "hi"}},
		Flight:     models.FlightInfo{FlightNumber: "AI 2031"},
	})

	feed.Publish(AuthEvent{Kind: AuthSignedOut, SessionID: "sid"})

	require.Equal(t, State{Screen: ScreenOnboarding, Authed: false}, c.Get("sid"))
	_, ok := c.Draft("sid")
	require.False(t, ok)
}

func TestControllerSweepIdle(t *testing.T) {
	c, _ := newTestController(t)

	c.Get("sid-1")
	c.Apply("sid-2", EventNext)
	require.Equal(t, 2, c.ActiveSessions())

	// Nothing has been idle for an hour yet
	require.Zero(t, c.SweepIdle(time.Hour))
	require.Equal(t, 2, c.ActiveSessions())

	require.Equal(t, 2, c.SweepIdle(0))
	require.Zero(t, c.ActiveSessions())

	// A swept session restarts from the initial state
	require.Equal(t, Initial(), c.Get("sid-2"))
}

func TestControllerRestore(t *testing.T) {
	c, _ := newTestController(t)

	st := c.Restore("sid")
	require.Equal(t, State{Screen: ScreenDashboard, Authed: true}, st)
}

func TestControllerUnsubscribes(t *testing.T) {
	logger, err := log.New(&config.LoggingConfig{Level: "error", Format: "text", Output: "stdout"})
	require.NoError(t, err)

	feed := NewAuthFeed()
	c := NewController(feed, logger)

	c.Close()
	feed.Publish(AuthEvent{Kind: AuthSignedIn, SessionID: "sid"})

	// The closed controller no longer reacts to feed events
	require.Equal(t, Initial(), c.Get("sid"))
}
