package webserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	env.signUp("asha@example.com")
	require.NotEmpty(t, env.token)

	// Registration lands the wizard on the dashboard
	w := env.doJSON(http.MethodGet, "/api/v1/flow", nil)
	require.Equal(t, "dashboard", flowScreen(t, w))

	// Duplicate email is rejected
	w = env.doJSON(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":    "asha@example.com",
		"password": "another-password",
	})
	require.Equal(t, http.StatusConflict, w.Code)

	// Fresh session can log in with the right password only
	fresh := newEnvSameDB(t, env)
	w = fresh.doJSON(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "asha@example.com",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = fresh.doJSON(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "asha@example.com",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusOK, w.Code)
}

// newEnvSameDB gives a second browser against the same server.
func newEnvSameDB(t *testing.T, env *testEnv) *testEnv {
	return &testEnv{t: t, server: env.server, store: env.store, repo: env.repo}
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	w := env.doJSON(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":    "not-an-email",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Short passwords fail binding
	w = env.doJSON(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":    "asha@example.com",
		"password": "short",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionRestore(t *testing.T) {
	env := newTestEnv(t)
	env.signUp("asha@example.com")

	// A new wizard session holding a valid token is restored to the
	// dashboard by the existing-session check
	returning := newEnvSameDB(t, env)
	returning.token = env.token

	w := returning.doJSON(http.MethodGet, "/api/v1/auth/session", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	require.Equal(t, true, data["authenticated"])
	require.Equal(t, "dashboard", data["flow"].(map[string]interface{})["screen"])
}

func TestSessionAnonymous(t *testing.T) {
	env := newTestEnv(t)

	w := env.doJSON(http.MethodGet, "/api/v1/auth/session", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	require.Equal(t, false, data["authenticated"])
	require.Equal(t, "onboarding", data["flow"].(map[string]interface{})["screen"])
}

func TestLogoutResetsFromAnyScreen(t *testing.T) {
	env := newTestEnv(t)
	env.signUp("asha@example.com")

	// Move deep into the wizard before signing out
	env.doJSON(http.MethodPost, "/api/v1/flow/create-new", nil)
	env.submitDraft()

	w := env.doJSON(http.MethodPost, "/api/v1/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "onboarding", flowScreen(t, w))

	// Logout drops the controller entry along with the cookie
	require.Zero(t, env.server.flow.ActiveSessions())
}
