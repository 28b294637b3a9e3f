package webserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProfileAndRefundPreference(t *testing.T) {
	env := newTestEnv(t)
	env.signUp("asha@example.com")

	w := env.doJSON(http.MethodGet, "/api/v1/profile", nil)
	require.Equal(t, http.StatusOK, w.Code)

	user := decodeBody(t, w)["data"].(map[string]interface{})
	require.Equal(t, "asha@example.com", user["email"])
	require.Equal(t, true, user["auto_refund_enabled"])

	w = env.doJSON(http.MethodPut, "/api/v1/profile/refund-preference", map[string]interface{}{
		"auto_refund_enabled": false,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.doJSON(http.MethodGet, "/api/v1/profile", nil)
	user = decodeBody(t, w)["data"].(map[string]interface{})
	require.Equal(t, false, user["auto_refund_enabled"])
}

func TestProfileRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	w := env.doJSON(http.MethodGet, "/api/v1/profile", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestContentEndpoints(t *testing.T) {
	env := newTestEnv(t)

	w := env.doJSON(http.MethodGet, "/api/v1/content/faq", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, decodeBody(t, w)["data"])

	w = env.doJSON(http.MethodGet, "/api/v1/content/pricing", nil)
	require.Equal(t, http.StatusOK, w.Code)

	pricing := decodeBody(t, w)["data"].(map[string]interface{})
	require.Equal(t, float64(5), pricing["base_fee"])
	require.Equal(t, float64(99), pricing["upgrade_fee"])
	require.Equal(t, float64(104), pricing["total_with_upgrade"])
	require.Len(t, pricing["gift_options"], 3)
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.doJSON(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
}
