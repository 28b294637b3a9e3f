package webserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/safewings/api/pkg/config"
	"github.com/safewings/api/pkg/db"
	"github.com/safewings/api/pkg/log"
	"github.com/safewings/api/pkg/storage"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Host: "localhost", Port: 8080},
		Database: config.DatabaseConfig{
			Driver:          "sqlite",
			Database:        fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
			MaxOpenConns:    1,
			MaxIdleConns:    1,
			ConnMaxLifetime: 300,
		},
		Security: config.SecurityConfig{
			JWTSecret:          "test-jwt-secret",
			JWTExpirationHours: 1,
			EncryptionKey:      "0123456789abcdef0123456789abcdef",
			SessionCookieName:  "safewings_session",
			RateLimitEnabled:   false,
		},
		Logging: config.LoggingConfig{Level: "error", Format: "text", Output: "stdout"},
		Storage: config.StorageConfig{
			Driver:         "local",
			LocalPath:      t.TempDir(),
			MaxUploadBytes: 5 * 1024 * 1024,
			AllowedTypes:   "image/jpeg,image/jpg,image/png,application/pdf",
		},
		Pricing: config.PricingConfig{BaseFee: 5, UpgradeFee: 99, Currency: "INR"},
		Janitor: config.JanitorConfig{UploadTokenTTL: 300},
	}
}

type testEnv struct {
	t       *testing.T
	server  *Server
	store   storage.BlobStore
	repo    *db.Repository
	cookies []*http.Cookie
	token   string
}

func newTestEnv(t *testing.T) *testEnv {
	cfg := testConfig(t)

	logger, err := log.New(&cfg.Logging)
	require.NoError(t, err)

	database, err := db.New(&cfg.Database)
	require.NoError(t, err)
	require.NoError(t, database.Migrate())
	t.Cleanup(func() { database.Close() })

	store, err := storage.New(&cfg.Storage, logger)
	require.NoError(t, err)

	uploads := storage.NewUploadTokens(5 * time.Minute)

	server, err := New(cfg, database, logger, store, uploads)
	require.NoError(t, err)
	t.Cleanup(server.flow.Close)

	return &testEnv{
		t:      t,
		server: server,
		store:  store,
		repo:   db.NewRepository(database),
	}
}

// do performs a request, carrying the session cookie and bearer token
// across calls like a browser would.
func (e *testEnv) do(method, path string, body []byte, contentType string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if e.token != "" {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	for _, cookie := range e.cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	e.server.Router().ServeHTTP(w, req)

	if set := w.Result().Cookies(); len(set) > 0 {
		e.cookies = set
	}
	return w
}

func (e *testEnv) doJSON(method, path string, payload interface{}) *httptest.ResponseRecorder {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		require.NoError(e.t, err)
	}
	return e.do(method, path, body, "application/json")
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// signUp registers an account and keeps the issued token for later calls.
func (e *testEnv) signUp(email string) {
	w := e.doJSON(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":     email,
		"password":  "correct-horse",
		"full_name": "Test User",
	})
	require.Equal(e.t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(e.t, w)
	data := body["data"].(map[string]interface{})
	e.token = data["token"].(string)
}

// submitDraft stores a minimal valid draft for the session.
func (e *testEnv) submitDraft() {
	w := e.doJSON(http.MethodPost, "/api/v1/flow/draft", map[string]interface{}{
		"recipients": []map[string]string{
			{"name": "Asha", "email": "asha@example.com", "message": "I love you"},
		},
		"flight": map[string]string{"flight_number": "AI 2031", "flight_date": "2026-03-01"},
	})
	require.Equal(e.t, http.StatusOK, w.Code, w.Body.String())
}

// multipartFile builds a multipart body with one file part carrying an
// explicit content type.
func multipartFile(t *testing.T, fieldName, fileName, contentType string, content []byte) ([]byte, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, fieldName, fileName))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return buf.Bytes(), writer.FormDataContentType()
}

func flowScreen(t *testing.T, w *httptest.ResponseRecorder) string {
	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})

	// Confirm responses nest the state under "flow"
	if nested, ok := data["flow"].(map[string]interface{}); ok {
		return nested["screen"].(string)
	}
	return data["screen"].(string)
}
