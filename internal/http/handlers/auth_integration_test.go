package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sakhi-4096/alx-backend-user-data/internal/auth"
	"github.com/sakhi-4096/alx-backend-user-data/internal/storage"
	"github.com/sakhi-4096/alx-backend-user-data/internal/storage/sqlite"
)

const (
	testEmail     = "guillaume@holberton.io"
	testPassword  = "b4l0u"
	testNewPasswd = "t4rt1fl3tt3"
)

func newTestServer(t *testing.T, store storage.UserStore) *httptest.Server {
	t.Helper()
	if store == nil {
		s, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "users.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		store = s
	}

	svc := auth.NewService(store, auth.NewBcryptHasher(bcrypt.MinCost), auth.UUIDTokens{}, nil)
	mux := http.NewServeMux()
	NewAuthHandler(svc, CookieConfig{Name: "session_id"}, nil).Register(mux)
	NewHealthHandler(time.Now()).Register(mux)

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

type client struct {
	t    *testing.T
	base string
}

func (c client) do(method, path string, form url.Values, sessionID string) (*http.Response, map[string]any) {
	c.t.Helper()
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req, err := http.NewRequest(method, c.base+path, body)
	require.NoError(c.t, err)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: "session_id", Value: sessionID})
	}

	res, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer res.Body.Close()

	var payload map[string]any
	if strings.HasPrefix(res.Header.Get("Content-Type"), "application/json") {
		require.NoError(c.t, json.NewDecoder(res.Body).Decode(&payload))
	}
	return res, payload
}

func sessionCookie(res *http.Response) string {
	for _, c := range res.Cookies() {
		if c.Name == "session_id" {
			return c.Value
		}
	}
	return ""
}

// TestAuthEndToEnd replays the full account lifecycle over HTTP.
func TestAuthEndToEnd(t *testing.T) {
	c := client{t: t, base: newTestServer(t, nil).URL}
	creds := url.Values{"email": {testEmail}, "password": {testPassword}}

	// register, then register again
	res, body := c.do(http.MethodPost, "/users", creds, "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, map[string]any{"email": testEmail, "message": "User created"}, body)

	res, body = c.do(http.MethodPost, "/users", creds, "")
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, map[string]any{"message": "Email already registered"}, body)

	// wrong password
	res, _ = c.do(http.MethodPost, "/sessions", url.Values{"email": {testEmail}, "password": {testNewPasswd}}, "")
	require.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Empty(t, sessionCookie(res))

	// profile without a session
	res, _ = c.do(http.MethodGet, "/profile", nil, "")
	require.Equal(t, http.StatusForbidden, res.StatusCode)

	// log in
	res, body = c.do(http.MethodPost, "/sessions", creds, "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, map[string]any{"email": testEmail, "message": "Logged in"}, body)
	sessionID := sessionCookie(res)
	require.NotEmpty(t, sessionID)

	res, body = c.do(http.MethodGet, "/profile", nil, sessionID)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, testEmail, body["email"])

	// log out follows the redirect home
	res, body = c.do(http.MethodDelete, "/sessions", nil, sessionID)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, map[string]any{"message": "Bienvenue"}, body)

	res, _ = c.do(http.MethodGet, "/profile", nil, sessionID)
	require.Equal(t, http.StatusForbidden, res.StatusCode)

	// reset password
	res, body = c.do(http.MethodPost, "/reset_password", url.Values{"email": {testEmail}}, "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, testEmail, body["email"])
	resetToken, _ := body["reset_token"].(string)
	require.NotEmpty(t, resetToken)

	update := url.Values{"email": {testEmail}, "reset_token": {resetToken}, "new_password": {testNewPasswd}}
	res, body = c.do(http.MethodPut, "/reset_password", update, "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, map[string]any{"email": testEmail, "message": "Password updated"}, body)

	// the token is single use
	res, _ = c.do(http.MethodPut, "/reset_password", update, "")
	require.Equal(t, http.StatusForbidden, res.StatusCode)

	// log in with the new password
	res, body = c.do(http.MethodPost, "/sessions", url.Values{"email": {testEmail}, "password": {testNewPasswd}}, "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Logged in", body["message"])
}
