package gatekeep_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gatekeephq/gatekeep/internal/auth/app"
	"github.com/stretchr/testify/require"
)

// newApp spins up the fully wired application over httptest with a
// throwaway database and pepper file.
func newApp(t *testing.T) *httptest.Server {
	t.Helper()

	dir := t.TempDir()
	cfg := app.Config{
		SessionTTL:          time.Hour,
		RememberTTL:         30 * 24 * time.Hour,
		SignupPolicy:        "invite",
		DatabaseFile:        filepath.Join(dir, "gatekeep.db"),
		PepperFile:          filepath.Join(dir, "pepper"),
		Env:                 "dev",
		LogLevel:            "error",
		LogFormat:           "text",
		ShutdownGracePeriod: time.Second,
	}

	application, err := app.New(cfg)
	require.NoError(t, err)

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func doJSON(t *testing.T, client *http.Client, method, url string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func TestFullAccountLifecycle(t *testing.T) {
	srv := newApp(t)
	root := newClient(t)
	bob := newClient(t)

	// First signup into an empty store self-promotes to super admin.
	resp, body := doJSON(t, root, http.MethodPost, srv.URL+"/v2/users", map[string]any{
		"email":    "root@example.com",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, []any{float64(0)}, body["permissions"])
	require.Equal(t, false, body["pending"])

	// Uninvited signups are closed.
	resp, body = doJSON(t, root, http.MethodPost, srv.URL+"/v2/users", map[string]any{
		"email":    "stranger@example.com",
		"password": "whatever-works",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Equal(t, "signup_closed", body["error"])

	// Sign in as root; the session cookie carries everything after.
	resp, _ = doJSON(t, root, http.MethodPost, srv.URL+"/v2/authentication", map[string]any{
		"email":    "root@example.com",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, root, http.MethodGet, srv.URL+"/v2/authentication", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "root@example.com", body["email"])

	// Invite bob with invite + add-node permissions.
	resp, _ = doJSON(t, root, http.MethodPost, srv.URL+"/v2/invites", map[string]any{
		"email":       "bob@example.com",
		"permissions": []int{2, 7},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Bob signs up and inherits the invite's grant.
	resp, body = doJSON(t, bob, http.MethodPost, srv.URL+"/v2/users", map[string]any{
		"email":    "bob@example.com",
		"password": "hunter22again",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, []any{float64(2), float64(7)}, body["permissions"])
	require.Equal(t, true, body["pending"])

	resp, _ = doJSON(t, bob, http.MethodPost, srv.URL+"/v2/authentication", map[string]any{
		"email":    "bob@example.com",
		"password": "hunter22again",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Bob can create nodes (bit 7) but cannot manage users.
	resp, _ = doJSON(t, bob, http.MethodPost, srv.URL+"/v2/nodes", map[string]any{
		"id":           "landing.hero",
		"default_text": "Welcome",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, bob, http.MethodGet, srv.URL+"/v2/users", nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Bob updates his own metadata but not root's.
	resp, _ = doJSON(t, bob, http.MethodPut, srv.URL+"/v2/users/bob@example.com/metadata", map[string]any{
		"metadata": `{"theme":"dark"}`,
	})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, bob, http.MethodPut, srv.URL+"/v2/users/root@example.com/metadata", map[string]any{
		"metadata": "{}",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Root deactivates bob; bob's session dies with the account.
	resp, _ = doJSON(t, root, http.MethodPatch, srv.URL+"/v2/users/bob@example.com", map[string]any{
		"active": false,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, bob, http.MethodGet, srv.URL+"/v2/authentication", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Root's super admin account shrugs off a demotion attempt.
	resp, body = doJSON(t, root, http.MethodPatch, srv.URL+"/v2/users/root@example.com", map[string]any{
		"active":      false,
		"permissions": []int{},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, body["active"])
	require.Equal(t, []any{float64(0)}, body["permissions"])

	// Root deletes bob.
	resp, _ = doJSON(t, root, http.MethodDelete, srv.URL+"/v2/users/bob@example.com", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, root, http.MethodGet, srv.URL+"/v2/users/bob@example.com", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Health endpoints are public.
	resp, _ = doJSON(t, root, http.MethodGet, srv.URL+"/livez", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, root, http.MethodGet, srv.URL+"/readyz", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
