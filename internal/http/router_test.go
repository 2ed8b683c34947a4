package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/waypoint-labs/waypoint/internal/service"
	"github.com/waypoint-labs/waypoint/internal/store/drivers/sqlite"
	"github.com/waypoint-labs/waypoint/pkg/cryptox"
	"github.com/waypoint-labs/waypoint/pkg/jwtx"
)

const (
	testAdminSecret = "router-test-admin-secret"
	testTokenSecret = "router-test-token-secret"
)

func TestMain(m *testing.M) {
	cryptox.SetPepperPath(filepath.Join(os.TempDir(), "waypoint-http-test-pepper"))
	os.Exit(m.Run())
}

// newTestServer builds a full router over a fresh sqlite store. Each call
// gets its own rate limiter state, so tests do not trip each other's limits.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	st, err := sqlite.NewStore("file:" + filepath.Join(t.TempDir(), "router_test.db"))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	signer, err := jwtx.NewHS256([]byte(testTokenSecret), "waypoint")
	require.NoError(t, err)

	users := &service.UserService{Store: st}
	tokens := &service.TokenService{Signer: signer, Store: st, Issuer: "waypoint"}
	destinations := &service.DestinationService{Store: st}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := NewRouter(testAdminSecret, "test", st, logger)
	router.UserService = users
	router.TokenService = tokens
	router.DestinationService = destinations
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, []byte) {
	t.Helper()

	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func register(t *testing.T, srv *httptest.Server, name, email, role, adminSecret string) (*http.Response, []byte) {
	t.Helper()
	body := map[string]string{
		"name":     name,
		"email":    email,
		"password": "correct horse battery staple",
		"role":     role,
	}
	if adminSecret != "" {
		body["admin_secret_key"] = adminSecret
	}
	return doJSON(t, http.MethodPost, srv.URL+"/register", "", body)
}

func login(t *testing.T, srv *httptest.Server, email string) string {
	t.Helper()
	resp, raw := doJSON(t, http.MethodPost, srv.URL+"/login", "", map[string]string{
		"email":    email,
		"password": "correct horse battery staple",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "login failed: %s", raw)

	var out LoginResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func TestRegisterAndLoginFlow(t *testing.T) {
	srv := newTestServer(t)

	resp, raw := register(t, srv, "Alice", "alice@example.com", "User", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, "register failed: %s", raw)

	var created RegisterResponse
	require.NoError(t, json.Unmarshal(raw, &created))
	require.NotEmpty(t, created.UserID)

	token := login(t, srv, "alice@example.com")

	resp, raw = doJSON(t, http.MethodGet, srv.URL+"/profile", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile map[string]any
	require.NoError(t, json.Unmarshal(raw, &profile))
	require.Equal(t, "Alice", profile["name"])
	require.Equal(t, "alice@example.com", profile["email"])
	require.Equal(t, "User", profile["role"])
	require.NotContains(t, string(raw), "password")
}

func TestRegisterValidation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing name", map[string]string{"email": "a@example.com", "password": "pw", "role": "User"}},
		{"missing email", map[string]string{"name": "A", "password": "pw", "role": "User"}},
		{"bad email", map[string]string{"name": "A", "email": "not-an-email", "password": "pw", "role": "User"}},
		{"email without tld", map[string]string{"name": "A", "email": "a@localhost", "password": "pw", "role": "User"}},
		{"bad role", map[string]string{"name": "A", "email": "a@example.com", "password": "pw", "role": "Root"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, raw := doJSON(t, http.MethodPost, srv.URL+"/register", "", tt.body)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var apiErr APIError
			require.NoError(t, json.Unmarshal(raw, &apiErr))
			require.Equal(t, "validation_error", apiErr.Code)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := register(t, srv, "Alice", "alice@example.com", "User", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, raw := register(t, srv, "Other Alice", "alice@example.com", "User", "")
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var apiErr APIError
	require.NoError(t, json.Unmarshal(raw, &apiErr))
	require.Equal(t, "duplicate_email", apiErr.Code)
}

func TestRegisterAdminSecretGate(t *testing.T) {
	srv := newTestServer(t)

	t.Run("missing secret is unauthorized", func(t *testing.T) {
		resp, raw := register(t, srv, "Eve", "eve@example.com", "Admin", "")
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var apiErr APIError
		require.NoError(t, json.Unmarshal(raw, &apiErr))
		require.Equal(t, "admin_secret_required", apiErr.Code)
	})

	t.Run("wrong secret is forbidden", func(t *testing.T) {
		resp, raw := register(t, srv, "Eve", "eve@example.com", "Admin", "wrong")
		require.Equal(t, http.StatusForbidden, resp.StatusCode)

		var apiErr APIError
		require.NoError(t, json.Unmarshal(raw, &apiErr))
		require.Equal(t, "admin_secret_mismatch", apiErr.Code)
	})

	t.Run("correct secret creates admin", func(t *testing.T) {
		resp, _ := register(t, srv, "Root", "root@example.com", "Admin", testAdminSecret)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	})
}

func TestLoginInvalidCredentials(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := register(t, srv, "Alice", "alice@example.com", "User", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	wrongPassword, err := http.Post(srv.URL+"/login", "application/json",
		bytes.NewReader([]byte(`{"email":"alice@example.com","password":"nope"}`)))
	require.NoError(t, err)
	defer wrongPassword.Body.Close()

	unknownEmail, err := http.Post(srv.URL+"/login", "application/json",
		bytes.NewReader([]byte(`{"email":"bob@example.com","password":"nope"}`)))
	require.NoError(t, err)
	defer unknownEmail.Body.Close()

	// Both failure modes must be indistinguishable.
	require.Equal(t, http.StatusUnauthorized, wrongPassword.StatusCode)
	require.Equal(t, http.StatusUnauthorized, unknownEmail.StatusCode)

	a, _ := io.ReadAll(wrongPassword.Body)
	b, _ := io.ReadAll(unknownEmail.Body)
	require.JSONEq(t, string(a), string(b))
}

func TestProfileAdminSeesAllUsers(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := register(t, srv, "Root", "root@example.com", "Admin", testAdminSecret)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = register(t, srv, "Alice", "alice@example.com", "User", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	token := login(t, srv, "root@example.com")

	resp, raw := doJSON(t, http.MethodGet, srv.URL+"/profile", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profiles []map[string]any
	require.NoError(t, json.Unmarshal(raw, &profiles))
	require.Len(t, profiles, 2)
	require.NotContains(t, string(raw), "password")
}

func TestProfileTokenErrors(t *testing.T) {
	srv := newTestServer(t)

	t.Run("no token", func(t *testing.T) {
		resp, raw := doJSON(t, http.MethodGet, srv.URL+"/profile", "", nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var apiErr APIError
		require.NoError(t, json.Unmarshal(raw, &apiErr))
		require.Equal(t, "missing_token", apiErr.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		resp, raw := doJSON(t, http.MethodGet, srv.URL+"/profile", "not.a.jwt", nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var apiErr APIError
		require.NoError(t, json.Unmarshal(raw, &apiErr))
		require.Equal(t, "invalid_token", apiErr.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		signer, err := jwtx.NewHS256([]byte(testTokenSecret), "waypoint")
		require.NoError(t, err)
		expired, err := signer.Sign(jwtx.NewClaims("someone", "User", "waypoint", -time.Minute, time.Now()))
		require.NoError(t, err)

		resp, raw := doJSON(t, http.MethodGet, srv.URL+"/profile", expired, nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var apiErr APIError
		require.NoError(t, json.Unmarshal(raw, &apiErr))
		require.Equal(t, "expired_token", apiErr.Code)
	})

	t.Run("valid token for deleted subject", func(t *testing.T) {
		signer, err := jwtx.NewHS256([]byte(testTokenSecret), "waypoint")
		require.NoError(t, err)
		stale, err := signer.Sign(jwtx.NewClaims("01HZZZZZZZZZZZZZZZZZZZZZZZ", "User", "waypoint", time.Hour, time.Now()))
		require.NoError(t, err)

		resp, raw := doJSON(t, http.MethodGet, srv.URL+"/profile", stale, nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)

		var apiErr APIError
		require.NoError(t, json.Unmarshal(raw, &apiErr))
		require.Equal(t, "user_not_found", apiErr.Code)
	})
}

func TestVerifyEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := register(t, srv, "Alice", "alice@example.com", "User", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	token := login(t, srv, "alice@example.com")

	t.Run("valid token", func(t *testing.T) {
		resp, raw := doJSON(t, http.MethodPost, srv.URL+"/auth/verify", "", map[string]string{"token": token})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out VerifyResponse
		require.NoError(t, json.Unmarshal(raw, &out))
		require.True(t, out.Valid)
		require.NotEmpty(t, out.UserID)
		require.Equal(t, "User", out.Role)
	})

	t.Run("tampered token", func(t *testing.T) {
		resp, raw := doJSON(t, http.MethodPost, srv.URL+"/auth/verify", "", map[string]string{"token": token + "x"})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var out VerifyResponse
		require.NoError(t, json.Unmarshal(raw, &out))
		require.False(t, out.Valid)
		require.Equal(t, "invalid_token", out.Error)
	})

	t.Run("expired token", func(t *testing.T) {
		signer, err := jwtx.NewHS256([]byte(testTokenSecret), "waypoint")
		require.NoError(t, err)
		expired, err := signer.Sign(jwtx.NewClaims("someone", "User", "waypoint", -time.Minute, time.Now()))
		require.NoError(t, err)

		resp, raw := doJSON(t, http.MethodPost, srv.URL+"/auth/verify", "", map[string]string{"token": expired})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var out VerifyResponse
		require.NoError(t, json.Unmarshal(raw, &out))
		require.False(t, out.Valid)
		require.Equal(t, "expired_token", out.Error)
	})

	t.Run("missing token field", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/auth/verify", "", map[string]string{})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestRolesEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, raw := register(t, srv, "Root", "root@example.com", "Admin", testAdminSecret)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created RegisterResponse
	require.NoError(t, json.Unmarshal(raw, &created))

	token := login(t, srv, "root@example.com")

	resp, raw = doJSON(t, http.MethodGet, srv.URL+"/auth/roles", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out RolesResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Equal(t, created.UserID, out.UserID)
	require.Equal(t, "Admin", string(out.Role))
}

func TestDestinationEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := register(t, srv, "Root", "root@example.com", "Admin", testAdminSecret)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = register(t, srv, "Alice", "alice@example.com", "User", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	adminToken := login(t, srv, "root@example.com")
	userToken := login(t, srv, "alice@example.com")

	t.Run("list requires authentication", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodGet, srv.URL+"/destinations", "", nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("any user can list seeded destinations", func(t *testing.T) {
		resp, raw := doJSON(t, http.MethodGet, srv.URL+"/destinations", userToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var destinations []map[string]any
		require.NoError(t, json.Unmarshal(raw, &destinations))
		require.Len(t, destinations, 2)
	})

	t.Run("non-admin cannot create", func(t *testing.T) {
		resp, raw := doJSON(t, http.MethodPost, srv.URL+"/destinations", userToken,
			map[string]string{"name": "Reykjavik", "location": "Iceland"})
		require.Equal(t, http.StatusForbidden, resp.StatusCode)

		var apiErr APIError
		require.NoError(t, json.Unmarshal(raw, &apiErr))
		require.Equal(t, "forbidden", apiErr.Code)
	})

	var createdID string
	t.Run("admin can create", func(t *testing.T) {
		resp, raw := doJSON(t, http.MethodPost, srv.URL+"/destinations", adminToken,
			map[string]string{"name": "Reykjavik", "description": "Northern lights", "location": "Iceland"})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var out CreateDestinationResponse
		require.NoError(t, json.Unmarshal(raw, &out))
		require.NotEmpty(t, out.DestinationID)
		createdID = out.DestinationID
	})

	t.Run("non-admin cannot delete", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodDelete, fmt.Sprintf("%s/destinations/%s", srv.URL, createdID), userToken, nil)
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("admin can delete", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodDelete, fmt.Sprintf("%s/destinations/%s", srv.URL, createdID), adminToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("deleting unknown destination is not found", func(t *testing.T) {
		resp, raw := doJSON(t, http.MethodDelete, fmt.Sprintf("%s/destinations/%s", srv.URL, createdID), adminToken, nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)

		var apiErr APIError
		require.NoError(t, json.Unmarshal(raw, &apiErr))
		require.Equal(t, "not_found", apiErr.Code)
	})
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp, raw := doJSON(t, http.MethodGet, srv.URL+"/livez", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health HealthResponse
	require.NoError(t, json.Unmarshal(raw, &health))
	require.Equal(t, "ok", health.Status)

	resp, raw = doJSON(t, http.MethodGet, srv.URL+"/readyz", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, json.Unmarshal(raw, &health))
	require.Equal(t, "ok", health.Status)
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)
}
