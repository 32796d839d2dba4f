package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/clockin-dev/clockin/internal/tracker/domain"
	"github.com/clockin-dev/clockin/internal/tracker/service"
	"github.com/clockin-dev/clockin/internal/tracker/store"
	"github.com/clockin-dev/clockin/internal/tracker/store/drivers/sqlite"
	"github.com/clockin-dev/clockin/pkg/cryptox"
	"github.com/clockin-dev/clockin/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const (
	testSecret       = "api-test-secret"
	testIssuer       = "tracker-test"
	adminPassword    = "admin-password-1"
	employeePassword = "employee-password-1"
	employeeUsername = "alice"
)

type testEnv struct {
	srv   *httptest.Server
	store store.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cryptox.SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	st, err := sqlite.NewStore("file:" + filepath.Join(t.TempDir(), "tracker.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer := &jwtx.Signer{Secret: []byte(testSecret), Issuer: testIssuer, TTL: time.Hour}
	verifier := &jwtx.Verifier{Secret: []byte(testSecret), Issuer: testIssuer}

	users := &service.UserService{Store: st}
	ctx := context.Background()
	_, _, err = users.CreateUser(ctx, "admin", "Admin", adminPassword, domain.RoleAdmin)
	require.NoError(t, err)
	_, _, err = users.CreateUser(ctx, employeeUsername, "Alice", employeePassword, domain.RoleUser)
	require.NoError(t, err)

	router := NewRouter(verifier, "test", st, slog.New(slog.NewTextHandler(io.Discard, nil)))
	router.AuthService = &service.AuthService{Store: st, Signer: signer}
	router.UserService = users
	router.TrackerService = &service.TrackerService{Store: st}
	router.ReportService = &service.ReportService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testEnv{srv: srv, store: st}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, e.srv.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func (e *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()

	resp := e.do(t, http.MethodPost, "/v1/auth/login", "", LoginRequest{
		Username: username,
		Password: password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[LoginResponse](t, resp)
	require.NotEmpty(t, body.AccessToken)
	return body.AccessToken
}

func TestLoginEndpoint(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	t.Run("valid credentials", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/v1/auth/login", "", LoginRequest{
			Username: "alice", Password: employeePassword,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody[LoginResponse](t, resp)
		require.Equal(t, "Bearer", body.TokenType)
		require.Equal(t, "alice", body.User.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/v1/auth/login", "", LoginRequest{
			Username: "alice", Password: "nope",
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("malformed body", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, env.srv.URL+"/v1/auth/login", strings.NewReader("{"))
		require.NoError(t, err)
		resp, err := env.srv.Client().Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestSessionLifecycleOverHTTP(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	token := env.login(t, "alice", employeePassword)

	// Check in.
	resp := env.do(t, http.MethodPost, "/v1/sessions/check-in", token, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	session := decodeBody[SessionResponse](t, resp)
	require.True(t, session.IsActive)

	// Double check-in conflicts.
	resp = env.do(t, http.MethodPost, "/v1/sessions/check-in", token, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	// Heartbeat.
	resp = env.do(t, http.MethodPost, "/v1/activity", token, ActivityRequest{})
	session = decodeBody[SessionResponse](t, resp)
	require.Equal(t, 1, session.ActivityCount)
	require.Equal(t, 1, session.TotalActiveTime)

	// Pause and resume.
	resp = env.do(t, http.MethodPost, "/v1/sessions/pause", token, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = env.do(t, http.MethodPost, "/v1/sessions/resume", token, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Own summary shows the open session.
	resp = env.do(t, http.MethodGet, "/v1/reports/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	summary := decodeBody[service.UserSummary](t, resp)
	require.True(t, summary.IsCheckedIn)
	require.Len(t, summary.Sessions, 1)

	// Check out.
	resp = env.do(t, http.MethodPost, "/v1/sessions/check-out", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	session = decodeBody[SessionResponse](t, resp)
	require.False(t, session.IsActive)
	require.NotNil(t, session.CheckOutTime)

	// Check-out without a session is a 404.
	resp = env.do(t, http.MethodPost, "/v1/sessions/check-out", token, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	// History and activity log are visible.
	resp = env.do(t, http.MethodGet, "/v1/sessions", token, nil)
	sessions := decodeBody[[]SessionResponse](t, resp)
	require.Len(t, sessions, 1)

	resp = env.do(t, http.MethodGet, "/v1/activity", token, nil)
	logs := decodeBody[[]ActivityLogResponse](t, resp)
	require.NotEmpty(t, logs)
	require.Equal(t, "check-out", logs[0].Type)
}

func TestActivityEndpointValidation(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	token := env.login(t, "alice", employeePassword)

	resp := env.do(t, http.MethodPost, "/v1/sessions/check-in", token, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	t.Run("unknown event type", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/v1/activity", token, ActivityRequest{Type: "teleport"})
		resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("idle round trip", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/v1/activity", token, ActivityRequest{Type: "idle-start"})
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = env.do(t, http.MethodPost, "/v1/activity", token, ActivityRequest{Type: "idle-end"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		session := decodeBody[SessionResponse](t, resp)
		require.Zero(t, session.IdleTime)
	})
}

func TestAdminEndpoints(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	adminToken := env.login(t, "admin", adminPassword)
	employeeToken := env.login(t, "alice", employeePassword)

	t.Run("requires a token", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/v1/reports/stats", "", nil)
		resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("requires the admin role", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/v1/reports/stats", employeeToken, nil)
		resp.Body.Close()
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("fleet stats", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/v1/reports/stats", adminToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		stats := decodeBody[domain.FleetStats](t, resp)
		require.Equal(t, 2, stats.TotalUsers)
	})

	t.Run("create and list users", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/v1/users", adminToken, CreateUserRequest{
			Username: "bob", Name: "Bob",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		created := decodeBody[CreateUserResponse](t, resp)
		require.Equal(t, "bob", created.User.Username)
		require.NotEmpty(t, created.GeneratedPassword)

		resp = env.do(t, http.MethodPost, "/v1/users", adminToken, CreateUserRequest{
			Username: "bob", Name: "Bob Again",
		})
		resp.Body.Close()
		require.Equal(t, http.StatusConflict, resp.StatusCode)

		resp = env.do(t, http.MethodGet, "/v1/users", adminToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		list := decodeBody[[]UserResponse](t, resp)
		require.Len(t, list, 2) // alice and bob; the admin is not an employee
	})

	t.Run("daily report and export", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/v1/sessions/check-in", employeeToken, nil)
		resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		date := time.Now().UTC().Format("2006-01-02")
		resp = env.do(t, http.MethodGet, "/v1/reports/daily?date="+date, adminToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		rows := decodeBody[[]service.DailyRow](t, resp)
		require.Len(t, rows, 1)
		require.Equal(t, "alice", rows[0].Username)

		resp = env.do(t, http.MethodGet, "/v1/reports/export?date="+date, adminToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)
		require.Contains(t, string(body), "username,name,session_id")
		require.Contains(t, string(body), "alice")

		resp = env.do(t, http.MethodGet, "/v1/reports/daily?date=bogus", adminToken, nil)
		resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/livez", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	health := decodeBody[HealthResponse](t, resp)
	require.Equal(t, "ok", health.Status)

	resp = env.do(t, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	health = decodeBody[HealthResponse](t, resp)
	require.Equal(t, "ok", health.Status)
	require.NotNil(t, health.Checks)
}
