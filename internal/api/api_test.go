package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamehub/gamehub-go/internal/api"
	"github.com/gamehub/gamehub-go/internal/api/apierr"
	"github.com/gamehub/gamehub-go/internal/api/middleware"
	"github.com/gamehub/gamehub-go/internal/api/response"
	"github.com/gamehub/gamehub-go/internal/factory"
	"github.com/gamehub/gamehub-go/internal/model"
	"github.com/gamehub/gamehub-go/internal/services/catalog"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	return newTestServerWithConfig(t, func(*api.RouterConfig) {})
}

func newTestServerWithConfig(t *testing.T, configure func(*api.RouterConfig)) *testServer {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	app := factory.NewTestApp()
	_, err := app.CatalogService.Seed(t.Context())
	require.NoError(t, err)

	cfg := api.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		CatalogService: app.CatalogService,
		PlayService:    app.PlayService,
		Metrics:        app.Metrics,
		AllowedOrigins: []string{"http://localhost:3000"},
	}
	configure(&cfg)

	return &testServer{
		handler: api.NewRouter(cfg),
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any, session *http.Cookie) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if session != nil {
		req.AddCookie(session)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// signup creates an account and returns the issued session cookie
func (ts *testServer) signup(t *testing.T, username, email, password string) *http.Cookie {
	t.Helper()

	rr := ts.request(http.MethodPost, "/api/auth/signup", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	cookie := sessionCookie(rr)
	require.NotNil(t, cookie)
	return cookie
}

func sessionCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	return nil
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) apierr.ErrorResponse {
	t.Helper()
	var errResp apierr.ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&errResp))
	return errResp
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/health", nil, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Health
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestSignupThenMe(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/auth/signup", map[string]string{
		"username": "a",
		"email":    "a@x.io",
		"password": "pw",
	}, nil)
	require.Equal(t, http.StatusCreated, rr.Code)

	var signupResp response.AuthResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&signupResp))
	assert.Equal(t, "User created successfully!", signupResp.Message)
	assert.Equal(t, "a", signupResp.User.Username)
	assert.Equal(t, "a@x.io", signupResp.User.Email)
	assert.NotEmpty(t, signupResp.User.ID)

	cookie := sessionCookie(rr)
	require.NotNil(t, cookie)
	assert.Equal(t, signupResp.User.ID, cookie.Value)
	assert.Equal(t, 604800, cookie.MaxAge)
	assert.Equal(t, "/", cookie.Path)
	assert.True(t, cookie.HttpOnly)

	rr = ts.request(http.MethodGet, "/api/auth/me", nil, cookie)
	require.Equal(t, http.StatusOK, rr.Code)

	var me map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&me))
	assert.Equal(t, signupResp.User.ID, me["id"])
	assert.Equal(t, "a", me["username"])
	assert.Equal(t, "a@x.io", me["email"])
	assert.NotContains(t, me, "password")
	assert.NotContains(t, me, "password_hash")
}

func TestSignupDefaultsUsernameFromEmail(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/auth/signup", map[string]string{
		"email":    "carol@example.com",
		"password": "pw",
	}, nil)
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.AuthResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "carol", resp.User.Username)
}

func TestSignupDuplicateEmail(t *testing.T) {
	ts := newTestServer(t)
	ts.signup(t, "a", "a@x.io", "pw")

	rr := ts.request(http.MethodPost, "/api/auth/signup", map[string]string{
		"username": "other",
		"email":    "a@x.io",
		"password": "different",
	}, nil)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Nil(t, sessionCookie(rr))

	errResp := decodeError(t, rr)
	assert.Equal(t, apierr.CodeEmailExists, errResp.Code)
	assert.Equal(t, "Email already registered!", errResp.Message)
}

func TestSignupInvalidBody(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body any
	}{
		{"missing email", map[string]string{"password": "pw"}},
		{"missing password", map[string]string{"email": "a@x.io"}},
		{"blank email", map[string]string{"email": "   ", "password": "pw"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.request(http.MethodPost, "/api/auth/signup", tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, apierr.CodeInvalidRequest, decodeError(t, rr).Code)
		})
	}

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewBufferString("{not json"))
		rr := httptest.NewRecorder()
		ts.handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)
	signupCookie := ts.signup(t, "a", "a@x.io", "pw")

	rr := ts.request(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "a@x.io",
		"password": "pw",
	}, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.AuthResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "Login successful!", resp.Message)

	cookie := sessionCookie(rr)
	require.NotNil(t, cookie)
	assert.Equal(t, signupCookie.Value, cookie.Value)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ts := newTestServer(t)
	ts.signup(t, "a", "a@x.io", "pw")

	wrongPassword := ts.request(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "a@x.io",
		"password": "nope",
	}, nil)
	unknownEmail := ts.request(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "nobody@x.io",
		"password": "pw",
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, wrongPassword.Code, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
	assert.Nil(t, sessionCookie(wrongPassword))
	assert.Nil(t, sessionCookie(unknownEmail))

	errResp := decodeError(t, wrongPassword)
	assert.Equal(t, apierr.CodeInvalidCredentials, errResp.Code)
	assert.Equal(t, "Invalid email or password!", errResp.Message)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name    string
		method  string
		path    string
		session *http.Cookie
	}{
		{"me without cookie", http.MethodGet, "/api/auth/me", nil},
		{"me with forged cookie", http.MethodGet, "/api/auth/me", &http.Cookie{Name: "user_id", Value: "forged"}},
		{"me with empty cookie", http.MethodGet, "/api/auth/me", &http.Cookie{Name: "user_id", Value: ""}},
		{"current-user without cookie", http.MethodGet, "/api/auth/current-user", nil},
		{"logout without cookie", http.MethodPost, "/api/auth/logout", nil},
		{"play without cookie", http.MethodPost, "/api/games/game1/play", nil},
		{"play with forged cookie", http.MethodPost, "/api/games/game1/play", &http.Cookie{Name: "user_id", Value: "forged"}},
		{"history without cookie", http.MethodGet, "/api/games/history", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.request(tt.method, tt.path, nil, tt.session)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)

			errResp := decodeError(t, rr)
			assert.Equal(t, apierr.CodeUnauthorized, errResp.Code)
			assert.Equal(t, "Authentication required!", errResp.Message)
		})
	}
}

func TestCurrentUserAlias(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.signup(t, "a", "a@x.io", "pw")

	me := ts.request(http.MethodGet, "/api/auth/me", nil, cookie)
	current := ts.request(http.MethodGet, "/api/auth/current-user", nil, cookie)

	assert.Equal(t, http.StatusOK, current.Code)
	assert.JSONEq(t, me.Body.String(), current.Body.String())
}

func TestLogout(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.signup(t, "a", "a@x.io", "pw")

	rr := ts.request(http.MethodPost, "/api/auth/logout", nil, cookie)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.Message
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "Logged out successfully!", resp.Message)

	cleared := sessionCookie(rr)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Less(t, cleared.MaxAge, 0)

	// The token is the user ID, so a client that ignores the clear can still
	// present it. There is no server-side revocation.
	rr = ts.request(http.MethodGet, "/api/auth/me", nil, cookie)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestListGames(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/games", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var games []response.Game
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&games))
	assert.Equal(t, response.GamesFromModel(catalog.DefaultGames()), games)
}

func TestListGamesAfterReseed(t *testing.T) {
	ts := newTestServer(t)

	_, err := ts.app.CatalogService.Seed(t.Context())
	require.NoError(t, err)

	rr := ts.request(http.MethodGet, "/api/games", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var games []response.Game
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&games))
	assert.Len(t, games, len(catalog.DefaultGames()))
}

func TestPlayGame(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.signup(t, "a", "a@x.io", "pw")
	user := &model.User{ID: model.UserID(cookie.Value)}

	rr := ts.request(http.MethodPost, "/api/games/game2/play", nil, cookie)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.PlayResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "Game session started!", resp.Message)
	assert.Equal(t, "game2", resp.GameID)
	assert.Equal(t, "Memory Match", resp.Title)
	assert.Equal(t, "active", resp.Status)
	assert.NotEmpty(t, resp.SessionID)

	history, err := ts.app.PlayService.History(t.Context(), user)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, model.GameSessionID(resp.SessionID), history[0].ID)
	assert.Equal(t, model.GameID("game2"), history[0].GameID)
}

func TestPlayHistory(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.signup(t, "alice", "alice@x.io", "pw")
	bob := ts.signup(t, "bob", "bob@x.io", "pw")

	rr := ts.request(http.MethodGet, "/api/games/history", nil, alice)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())

	var started []string
	for _, id := range []string{"game1", "game3"} {
		rr = ts.request(http.MethodPost, "/api/games/"+id+"/play", nil, alice)
		require.Equal(t, http.StatusOK, rr.Code)
		var resp response.PlayResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		started = append(started, resp.SessionID)
	}
	rr = ts.request(http.MethodPost, "/api/games/game2/play", nil, bob)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/games/history", nil, alice)
	require.Equal(t, http.StatusOK, rr.Code)

	var history []response.GameSession
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&history))
	require.Len(t, history, 2)
	assert.Equal(t, started[0], history[0].ID)
	assert.Equal(t, "game1", history[0].GameID)
	assert.Equal(t, started[1], history[1].ID)
	assert.Equal(t, "game3", history[1].GameID)
	assert.Equal(t, "active", history[1].Status)
	assert.True(t, ts.app.MockClock.Now().Equal(history[0].StartedAt))
}

func TestPlayUnknownGame(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.signup(t, "a", "a@x.io", "pw")
	user := &model.User{ID: model.UserID(cookie.Value)}

	rr := ts.request(http.MethodPost, "/api/games/nope/play", nil, cookie)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	errResp := decodeError(t, rr)
	assert.Equal(t, apierr.CodeGameNotFound, errResp.Code)
	assert.Equal(t, "Game not found!", errResp.Message)

	history, err := ts.app.PlayService.History(t.Context(), user)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestPlayWithoutSessionWritesNothing(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.signup(t, "a", "a@x.io", "pw")
	user := &model.User{ID: model.UserID(cookie.Value)}

	rr := ts.request(http.MethodPost, "/api/games/game1/play", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	history, err := ts.app.PlayService.History(t.Context(), user)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestPlaceholder(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/placeholder/400/320", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/svg+xml", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), `width="400"`)
	assert.Contains(t, rr.Body.String(), `height="320"`)

	for _, path := range []string{"/api/placeholder/0/320", "/api/placeholder/400/5000"} {
		rr = ts.request(http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code, path)
	}

	rr = ts.request(http.MethodGet, "/api/placeholder/wide/320", nil, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSDisallowedOrigin(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/games", nil)
	req.Header.Set("Origin", "http://evil.example")
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestAuthRateLimit(t *testing.T) {
	ts := newTestServerWithConfig(t, func(cfg *api.RouterConfig) {
		cfg.AuthRateLimitRPS = 0.001
		cfg.AuthRateLimitBurst = 2
	})

	body := map[string]string{"email": "nobody@x.io", "password": "pw"}
	for i := 0; i < 2; i++ {
		rr := ts.request(http.MethodPost, "/api/auth/login", body, nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	}

	rr := ts.request(http.MethodPost, "/api/auth/login", body, nil)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, apierr.CodeRateLimited, decodeError(t, rr).Code)

	// Unthrottled routes are unaffected
	rr = ts.request(http.MethodGet, "/api/games", nil, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRequestMetrics(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.signup(t, "a", "a@x.io", "pw")
	ts.request(http.MethodPost, "/api/games/game1/play", nil, cookie)

	rr := httptest.NewRecorder()
	ts.app.Metrics.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.Contains(t, body, `gamehub_http_requests_total{method="POST",route="/api/games/{id}/play",status="200"} 1`)
	assert.Contains(t, body, `gamehub_auth_events_total{event="signup",outcome="success"} 1`)
	assert.Contains(t, body, `gamehub_game_plays_total{game_id="game1"} 1`)
}
