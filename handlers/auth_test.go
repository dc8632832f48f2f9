package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogsphere/blogsphere/internal/config"
)

// fakeGoogle spins up token and userinfo endpoints so the full callback flow
// runs without talking to Google.
func fakeGoogle(t *testing.T, profile map[string]string, tokenStatus int) config.GoogleConfig {
	t.Helper()

	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tokenStatus != http.StatusOK {
			http.Error(w, "exchange rejected", tokenStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"at-123","token_type":"Bearer","expires_in":3600}`))
	}))
	t.Cleanup(tokenSrv.Close)

	userSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer at-123", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		body := `{`
		first := true
		for k, v := range profile {
			if !first {
				body += ","
			}
			body += `"` + k + `":"` + v + `"`
			first = false
		}
		body += `}`
		w.Write([]byte(body))
	}))
	t.Cleanup(userSrv.Close)

	return config.GoogleConfig{
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		RedirectURL:  "http://localhost:3001/auth/google/callback",
		AuthURL:      tokenSrv.URL + "/authorize",
		TokenURL:     tokenSrv.URL + "/token",
		UserInfoURL:  userSrv.URL + "/userinfo",
	}
}

// startLogin hits /auth/google and returns the state value plus the cookie
// that has to accompany the callback.
func startLogin(t *testing.T, env *testEnv) (string, *http.Cookie) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/auth/google", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusFound, w.Code)

	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	state := loc.Query().Get("state")
	require.NotEmpty(t, state)

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == stateCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie, "state cookie not set")
	require.Equal(t, state, cookie.Value)
	return state, cookie
}

func callback(env *testEnv, state string, cookie *http.Cookie, code string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?state="+url.QueryEscape(state)+"&code="+url.QueryEscape(code), nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestGoogleLogin_RedirectsToConsent(t *testing.T) {
	google := fakeGoogle(t, nil, http.StatusOK)
	env := newTestEnv(t, google)

	req := httptest.NewRequest(http.MethodGet, "/auth/google", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	loc := w.Header().Get("Location")
	assert.True(t, strings.HasPrefix(loc, google.AuthURL), "redirected to %s", loc)
	parsed, err := url.Parse(loc)
	require.NoError(t, err)
	assert.Equal(t, "test-client", parsed.Query().Get("client_id"))
	assert.NotEmpty(t, parsed.Query().Get("state"))
}

func TestGoogleCallback_FullFlow(t *testing.T) {
	env := newTestEnv(t, fakeGoogle(t, map[string]string{
		"sub":     "g-123",
		"name":    "Ava",
		"email":   "ava@example.com",
		"picture": "https://img.example/ava.png",
	}, http.StatusOK))

	state, cookie := startLogin(t, env)
	w := callback(env, state, cookie, "auth-code-1")

	require.Equal(t, http.StatusFound, w.Code)
	loc := w.Header().Get("Location")
	require.True(t, strings.HasPrefix(loc, "http://localhost:5173/auth/success?token="), "got %s", loc)

	parsed, err := url.Parse(loc)
	require.NoError(t, err)
	token := parsed.Query().Get("token")
	require.NotEmpty(t, token)

	// the minted token works against the protected surface
	resp := env.do(t, http.MethodGet, "/auth/me", token, "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"Ava"`)
	assert.Equal(t, 1, env.userRepo.creates)

	// a second login round for the same Google account reuses the record
	state, cookie = startLogin(t, env)
	w = callback(env, state, cookie, "auth-code-2")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, 1, env.userRepo.creates)
}

func TestGoogleCallback_StateMismatch(t *testing.T) {
	env := newTestEnv(t, fakeGoogle(t, map[string]string{"sub": "g-1"}, http.StatusOK))

	_, cookie := startLogin(t, env)
	w := callback(env, "forged-state", cookie, "auth-code")

	require.Equal(t, http.StatusFound, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "http://localhost:5173/login?error="))
	assert.Equal(t, 0, env.userRepo.creates)
}

func TestGoogleCallback_MissingCookie(t *testing.T) {
	env := newTestEnv(t, fakeGoogle(t, map[string]string{"sub": "g-1"}, http.StatusOK))

	state, _ := startLogin(t, env)
	w := callback(env, state, nil, "auth-code")

	require.Equal(t, http.StatusFound, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "http://localhost:5173/login?error="))
}

func TestGoogleCallback_MissingCode(t *testing.T) {
	env := newTestEnv(t, fakeGoogle(t, map[string]string{"sub": "g-1"}, http.StatusOK))

	state, cookie := startLogin(t, env)
	w := callback(env, state, cookie, "")

	require.Equal(t, http.StatusFound, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "http://localhost:5173/login?error="))
}

func TestGoogleCallback_UpstreamFailure(t *testing.T) {
	env := newTestEnv(t, fakeGoogle(t, nil, http.StatusBadRequest))

	state, cookie := startLogin(t, env)
	w := callback(env, state, cookie, "auth-code")

	require.Equal(t, http.StatusFound, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "http://localhost:5173/login?error="))
	assert.Equal(t, 0, env.userRepo.creates)
}

func TestMe_RequiresToken(t *testing.T) {
	env := newTestEnv(t, config.GoogleConfig{})

	w := env.do(t, http.MethodGet, "/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodGet, "/auth/me", "not-a-jwt", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t, config.GoogleConfig{})

	w := env.do(t, http.MethodPost, "/auth/logout", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "logged out")
}
