package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/blogsphere/blogsphere/internal/config"
	"github.com/blogsphere/blogsphere/internal/googleauth"
	"github.com/blogsphere/blogsphere/internal/tokens"
	"github.com/blogsphere/blogsphere/internal/users"
	"github.com/blogsphere/blogsphere/pkg/logger"
	"github.com/blogsphere/blogsphere/pkg/metrics"
	"github.com/blogsphere/blogsphere/pkg/middleware"
)

// stateCookie carries the OAuth state between the login redirect and the
// provider callback. It is the only cookie the service sets; there is no
// server-side session.
const (
	stateCookie       = "oauth_state"
	stateCookieMaxAge = 600
)

// AuthHandler holds dependencies for the login flow
type AuthHandler struct {
	cfg    *config.Config
	google *googleauth.Provider
	users  *users.Service
	issuer *tokens.Issuer
}

func NewAuthHandler(cfg *config.Config, google *googleauth.Provider, u *users.Service, issuer *tokens.Issuer) *AuthHandler {
	return &AuthHandler{cfg: cfg, google: google, users: u, issuer: issuer}
}

// Register routes under /auth
func (h *AuthHandler) Register(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	a := rg.Group("/auth")
	a.GET("/google", h.GoogleLogin)
	a.GET("/google/callback", h.GoogleCallback)
	a.GET("/me", requireAuth, h.Me)
	a.POST("/logout", h.Logout)
}

// GoogleLogin redirects the browser to Google's consent screen with a random
// state that is checked again on callback.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	state, err := randomState()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to start login"})
		return
	}
	secure := h.cfg.Server.Environment == "production"
	c.SetCookie(stateCookie, state, stateCookieMaxAge, "/", "", secure, true)
	c.Redirect(http.StatusFound, h.google.LoginURL(state))
}

// GoogleCallback finishes the code flow: state check, code exchange,
// first-login user creation, token mint, redirect back to the client with
// the token as a query parameter. Any failure redirects to the login page
// without creating a partial user record.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	fail := func(reason string) {
		c.Redirect(http.StatusFound, h.cfg.CORS.FrontendURL+"/login?error="+url.QueryEscape(reason))
	}

	state := c.Query("state")
	saved, err := c.Cookie(stateCookie)
	if err != nil || state == "" || state != saved {
		metrics.AuthFailures.WithLabelValues("state").Inc()
		fail("invalid state")
		return
	}
	c.SetCookie(stateCookie, "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		fail("missing code")
		return
	}

	profile, err := h.google.Exchange(c.Request.Context(), code)
	if err != nil {
		logger.Errorf("google code exchange failed: %v", err)
		metrics.AuthFailures.WithLabelValues("upstream").Inc()
		fail("authentication failed")
		return
	}

	u, err := h.users.GetOrCreate(c.Request.Context(), profile.Subject, profile.Name, profile.Email, profile.Picture)
	if err != nil {
		logger.Errorf("user lookup/create failed: %v", err)
		fail("authentication failed")
		return
	}

	token, err := h.issuer.Issue(u.ID)
	if err != nil {
		logger.Errorf("token issue failed: %v", err)
		fail("authentication failed")
		return
	}

	metrics.Logins.Inc()
	c.Redirect(http.StatusFound, h.cfg.CORS.FrontendURL+"/auth/success?token="+url.QueryEscape(token))
}

// Me returns the authenticated user
func (h *AuthHandler) Me(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if u == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "user not found"})
		return
	}
	c.JSON(http.StatusOK, u)
}

// Logout acknowledges the request; the token is stateless and the client
// simply discards it.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
}

func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
