package googleauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/blogsphere/blogsphere/internal/config"
	"github.com/blogsphere/blogsphere/pkg/logger"
)

const defaultUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

// Profile is the identity obtained from the provider after a successful
// code exchange.
type Profile struct {
	Subject string
	Name    string
	Email   string
	Picture string
}

// Provider drives the Google authorization-code flow: redirect URL
// generation and code-for-identity exchange.
type Provider struct {
	oauth       *oauth2.Config
	verifier    *oidc.IDTokenVerifier
	userInfoURL string
}

// New builds a Provider from configuration. When cfg.Issuer is set and OIDC
// discovery succeeds, the id_token returned by the exchange is verified and
// supplies the profile; otherwise the userinfo endpoint is consulted with
// the access token.
func New(ctx context.Context, cfg config.GoogleConfig) *Provider {
	endpoint := google.Endpoint
	if cfg.AuthURL != "" && cfg.TokenURL != "" {
		endpoint = oauth2.Endpoint{AuthURL: cfg.AuthURL, TokenURL: cfg.TokenURL}
	}
	p := &Provider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     endpoint,
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
		userInfoURL: cfg.UserInfoURL,
	}
	if p.userInfoURL == "" {
		p.userInfoURL = defaultUserInfoURL
	}
	if cfg.Issuer != "" {
		provider, err := oidc.NewProvider(ctx, cfg.Issuer)
		if err != nil {
			logger.Warnf("oidc discovery for %s failed, falling back to userinfo lookup: %v", cfg.Issuer, err)
		} else {
			p.verifier = provider.Verifier(&oidc.Config{ClientID: cfg.ClientID})
		}
	}
	return p
}

// LoginURL returns the provider URL the client is redirected to for consent.
func (p *Provider) LoginURL(state string) string {
	return p.oauth.AuthCodeURL(state)
}

// Exchange trades the authorization code for the caller's identity. Any
// failure here terminates the login flow; no user record is created.
func (p *Provider) Exchange(ctx context.Context, code string) (*Profile, error) {
	tok, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange: %w", err)
	}
	if p.verifier != nil {
		return p.profileFromIDToken(ctx, tok)
	}
	return p.fetchUserInfo(ctx, tok.AccessToken)
}

func (p *Provider) profileFromIDToken(ctx context.Context, tok *oauth2.Token) (*Profile, error) {
	raw, ok := tok.Extra("id_token").(string)
	if !ok || raw == "" {
		return nil, fmt.Errorf("token response missing id_token")
	}
	idToken, err := p.verifier.Verify(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("id_token verification: %w", err)
	}
	var claims struct {
		Sub     string `json:"sub"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Picture string `json:"picture"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("id_token claims: %w", err)
	}
	if claims.Sub == "" {
		return nil, fmt.Errorf("id_token missing sub claim")
	}
	return &Profile{Subject: claims.Sub, Name: claims.Name, Email: claims.Email, Picture: claims.Picture}, nil
}

func (p *Provider) fetchUserInfo(ctx context.Context, accessToken string) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("userinfo response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo fetch returned %d: %s", resp.StatusCode, string(body))
	}

	var info struct {
		Sub     string `json:"sub"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Picture string `json:"picture"`
	}
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("userinfo parse: %w", err)
	}
	if info.Sub == "" {
		return nil, fmt.Errorf("empty sub in userinfo response")
	}
	return &Profile{Subject: info.Sub, Name: info.Name, Email: info.Email, Picture: info.Picture}, nil
}
