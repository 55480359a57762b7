package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

// fakeProvider serves a token endpoint and the profile endpoints of both
// providers.
func fakeProvider(t *testing.T, githubEmail string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil || r.Form.Get("code") != "good-code" {
			http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"access_token": "tok", "token_type": "bearer"})
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{"sub": "g-123", "email": "g@example.com", "name": "Gee"})
	})
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"id": 987, "login": "octo", "email": githubEmail})
	})
	mux.HandleFunc("/user/emails", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"email": "old@example.com", "primary": false, "verified": true},
			{"email": "octo@example.com", "primary": true, "verified": true},
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func pointAt(p Provider, srv *httptest.Server, profile func(context.Context, *http.Client) (Profile, error)) {
	op := p.(*oauthProvider)
	op.config.Endpoint = oauth2.Endpoint{AuthURL: srv.URL + "/auth", TokenURL: srv.URL + "/token"}
	op.profile = profile
}

func TestGoogleExchange(t *testing.T) {
	srv := fakeProvider(t, "")
	p := NewGoogle("id", "secret", "http://localhost/api/auth/callback/google")
	pointAt(p, srv, googleProfile(srv.URL+"/userinfo"))

	profile, err := p.Exchange(context.Background(), "good-code")
	require.NoError(t, err)
	assert.Equal(t, Profile{Subject: "g-123", Email: "g@example.com", Name: "Gee"}, profile)

	_, err = p.Exchange(context.Background(), "bad-code")
	assert.ErrorIs(t, err, ErrProvider)

	_, err = p.Exchange(context.Background(), "")
	assert.ErrorIs(t, err, ErrProvider)
}

func TestGitHubExchange(t *testing.T) {
	t.Run("public email", func(t *testing.T) {
		srv := fakeProvider(t, "public@example.com")
		p := NewGitHub("id", "secret", "")
		pointAt(p, srv, githubProfile(srv.URL))

		profile, err := p.Exchange(context.Background(), "good-code")
		require.NoError(t, err)
		assert.Equal(t, Profile{Subject: "987", Email: "public@example.com", Name: "octo"}, profile)
	})

	t.Run("private email", func(t *testing.T) {
		srv := fakeProvider(t, "")
		p := NewGitHub("id", "secret", "")
		pointAt(p, srv, githubProfile(srv.URL))

		profile, err := p.Exchange(context.Background(), "good-code")
		require.NoError(t, err)
		assert.Equal(t, "octo@example.com", profile.Email)
	})
}

func TestAuthCodeURL(t *testing.T) {
	p := NewGoogle("client-1", "secret", "http://localhost:8080/api/auth/callback/google")

	u, err := url.Parse(p.AuthCodeURL("state-xyz"))
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "client-1", q.Get("client_id"))
	assert.Equal(t, "state-xyz", q.Get("state"))
	assert.True(t, strings.Contains(q.Get("scope"), "email"))
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(NewGoogle("a", "b", ""), NewGitHub("c", "d", ""))

	p, ok := r.Get(ProviderGitHub)
	require.True(t, ok)
	assert.Equal(t, "GitHub", p.Name())

	_, ok = r.Get("facebook")
	assert.False(t, ok)
	assert.Len(t, r.All(), 2)
}
