package auth

import (
	"path"
	"strings"
)

// Gate decides per request path whether the caller may proceed.
type Gate struct {
	public         map[string]bool
	publicPrefixes []string
	authOnly       map[string]bool
}

// NewGate returns the route policy of the application: sign-in and sign-up
// pages, provider redirects and callbacks, the category list and docs are
// public; the credential endpoints are for signed-out callers only;
// everything else needs a session.
func NewGate() *Gate {
	return &Gate{
		public: set(
			"/signin", "/signup",
			"/api/auth/providers", "/api/auth/session",
			"/api/categories", "/api/categories/add",
			"/healthz",
		),
		publicPrefixes: []string{
			"/api/auth/signin/",
			"/api/auth/callback/",
			"/swagger/",
		},
		authOnly: set("/api/auth/signin", "/api/auth/signup"),
	}
}

// IsAuthorized is a pure function of the path and whether the request
// carries a valid session.
func (g *Gate) IsAuthorized(p string, hasSession bool) bool {
	p = normalize(p)

	if g.isPublic(p) {
		return true
	}
	if g.authOnly[p] {
		return !hasSession
	}
	return hasSession
}

// IsAuthOnly reports whether p is reserved for signed-out callers.
func (g *Gate) IsAuthOnly(p string) bool {
	return g.authOnly[normalize(p)]
}

func (g *Gate) isPublic(p string) bool {
	if g.public[p] {
		return true
	}
	for _, prefix := range g.publicPrefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

func normalize(p string) string {
	if p == "" {
		return "/"
	}
	return path.Clean("/" + p)
}

func set(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, it := range items {
		m[it] = true
	}
	return m
}
