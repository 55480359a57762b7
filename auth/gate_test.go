package auth

import "testing"

func TestGate(t *testing.T) {
	g := NewGate()

	tests := []struct {
		path       string
		hasSession bool
		want       bool
	}{
		{"/api/transactions", false, false},
		{"/api/transactions", true, true},
		{"/api/budgets/abc", false, false},
		{"/dashboard", false, false},
		{"/dashboard", true, true},
		{"/signin", false, true},
		{"/signin", true, true},
		{"/api/categories", false, true},
		{"/api/auth/session", false, true},
		{"/api/auth/providers", true, true},
		{"/api/auth/signin/google", false, true},
		{"/api/auth/callback/github", false, true},
		{"/swagger/index.html", false, true},
		{"/healthz", false, true},
		{"/api/auth/signin", false, true},
		{"/api/auth/signin", true, false},
		{"/api/auth/signup", true, false},
		{"/api/auth/signout", false, false},
		{"/api/categories/../transactions", false, false},
		{"", false, false},
	}
	for _, tt := range tests {
		if got := g.IsAuthorized(tt.path, tt.hasSession); got != tt.want {
			t.Errorf("IsAuthorized(%q, %v) = %v, want %v", tt.path, tt.hasSession, got, tt.want)
		}
	}
}

func TestGateIsAuthOnly(t *testing.T) {
	g := NewGate()
	if !g.IsAuthOnly("/api/auth/signup") {
		t.Error("Expected /api/auth/signup to be auth-only")
	}
	if g.IsAuthOnly("/api/auth/signin/google") {
		t.Error("Expected provider redirect not to be auth-only")
	}
}
