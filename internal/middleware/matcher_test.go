package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouteMatcherPrefixSemantics(t *testing.T) {
	m := NewRouteMatcher("/api/accounts", "/api/dashboard")

	tests := []struct {
		path    string
		matches bool
	}{
		{"/api/accounts", true},
		{"/api/accounts/123", true},
		{"/api/accounts/123/transactions", true},
		{"/api/dashboard", true},
		// Prefix match is segment-aware, not raw string prefix.
		{"/api/accountsx", false},
		{"/api/account", false},
		{"/api", false},
		{"/", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.matches, m.Matches(tt.path), "path %q", tt.path)
	}
}

func TestRouteMatcherTrimsTrailingSlash(t *testing.T) {
	m := NewRouteMatcher("/api/accounts/")

	assert.True(t, m.Matches("/api/accounts"))
	assert.True(t, m.Matches("/api/accounts/123"))
	assert.False(t, m.Matches("/api/accountsx"))
}

func TestProtectedRoutes(t *testing.T) {
	m := ProtectedRoutes()

	assert.True(t, m.Matches("/api/dashboard"))
	assert.True(t, m.Matches("/api/accounts"))
	assert.True(t, m.Matches("/api/transactions/42"))

	assert.False(t, m.Matches("/status"))
	assert.False(t, m.Matches("/webhooks/clerk"))
	assert.False(t, m.Matches("/static/openapi.json"))
}

func TestExcludedRoutes(t *testing.T) {
	m := ExcludedRoutes()

	assert.True(t, m.Matches("/status"))
	assert.True(t, m.Matches("/static/favicon.ico"))

	assert.False(t, m.Matches("/api/accounts"))
}
