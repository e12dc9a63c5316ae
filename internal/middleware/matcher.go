package middleware

import "strings"

// RouteMatcher decides whether a path falls under a set of protected
// prefixes. A prefix matches the path itself or any path nested below it
// ("/api/accounts" matches "/api/accounts" and "/api/accounts/123", not
// "/api/accountsx").
type RouteMatcher struct {
	prefixes []string
}

// NewRouteMatcher builds a matcher from literal path prefixes.
func NewRouteMatcher(prefixes ...string) *RouteMatcher {
	cleaned := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		cleaned = append(cleaned, strings.TrimSuffix(p, "/"))
	}
	return &RouteMatcher{prefixes: cleaned}
}

// Matches reports whether path falls under any protected prefix.
func (m *RouteMatcher) Matches(path string) bool {
	for _, prefix := range m.prefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

// ProtectedRoutes returns the matcher for paths that require a resolved
// identity: the dashboard, account, and transaction APIs.
func ProtectedRoutes() *RouteMatcher {
	return NewRouteMatcher(
		"/api/dashboard",
		"/api/accounts",
		"/api/transactions",
	)
}

// WebhookRoutes returns the matcher for inbound webhook delivery paths.
// These are called by automated senders, so only the shield rules apply;
// authenticity comes from the webhook signature instead of a session.
func WebhookRoutes() *RouteMatcher {
	return NewRouteMatcher(
		"/webhooks",
	)
}

// ExcludedRoutes returns the matcher for static-asset and internal paths the
// protection chain skips entirely.
func ExcludedRoutes() *RouteMatcher {
	return NewRouteMatcher(
		"/status",
		"/static",
	)
}
