package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/clerk/clerk-sdk-go/v2"
	clerkhttp "github.com/clerk/clerk-sdk-go/v2/http"
	"github.com/ledgerly/backend/internal/errs"
	"github.com/ledgerly/backend/internal/server"
	"github.com/labstack/echo/v4"
)

// AuthMiddleware is the auth gate. It holds the app Server so the gate can
// read config (sign-in URL) and log through shared deps.
type AuthMiddleware struct {
	server    *server.Server
	protected *RouteMatcher
}

// NewAuthMiddleware constructs an AuthMiddleware guarding the protected
// route prefixes.
func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{
		server:    s,
		protected: ProtectedRoutes(),
	}
}

// Gate returns the auth gate middleware.
//
// Behavior:
//  1. Paths outside the protected-prefix set pass through untouched.
//  2. Protected paths run Clerk's header-authorization middleware, which
//     parses and verifies the bearer token and stores session claims in the
//     request context.
//  3. Missing/invalid tokens produce a 401 whose body carries a redirect
//     Action pointing at the sign-in route.
//  4. On success the subject id is stored in Echo context under UserIDKey
//     for handlers and the context enhancer.
func (auth *AuthMiddleware) Gate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		wrapped := auth.requireAuth(next)
		return func(c echo.Context) error {
			if !auth.protected.Matches(c.Request().URL.Path) {
				return next(c)
			}
			return wrapped(c)
		}
	}
}

// requireAuth enforces authentication using Clerk.
func (auth *AuthMiddleware) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	// echo.WrapMiddleware adapts Clerk's net/http middleware. The failure
	// handler runs when the token is missing or invalid; it must write the
	// response itself since it is below Echo's error handler.
	return echo.WrapMiddleware(
		clerkhttp.WithHeaderAuthorization(
			clerkhttp.AuthorizationFailureHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				signInErr := errs.NewSignInRequiredError(auth.server.Config.Auth.SignInURL)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(signInErr.Status)

				if err := json.NewEncoder(w).Encode(signInErr); err != nil {
					auth.server.Logger.Error().
						Err(err).
						Str("function", "RequireAuth").
						Msg("failed to write JSON response")
				}
			}))))(
		func(c echo.Context) error {
			// Clerk middleware put verified session claims into the request
			// context; absent claims means unauthenticated.
			claims, ok := clerk.SessionClaimsFromContext(c.Request().Context())
			if !ok {
				auth.server.Logger.Warn().
					Str("function", "RequireAuth").
					Str("request_id", GetRequestID(c)).
					Str("path", c.Request().URL.Path).
					Msg("no session claims on protected path")

				return errs.NewSignInRequiredError(auth.server.Config.Auth.SignInURL)
			}

			// Stored in Echo's request-scoped bag, not Go's context.
			c.Set(UserIDKey, claims.Subject)

			return next(c)
		})
}
