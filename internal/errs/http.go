// Package errs defines the structured error type every action in the API
// returns.
//
// Every failure the service can produce maps to exactly one *HTTPError with a
// stable machine code (UNAUTHORIZED, NOT_FOUND, TOO_MANY_REQUESTS, ...), so
// clients branch on Code instead of parsing message text. Rate-limit denials
// additionally carry remaining-quota and reset-time metadata, and the auth
// gate uses the Action field to tell clients where to sign in.
package errs

import (
	"strings"
	"time"
)

// FieldError represents a field-level validation error.
//
// Example:
//
//	{ "field": "balance", "error": "must be a decimal number" }
type FieldError struct {
	// Field is the field name the error relates to (e.g. "balance").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// ActionType is a string-based enum describing what the client should do.
type ActionType string

const (
	// ActionTypeRedirect tells the client it should redirect somewhere.
	// Value holds the destination URL or route.
	ActionTypeRedirect ActionType = "redirect"
)

// Action is an optional "what the client should do next" instruction.
//
// The auth gate uses this for unauthenticated requests to protected paths:
// the 401 response carries a redirect action pointing at the sign-in route.
type Action struct {
	// Type is the kind of action (e.g. "redirect").
	Type ActionType `json:"type"`

	// Message is human-readable guidance for the client/UI.
	Message string `json:"message"`

	// Value is the payload for the action (e.g. redirect URL).
	Value string `json:"value"`
}

// RateLimitInfo carries quota metadata for TOO_MANY_REQUESTS responses.
//
// Remaining is the quota left in the current window after this request was
// counted; Reset is when the window rolls over and the quota refills.
type RateLimitInfo struct {
	Remaining int64     `json:"remaining"`
	Reset     time.Time `json:"reset"`
}

// HTTPError is the single error type the API returns.
//
// It implements the error interface and serializes directly to JSON.
// Fields:
//   - Code: machine-friendly error code (e.g. "TOO_MANY_REQUESTS").
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Override: lets middleware decide whether to replace the message.
//   - Errors: per-field validation errors.
//   - Action: optional client instruction (redirect to sign-in, etc.).
//   - RateLimit: quota metadata, set only on rate-limit denials.
type HTTPError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	// Errors holds field-level validation errors, typically for form inputs.
	Errors []FieldError `json:"errors,omitempty"`

	// Action is an optional client instruction (redirect, etc.).
	Action *Action `json:"action,omitempty"`

	// RateLimit is present only when Code is TOO_MANY_REQUESTS.
	RateLimit *RateLimitInfo `json:"rate_limit,omitempty"`
}

// Error makes *HTTPError satisfy the built-in error interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also a *HTTPError.
//
// It only checks the type, not Code/Status, so
// errors.Is(err, &HTTPError{}) answers "is this one of ours".
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of this HTTPError with Message replaced.
//
// Useful when a base error template needs a customized message without
// mutating the original.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	clone := *e
	clone.Message = message
	return &clone
}

// MakeUpperCaseWithUnderscores converts a string into
// UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Too Many Requests" -> "TOO_MANY_REQUESTS"
//
// Used to create stable machine-readable error codes from HTTP status text.
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
