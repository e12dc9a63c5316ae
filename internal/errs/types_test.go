package errs

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "TOO_MANY_REQUESTS", MakeUpperCaseWithUnderscores("Too Many Requests"))
	assert.Equal(t, "NOT_FOUND", MakeUpperCaseWithUnderscores("Not Found"))
	assert.Equal(t, "OK", MakeUpperCaseWithUnderscores("OK"))
}

func TestConstructorCodes(t *testing.T) {
	tests := []struct {
		name   string
		err    *HTTPError
		code   string
		status int
	}{
		{"unauthorized", NewUnauthorizedError("no", false), "UNAUTHORIZED", http.StatusUnauthorized},
		{"forbidden", NewForbiddenError("blocked", false), "FORBIDDEN", http.StatusForbidden},
		{"bad request", NewBadRequestError("bad", false, nil, nil, nil), "BAD_REQUEST", http.StatusBadRequest},
		{"not found", NewNotFoundError("missing", false, nil), "NOT_FOUND", http.StatusNotFound},
		{"internal", NewInternalServerError(), "INTERNAL_SERVER_ERROR", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.Status)
		})
	}
}

func TestNewSignInRequiredErrorCarriesRedirect(t *testing.T) {
	err := NewSignInRequiredError("/sign-in")

	assert.Equal(t, http.StatusUnauthorized, err.Status)
	if assert.NotNil(t, err.Action) {
		assert.Equal(t, ActionTypeRedirect, err.Action.Type)
		assert.Equal(t, "/sign-in", err.Action.Value)
	}
}

func TestNewTooManyRequestsErrorCarriesQuota(t *testing.T) {
	reset := time.Now().Add(30 * time.Second)

	err := NewTooManyRequestsError("Too many accounts created, try again later", 0, reset)

	assert.Equal(t, http.StatusTooManyRequests, err.Status)
	assert.Equal(t, "TOO_MANY_REQUESTS", err.Code)
	if assert.NotNil(t, err.RateLimit) {
		assert.Equal(t, int64(0), err.RateLimit.Remaining)
		assert.Equal(t, reset, err.RateLimit.Reset)
	}
}

func TestCustomCodeOverride(t *testing.T) {
	code := "ACCOUNT_EXISTS"

	err := NewBadRequestError("duplicate", false, &code, nil, nil)

	assert.Equal(t, "ACCOUNT_EXISTS", err.Code)
}

func TestIsMatchesAnyHTTPError(t *testing.T) {
	err := NewNotFoundError("missing", false, nil)

	assert.True(t, errors.Is(err, &HTTPError{}))
	assert.False(t, errors.Is(errors.New("plain"), &HTTPError{}))
}

func TestWithMessageReturnsCopy(t *testing.T) {
	base := NewForbiddenError("original", false)

	custom := base.WithMessage("customized")

	assert.Equal(t, "customized", custom.Message)
	assert.Equal(t, "original", base.Message)
	assert.Equal(t, base.Code, custom.Code)
}
