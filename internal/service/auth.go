package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/ledgerly/backend/internal/server"
)

// AuthService initializes the Clerk SDK and verifies webhook deliveries.
type AuthService struct {
	server *server.Server
}

// NewAuthService registers the Clerk secret key with the SDK so the auth
// middleware can verify session tokens.
func NewAuthService(s *server.Server) *AuthService {
	clerk.SetKey(s.Config.Auth.SecretKey)
	return &AuthService{
		server: s,
	}
}

// VerifyWebhookSignature checks the HMAC-SHA256 signature on an
// identity-provider webhook delivery against the configured webhook secret.
func (a *AuthService) VerifyWebhookSignature(body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(a.server.Config.Auth.WebhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
