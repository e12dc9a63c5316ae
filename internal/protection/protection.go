// Package protection implements the edge protection stage: every inbound
// request is evaluated against a security policy (shield rules + bot
// detection) before anything else runs, and write actions can additionally
// acquire a rate-limit decision keyed by identity.
//
// The decision contract mirrors a hosted edge-security service:
// evaluate once per request, return allow/deny with a reason, and for
// rate-limit denials include remaining-quota and reset-time metadata.
package protection

import (
	"net/http"
	"time"

	"github.com/ledgerly/backend/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Reason classifies why a request was denied.
type Reason string

const (
	// ReasonNone means the request was allowed.
	ReasonNone Reason = ""

	// ReasonShield means a shield rule matched (suspicious payload).
	ReasonShield Reason = "shield"

	// ReasonBot means the client was classified as a disallowed bot.
	ReasonBot Reason = "bot"

	// ReasonRateLimit means the quota for the key was exhausted.
	ReasonRateLimit Reason = "rate_limit"
)

// Decision is the outcome of a policy evaluation.
//
// Remaining and Reset are populated only for rate-limit evaluations; RuleID
// names the shield rule or bot pattern that matched, for logs.
type Decision struct {
	Allowed   bool
	Reason    Reason
	RuleID    string
	Remaining int64
	Reset     time.Time
}

// Allow returns the decision for an allowed request.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Service evaluates the protection policy. It is stateless apart from the
// Redis-backed limiter and safe for concurrent use.
type Service struct {
	cfg     config.ProtectionConfig
	shield  *shield
	bots    *botFilter
	limiter *rateLimiter
	log     *zerolog.Logger
}

// New constructs the protection service from config.
//
// redisClient backs the rate limiter; the shield and bot filter are pure
// request inspection.
func New(cfg config.ProtectionConfig, redisClient *redis.Client, log *zerolog.Logger) *Service {
	return &Service{
		cfg:     cfg,
		shield:  newShield(),
		bots:    newBotFilter(cfg.AllowedBots),
		limiter: newRateLimiter(redisClient, cfg.RateLimitMax, time.Duration(cfg.RateLimitWindow)*time.Second),
		log:     log,
	}
}

// Protect evaluates the shield and bot rules for an inbound request.
//
// Shield runs first, then bot detection. The first rule hit short-circuits
// with a deny decision; the handler behind this check must never execute.
func (s *Service) Protect(r *http.Request) Decision {
	if decision := s.inspectShield(r); !decision.Allowed {
		return decision
	}
	return s.inspectBots(r)
}

// ProtectWebhook evaluates the shield rules only. Webhook senders are
// automated clients, so the User-Agent based bot filter would reject
// legitimate deliveries; payload authenticity is checked separately via the
// webhook signature.
func (s *Service) ProtectWebhook(r *http.Request) Decision {
	return s.inspectShield(r)
}

func (s *Service) inspectShield(r *http.Request) Decision {
	if !s.cfg.ShieldEnabled {
		return Allow()
	}

	if ruleID, ok := s.shield.inspect(r); !ok {
		s.log.Warn().
			Str("rule", ruleID).
			Str("path", r.URL.Path).
			Str("ip", r.RemoteAddr).
			Msg("request blocked by shield")
		return Decision{Reason: ReasonShield, RuleID: ruleID}
	}

	return Allow()
}

func (s *Service) inspectBots(r *http.Request) Decision {
	if !s.cfg.BotDetectionEnabled {
		return Allow()
	}

	if ruleID, ok := s.bots.inspect(r.UserAgent()); !ok {
		s.log.Warn().
			Str("rule", ruleID).
			Str("user_agent", r.UserAgent()).
			Msg("request blocked by bot filter")
		return Decision{Reason: ReasonBot, RuleID: ruleID}
	}

	return Allow()
}

// Limiter exposes the rate limiter for identity-keyed quota decisions.
func (s *Service) Limiter() *rateLimiter {
	return s.limiter
}
