package service

import (
	"context"

	"github.com/ledgerly/backend/internal/errs"
	"github.com/ledgerly/backend/internal/models"
	"github.com/ledgerly/backend/internal/protection"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// accountCreateCost is the fixed number of rate-limit units one account
// creation consumes.
const accountCreateCost = 1

// accountStore is the slice of AccountsRepository the service needs.
type accountStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Account, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	Create(ctx context.Context, userID uuid.UUID, name string, accountType models.AccountType, balance decimal.Decimal, isDefault bool) (*models.Account, error)
}

// accountLimiter issues rate-limit decisions keyed by identity.
type accountLimiter interface {
	Take(ctx context.Context, key string, cost int64) (protection.Decision, error)
}

// dashboardInvalidator marks a user's cached dashboard view stale.
type dashboardInvalidator interface {
	Invalidate(ctx context.Context, clerkUserID string) error
}

// CreateAccountInput is the validated payload for account creation.
// Balance arrives as a string and is parsed here; a non-numeric value fails
// with a validation error before anything is written.
type CreateAccountInput struct {
	Name      string
	Type      models.AccountType
	Balance   string
	IsDefault bool
}

// AccountService implements the account listing and creation actions.
type AccountService struct {
	users     userFinder
	accounts  accountStore
	limiter   accountLimiter
	dashboard dashboardInvalidator
	log       *zerolog.Logger
}

func NewAccountService(users userFinder, accounts accountStore, limiter accountLimiter, dashboard dashboardInvalidator, log *zerolog.Logger) *AccountService {
	return &AccountService{
		users:     users,
		accounts:  accounts,
		limiter:   limiter,
		dashboard: dashboard,
		log:       log,
	}
}

// List returns the caller's accounts, newest-created first, each with its
// transaction count and the balance serialized to a plain number.
//
// Query failures propagate as structured errors; an empty list always means
// "no accounts", never "the query failed".
func (s *AccountService) List(ctx context.Context, clerkUserID string) ([]models.AccountResponse, error) {
	user, err := s.users.FindByClerkID(ctx, clerkUserID)
	if err != nil {
		return nil, err
	}

	accounts, err := s.accounts.ListByUser(ctx, user.ID)
	if err != nil {
		s.log.Error().Err(err).Str("clerk_user_id", clerkUserID).Msg("failed to list accounts")
		return nil, err
	}

	responses := make([]models.AccountResponse, 0, len(accounts))
	for i := range accounts {
		responses = append(responses, accounts[i].Serialize())
	}

	return responses, nil
}

// Create performs the account creation action.
//
// Steps, in order:
//  1. acquire a rate-limit decision keyed by identity, fixed cost of one
//     unit; a rate-limit denial fails with TOO_MANY_REQUESTS carrying
//     remaining quota and reset time, any other denial fails with FORBIDDEN
//  2. resolve the User row (NOT_FOUND if absent)
//  3. parse the balance as a decimal (BAD_REQUEST if not numeric)
//  4. if the user has zero accounts, force the new account to be the default
//     regardless of the caller's hint
//  5. insert; when default, other defaults are unset in the same database
//     transaction
//  6. invalidate the cached dashboard view
func (s *AccountService) Create(ctx context.Context, clerkUserID string, input CreateAccountInput) (*models.AccountResponse, error) {
	decision, err := s.limiter.Take(ctx, "account-create:"+clerkUserID, accountCreateCost)
	if err != nil {
		s.log.Error().Err(err).Str("clerk_user_id", clerkUserID).Msg("rate limiter unavailable")
		return nil, errs.NewInternalServerError()
	}
	if !decision.Allowed {
		if decision.Reason == protection.ReasonRateLimit {
			s.log.Warn().
				Str("clerk_user_id", clerkUserID).
				Int64("remaining", decision.Remaining).
				Time("reset", decision.Reset).
				Msg("account creation rate limited")
			return nil, errs.NewTooManyRequestsError(
				"Too many accounts created. Please try again later.",
				decision.Remaining,
				decision.Reset,
			)
		}
		return nil, errs.NewForbiddenError("Request blocked", false)
	}

	user, err := s.users.FindByClerkID(ctx, clerkUserID)
	if err != nil {
		return nil, err
	}

	balance, err := decimal.NewFromString(input.Balance)
	if err != nil {
		return nil, errs.NewBadRequestError("Invalid balance amount", true, nil, []errs.FieldError{
			{Field: "balance", Error: "must be a decimal number"},
		}, nil)
	}

	count, err := s.accounts.CountByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	// The first account is always the default, whatever the caller asked.
	isDefault := input.IsDefault
	if count == 0 {
		isDefault = true
	}

	account, err := s.accounts.Create(ctx, user.ID, input.Name, input.Type, balance, isDefault)
	if err != nil {
		return nil, err
	}

	// The dashboard aggregates account data, so its cached view is stale now.
	// Invalidation failure is logged but does not fail the creation: the
	// cache entry expires on its own TTL.
	if err := s.dashboard.Invalidate(ctx, clerkUserID); err != nil {
		s.log.Error().Err(err).Str("clerk_user_id", clerkUserID).Msg("failed to invalidate dashboard cache")
	}

	s.log.Info().
		Str("clerk_user_id", clerkUserID).
		Str("account_id", account.ID.String()).
		Bool("is_default", account.IsDefault).
		Msg("account created")

	response := account.Serialize()
	return &response, nil
}
