package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ledgerly/backend/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// dashboardCacheTTL bounds staleness when invalidation is missed.
const dashboardCacheTTL = 5 * time.Minute

// transactionStore is the slice of TransactionsRepository the service needs.
type transactionStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error)
}

// DashboardResponse is the dashboard aggregation returned to clients:
// every transaction for the user, newest first, with serialized amounts.
type DashboardResponse struct {
	Transactions []models.TransactionResponse `json:"transactions"`
	NetTotal     float64                      `json:"netTotal"`
}

// DashboardService implements the dashboard data action with a Redis-backed
// per-user cache. Account creation invalidates the cached view.
type DashboardService struct {
	users        userFinder
	transactions transactionStore
	redis        *redis.Client
	log          *zerolog.Logger
}

func NewDashboardService(users userFinder, transactions transactionStore, redisClient *redis.Client, log *zerolog.Logger) *DashboardService {
	return &DashboardService{
		users:        users,
		transactions: transactions,
		redis:        redisClient,
		log:          log,
	}
}

// Get returns the dashboard data for the caller.
//
// The cached payload is served when present; otherwise transactions are
// queried ordered by date descending, serialized, cached, and returned.
// Cache failures degrade to a direct query, never to an error.
func (s *DashboardService) Get(ctx context.Context, clerkUserID string) (*DashboardResponse, error) {
	cacheKey := dashboardCacheKey(clerkUserID)

	cached, err := s.redis.Get(ctx, cacheKey).Bytes()
	if err == nil {
		var response DashboardResponse
		if err := json.Unmarshal(cached, &response); err == nil {
			return &response, nil
		}
		// Unreadable cache entry; fall through to a fresh query.
		s.redis.Del(ctx, cacheKey)
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Str("clerk_user_id", clerkUserID).Msg("dashboard cache read failed")
	}

	user, err := s.users.FindByClerkID(ctx, clerkUserID)
	if err != nil {
		return nil, err
	}

	transactions, err := s.transactions.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	response := &DashboardResponse{
		Transactions: make([]models.TransactionResponse, 0, len(transactions)),
	}

	net := float64(0)
	for i := range transactions {
		serialized := transactions[i].Serialize()
		response.Transactions = append(response.Transactions, serialized)

		switch transactions[i].Type {
		case models.TransactionTypeIncome:
			net += serialized.Amount
		case models.TransactionTypeExpense:
			net -= serialized.Amount
		}
	}
	response.NetTotal = net

	if payload, err := json.Marshal(response); err == nil {
		if err := s.redis.Set(ctx, cacheKey, payload, dashboardCacheTTL).Err(); err != nil {
			s.log.Warn().Err(err).Str("clerk_user_id", clerkUserID).Msg("dashboard cache write failed")
		}
	}

	return response, nil
}

// Invalidate marks the user's cached dashboard view stale by deleting it.
func (s *DashboardService) Invalidate(ctx context.Context, clerkUserID string) error {
	return s.redis.Del(ctx, dashboardCacheKey(clerkUserID)).Err()
}

func dashboardCacheKey(clerkUserID string) string {
	return "dashboard:" + clerkUserID
}
