package service

import (
	"context"

	"github.com/ledgerly/backend/internal/models"
	"github.com/rs/zerolog"
)

type userStore interface {
	FindByClerkID(ctx context.Context, clerkUserID string) (*models.User, error)
	Upsert(ctx context.Context, clerkUserID, email, name string) (*models.User, error)
}

// UserService provisions User rows from identity-provider events.
type UserService struct {
	users  userStore
	logger *zerolog.Logger
}

func NewUserService(users userStore, logger *zerolog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// Upsert creates or refreshes the User row for the given identity-provider
// subject id.
func (s *UserService) Upsert(ctx context.Context, clerkUserID, email, name string) (*models.User, error) {
	return s.users.Upsert(ctx, clerkUserID, email, name)
}
