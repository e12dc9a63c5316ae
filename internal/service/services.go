// Package service contains the business logic.
//
// It sits between the handler and repository layers: handlers pass in the
// resolved identity (the Clerk subject id) explicitly, services perform the
// business operations, and repositories do the data access. No service reads
// ambient session state; credentials always arrive as parameters.
package service

import (
	"context"

	"github.com/ledgerly/backend/internal/lib/job"
	"github.com/ledgerly/backend/internal/models"
	"github.com/ledgerly/backend/internal/repository"
	"github.com/ledgerly/backend/internal/server"
)

// userFinder is the slice of UsersRepository the services need.
type userFinder interface {
	FindByClerkID(ctx context.Context, clerkUserID string) (*models.User, error)
}

// Services is the container for all service instances.
type Services struct {
	Auth      *AuthService
	Users     *UserService
	Accounts  *AccountService
	Dashboard *DashboardService
	Job       *job.JobService
}

// NewServices wires the service layer from the application container and the
// repositories.
func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	authService := NewAuthService(s)
	userService := NewUserService(repos.Users, s.Logger)
	dashboardService := NewDashboardService(repos.Users, repos.Transactions, s.Redis, s.Logger)
	accountService := NewAccountService(repos.Users, repos.Accounts, s.Protection.Limiter(), dashboardService, s.Logger)

	return &Services{
		Auth:      authService,
		Users:     userService,
		Accounts:  accountService,
		Dashboard: dashboardService,
		Job:       s.Job,
	}, nil
}
