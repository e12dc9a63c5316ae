// Package repository handles all interactions with the database.
//
// It contains the raw SQL and methods to fetch, persist, or update data,
// abstracting SQL away from the service layer. All database errors pass
// through sqlerr.HandleError so services only ever see *errs.HTTPError.
package repository

import (
	"github.com/ledgerly/backend/internal/server"
)

// Repositories is the container for all repository instances, wired once at
// startup and handed to the service layer.
type Repositories struct {
	Users        *UsersRepository
	Accounts     *AccountsRepository
	Transactions *TransactionsRepository
}

// NewRepositories constructs the repository container from the application
// container (the pgx pool lives on s.DB).
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Users:        NewUsersRepository(s),
		Accounts:     NewAccountsRepository(s),
		Transactions: NewTransactionsRepository(s),
	}
}
