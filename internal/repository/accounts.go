package repository

import (
	"context"

	"github.com/ledgerly/backend/internal/models"
	"github.com/ledgerly/backend/internal/server"
	"github.com/ledgerly/backend/internal/sqlerr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountsRepository reads and writes Account rows.
type AccountsRepository struct {
	server *server.Server
}

func NewAccountsRepository(s *server.Server) *AccountsRepository {
	return &AccountsRepository{server: s}
}

// ListByUser returns all accounts owned by userID, newest-created first,
// each carrying its transaction count.
func (r *AccountsRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Account, error) {
	const query = `
		select
			a.id, a.user_id, a.name, a.type, a.balance, a.is_default,
			a.created_at, a.updated_at,
			count(t.id) as transaction_count
		from accounts a
		left join transactions t on t.account_id = a.id
		where a.user_id = $1
		group by a.id
		order by a.created_at desc`

	rows, err := r.server.DB.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	accounts := make([]models.Account, 0)
	for rows.Next() {
		var account models.Account
		if err := rows.Scan(
			&account.ID,
			&account.UserID,
			&account.Name,
			&account.Type,
			&account.Balance,
			&account.IsDefault,
			&account.CreatedAt,
			&account.UpdatedAt,
			&account.TransactionCount,
		); err != nil {
			return nil, sqlerr.HandleError(err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}

	return accounts, nil
}

// CountByUser returns the number of accounts owned by userID.
func (r *AccountsRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	const query = `select count(*) from accounts where user_id = $1`

	var count int64
	if err := r.server.DB.Pool.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, sqlerr.HandleError(err)
	}

	return count, nil
}

// Create inserts a new account for userID.
//
// When isDefault is set, existing defaults are unset and the insert happens
// in the SAME transaction, so concurrent creations cannot leave two default
// accounts. The partial unique index on (user_id) where is_default backs
// this at the schema level.
func (r *AccountsRepository) Create(ctx context.Context, userID uuid.UUID, name string, accountType models.AccountType, balance decimal.Decimal, isDefault bool) (*models.Account, error) {
	tx, err := r.server.DB.Pool.Begin(ctx)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer tx.Rollback(ctx)

	if isDefault {
		const unsetQuery = `
			update accounts
			set is_default = false, updated_at = now()
			where user_id = $1 and is_default`

		if _, err := tx.Exec(ctx, unsetQuery, userID); err != nil {
			return nil, sqlerr.HandleError(err)
		}
	}

	const insertQuery = `
		insert into accounts (user_id, name, type, balance, is_default)
		values ($1, $2, $3, $4, $5)
		returning id, user_id, name, type, balance, is_default, created_at, updated_at`

	var account models.Account
	err = tx.QueryRow(ctx, insertQuery, userID, name, accountType, balance, isDefault).Scan(
		&account.ID,
		&account.UserID,
		&account.Name,
		&account.Type,
		&account.Balance,
		&account.IsDefault,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, sqlerr.HandleError(err)
	}

	return &account, nil
}
