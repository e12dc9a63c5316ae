package repository

import (
	"context"

	"github.com/ledgerly/backend/internal/models"
	"github.com/ledgerly/backend/internal/server"
	"github.com/ledgerly/backend/internal/sqlerr"

	"github.com/google/uuid"
)

// TransactionsRepository reads Transaction rows. Transactions are created by
// an ingest pipeline outside this service, so only reads live here.
type TransactionsRepository struct {
	server *server.Server
}

func NewTransactionsRepository(s *server.Server) *TransactionsRepository {
	return &TransactionsRepository{server: s}
}

// ListByUser returns all transactions for userID ordered by date descending.
func (r *TransactionsRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error) {
	const query = `
		select id, user_id, account_id, type, amount, description, date, created_at
		from transactions
		where user_id = $1
		order by date desc`

	rows, err := r.server.DB.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	transactions := make([]models.Transaction, 0)
	for rows.Next() {
		var transaction models.Transaction
		if err := rows.Scan(
			&transaction.ID,
			&transaction.UserID,
			&transaction.AccountID,
			&transaction.Type,
			&transaction.Amount,
			&transaction.Description,
			&transaction.Date,
			&transaction.CreatedAt,
		); err != nil {
			return nil, sqlerr.HandleError(err)
		}
		transactions = append(transactions, transaction)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}

	return transactions, nil
}
