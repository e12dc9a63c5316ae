// Package models defines the persistence entities and their API response
// shapes.
//
// Monetary columns are carried through the application as decimal.Decimal
// (NUMERIC in Postgres) and only converted to plain float64 at the response
// boundary, keeping fixed-point semantics everywhere except transport.
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType enumerates the kinds of accounts a user can hold.
type AccountType string

const (
	AccountTypeCurrent AccountType = "CURRENT"
	AccountTypeSavings AccountType = "SAVINGS"
)

// TransactionType enumerates money movement directions.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

// User is an identity record keyed by the external identity-provider subject
// id (Clerk user id). Rows are provisioned by the identity webhook.
type User struct {
	ID          uuid.UUID
	ClerkUserID string
	Email       string
	Name        string
	CreatedAt   time.Time
}

// Account belongs to exactly one User and carries a monetary balance.
//
// At most one account per user has IsDefault set; the accounts repository
// enforces this transactionally and the schema backs it with a partial
// unique index.
type Account struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Type      AccountType
	Balance   decimal.Decimal
	IsDefault bool
	CreatedAt time.Time
	UpdatedAt time.Time

	// TransactionCount is populated by the listing query, not a column.
	TransactionCount int64
}

// Transaction belongs to one User and one Account. Read-only from this
// service's perspective.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	AccountID   uuid.UUID
	Type        TransactionType
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	CreatedAt   time.Time
}

// AccountResponse is the transport shape of an Account.
//
// Balance is a plain number: the decimal is converted with InexactFloat64,
// which preserves the stored value within float64 precision.
type AccountResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Type             string    `json:"type"`
	Balance          float64   `json:"balance"`
	IsDefault        bool      `json:"isDefault"`
	TransactionCount int64     `json:"transactionCount"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Serialize converts an Account into its transport shape.
func (a *Account) Serialize() AccountResponse {
	return AccountResponse{
		ID:               a.ID.String(),
		Name:             a.Name,
		Type:             string(a.Type),
		Balance:          a.Balance.InexactFloat64(),
		IsDefault:        a.IsDefault,
		TransactionCount: a.TransactionCount,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

// TransactionResponse is the transport shape of a Transaction.
type TransactionResponse struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"accountId"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Serialize converts a Transaction into its transport shape.
func (t *Transaction) Serialize() TransactionResponse {
	return TransactionResponse{
		ID:          t.ID.String(),
		AccountID:   t.AccountID.String(),
		Type:        string(t.Type),
		Amount:      t.Amount.InexactFloat64(),
		Description: t.Description,
		Date:        t.Date,
		CreatedAt:   t.CreatedAt,
	}
}
