package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountSerializeConvertsBalance(t *testing.T) {
	account := Account{
		ID:               uuid.New(),
		UserID:           uuid.New(),
		Name:             "Main",
		Type:             AccountTypeCurrent,
		Balance:          decimal.RequireFromString("1234.56"),
		IsDefault:        true,
		TransactionCount: 3,
		CreatedAt:        time.Now(),
	}

	resp := account.Serialize()

	assert.Equal(t, account.ID.String(), resp.ID)
	assert.Equal(t, "CURRENT", resp.Type)
	assert.Equal(t, 1234.56, resp.Balance)
	assert.True(t, resp.IsDefault)
	assert.Equal(t, int64(3), resp.TransactionCount)
}

func TestAccountResponseJSONShape(t *testing.T) {
	account := Account{
		ID:      uuid.New(),
		Name:    "Savings",
		Type:    AccountTypeSavings,
		Balance: decimal.RequireFromString("0.1"),
	}

	payload, err := json.Marshal(account.Serialize())
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &decoded))

	// Balance crosses the wire as a plain number, not a string.
	assert.Equal(t, 0.1, decoded["balance"])
	assert.Equal(t, "SAVINGS", decoded["type"])
	assert.Contains(t, decoded, "isDefault")
	assert.Contains(t, decoded, "transactionCount")
}

func TestTransactionSerialize(t *testing.T) {
	date := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	tx := Transaction{
		ID:          uuid.New(),
		AccountID:   uuid.New(),
		Type:        TransactionTypeExpense,
		Amount:      decimal.RequireFromString("42.99"),
		Description: "Groceries",
		Date:        date,
	}

	resp := tx.Serialize()

	assert.Equal(t, tx.ID.String(), resp.ID)
	assert.Equal(t, tx.AccountID.String(), resp.AccountID)
	assert.Equal(t, "EXPENSE", resp.Type)
	assert.Equal(t, 42.99, resp.Amount)
	assert.Equal(t, "Groceries", resp.Description)
	assert.Equal(t, date, resp.Date)
}
