//go:build integration
// +build integration

package repository_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ledgerly/backend/internal/database"
	"github.com/ledgerly/backend/internal/models"
	"github.com/ledgerly/backend/internal/repository"
	"github.com/ledgerly/backend/internal/server"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupAccountsRepo starts a throwaway PostgreSQL container, applies the
// embedded migrations and returns a repository backed by it.
func setupAccountsRepo(t *testing.T) (*repository.AccountsRepository, *pgxpool.Pool) {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("ledgerly_test"),
		postgres.WithUsername("ledgerly"),
		postgres.WithPassword("ledgerly"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	log := zerolog.Nop()
	require.NoError(t, database.MigrateDSN(ctx, &log, connStr))

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	s := &server.Server{
		Logger: &log,
		DB:     &database.Database{Pool: pool},
	}

	return repository.NewAccountsRepository(s), pool
}

func createTestUser(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := pool.QueryRow(context.Background(),
		`insert into users (clerk_user_id, email) values ($1, $2) returning id`,
		"user_"+uuid.NewString(), "maria@example.com").Scan(&id)
	require.NoError(t, err)

	return id
}

func defaultAccountIDs(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID) []uuid.UUID {
	t.Helper()

	rows, err := pool.Query(context.Background(),
		`select id from accounts where user_id = $1 and is_default`, userID)
	require.NoError(t, err)
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		require.NoError(t, rows.Scan(&id))
		ids = append(ids, id)
	}
	require.NoError(t, rows.Err())

	return ids
}

func TestAccountsRepositoryCreateReplacesDefault(t *testing.T) {
	repo, pool := setupAccountsRepo(t)
	ctx := context.Background()
	userID := createTestUser(t, pool)

	first, err := repo.Create(ctx, userID, "Everyday", models.AccountTypeCurrent, decimal.Zero, true)
	require.NoError(t, err)
	assert.True(t, first.IsDefault)

	second, err := repo.Create(ctx, userID, "Savings", models.AccountTypeSavings, decimal.NewFromInt(100), true)
	require.NoError(t, err)
	assert.True(t, second.IsDefault)

	defaults := defaultAccountIDs(t, pool, userID)
	require.Len(t, defaults, 1, "at most one default account per user")
	assert.Equal(t, second.ID, defaults[0])
}

func TestAccountsRepositoryCreateNonDefaultKeepsDefault(t *testing.T) {
	repo, pool := setupAccountsRepo(t)
	ctx := context.Background()
	userID := createTestUser(t, pool)

	first, err := repo.Create(ctx, userID, "Everyday", models.AccountTypeCurrent, decimal.Zero, true)
	require.NoError(t, err)

	second, err := repo.Create(ctx, userID, "Savings", models.AccountTypeSavings, decimal.Zero, false)
	require.NoError(t, err)
	assert.False(t, second.IsDefault)

	defaults := defaultAccountIDs(t, pool, userID)
	require.Len(t, defaults, 1)
	assert.Equal(t, first.ID, defaults[0])
}

func TestAccountsRepositoryConcurrentDefaultCreation(t *testing.T) {
	repo, pool := setupAccountsRepo(t)
	ctx := context.Background()
	userID := createTestUser(t, pool)

	// Racing default creations may serialize cleanly or one may lose to the
	// partial unique index. Either way the table must end up with exactly
	// one default account.
	var wg sync.WaitGroup
	errsCh := make(chan error, 2)
	for _, name := range []string{"Everyday", "Savings"} {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			_, err := repo.Create(ctx, userID, name, models.AccountTypeCurrent, decimal.Zero, true)
			errsCh <- err
		}(name)
	}
	wg.Wait()
	close(errsCh)

	succeeded := 0
	for err := range errsCh {
		if err == nil {
			succeeded++
		}
	}
	require.GreaterOrEqual(t, succeeded, 1, "at least one creation must win")

	defaults := defaultAccountIDs(t, pool, userID)
	assert.Len(t, defaults, 1)
}

func TestAccountsRepositoryListByUserNewestFirst(t *testing.T) {
	repo, pool := setupAccountsRepo(t)
	ctx := context.Background()
	userID := createTestUser(t, pool)

	// Insert with explicit created_at values so the expected order does not
	// depend on sub-millisecond insert timing.
	base := time.Now().UTC().Add(-time.Hour)
	names := []string{"Oldest", "Middle", "Newest"}
	ids := make(map[string]uuid.UUID, len(names))
	for i, name := range names {
		var id uuid.UUID
		err := pool.QueryRow(ctx,
			`insert into accounts (user_id, name, type, balance, created_at)
			 values ($1, $2, 'CURRENT', 0, $3) returning id`,
			userID, name, base.Add(time.Duration(i)*time.Minute)).Scan(&id)
		require.NoError(t, err)
		ids[name] = id
	}

	_, err := pool.Exec(ctx,
		`insert into transactions (user_id, account_id, type, amount, date)
		 values ($1, $2, 'EXPENSE', 25, now()), ($1, $2, 'INCOME', 100, now())`,
		userID, ids["Newest"])
	require.NoError(t, err)

	accounts, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, accounts, 3)

	assert.Equal(t, "Newest", accounts[0].Name)
	assert.Equal(t, "Middle", accounts[1].Name)
	assert.Equal(t, "Oldest", accounts[2].Name)

	assert.Equal(t, int64(2), accounts[0].TransactionCount)
	assert.Equal(t, int64(0), accounts[2].TransactionCount)
}
