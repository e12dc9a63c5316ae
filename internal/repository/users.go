package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ledgerly/backend/internal/models"
	"github.com/ledgerly/backend/internal/server"
	"github.com/ledgerly/backend/internal/sqlerr"

	"github.com/jackc/pgx/v5"
)

// UsersRepository reads and provisions User rows.
type UsersRepository struct {
	server *server.Server
}

func NewUsersRepository(s *server.Server) *UsersRepository {
	return &UsersRepository{server: s}
}

// FindByClerkID looks up the User owning the given identity-provider subject
// id. Returns a NOT_FOUND error when no row matches.
func (r *UsersRepository) FindByClerkID(ctx context.Context, clerkUserID string) (*models.User, error) {
	const query = `
		select id, clerk_user_id, email, name, created_at
		from users
		where clerk_user_id = $1`

	var user models.User
	err := r.server.DB.Pool.QueryRow(ctx, query, clerkUserID).Scan(
		&user.ID,
		&user.ClerkUserID,
		&user.Email,
		&user.Name,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The table: prefix lets sqlerr surface the entity name.
			return nil, sqlerr.HandleError(fmt.Errorf("table:users: %w", err))
		}
		return nil, sqlerr.HandleError(err)
	}

	return &user, nil
}

// Upsert provisions a User row from an identity-provider webhook event.
// Re-delivered events update email/name instead of failing on the unique
// clerk_user_id constraint.
func (r *UsersRepository) Upsert(ctx context.Context, clerkUserID, email, name string) (*models.User, error) {
	const query = `
		insert into users (clerk_user_id, email, name)
		values ($1, $2, $3)
		on conflict (clerk_user_id) do update
			set email = excluded.email, name = excluded.name
		returning id, clerk_user_id, email, name, created_at`

	var user models.User
	err := r.server.DB.Pool.QueryRow(ctx, query, clerkUserID, email, name).Scan(
		&user.ID,
		&user.ClerkUserID,
		&user.Email,
		&user.Name,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}

	return &user, nil
}
