package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/rpattn/clubsync/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new user repository.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	var (
		user                  domain.User
		currentOrganizationID pgtype.UUID
	)
	err := r.pool.QueryRow(
		ctx,
		`SELECT id, email, first_name, last_name, current_organization_id, created_at, updated_at
		 FROM users
		 WHERE id = $1`,
		id,
	).Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&currentOrganizationID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	if currentOrganizationID.Valid {
		orgID := uuid.UUID(currentOrganizationID.Bytes)
		user.CurrentOrganizationID = &orgID
	}

	return user, nil
}

func (r *userRepository) GetRole(ctx context.Context, userID uuid.UUID, organizationID uuid.UUID) (string, error) {
	var role string
	err := r.pool.QueryRow(
		ctx,
		`SELECT role FROM organization_members WHERE user_id = $1 AND organization_id = $2`,
		userID,
		organizationID,
	).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to get organization role: %w", err)
	}
	return role, nil
}
