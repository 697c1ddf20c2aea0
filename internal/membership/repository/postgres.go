package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"booking-audit/backend/internal/membership/domain"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository returns a membership repository backed by the given pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var _ Repository = (*PostgresRepository)(nil)

// GetByUserAndTeam returns the membership for the given user and team, or nil
// if not found. It returns an error only for database failures, not for
// missing rows.
func (r *PostgresRepository) GetByUserAndTeam(ctx context.Context, userID, teamID int64) (*domain.Membership, error) {
	const query = `SELECT id, user_id, team_id, role, created_at
		FROM memberships WHERE user_id = $1 AND team_id = $2`
	row := r.pool.QueryRow(ctx, query, userID, teamID)
	var m domain.Membership
	if err := row.Scan(&m.ID, &m.UserID, &m.TeamID, &m.Role, &m.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

// HasMembership reports whether any membership row exists for (userID, teamID).
func (r *PostgresRepository) HasMembership(ctx context.Context, userID, teamID int64) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM memberships WHERE user_id = $1 AND team_id = $2)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, teamID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
