package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"booking-audit/backend/internal/booking/domain"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository returns a booking repository backed by the given pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var _ Repository = (*PostgresRepository)(nil)

// GetByUIDWithEventType returns the booking for uid with its event type and the
// event type's parent joined in, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByUIDWithEventType(ctx context.Context, uid string) (*domain.Booking, error) {
	const query = `SELECT b.uid, b.user_id, b.created_at,
			et.id, et.team_id,
			pet.id, pet.team_id
		FROM bookings b
		LEFT JOIN event_types et ON et.id = b.event_type_id
		LEFT JOIN event_types pet ON pet.id = et.parent_id
		WHERE b.uid = $1`
	row := r.pool.QueryRow(ctx, query, uid)

	var (
		b            domain.Booking
		ownerID      sql.NullInt64
		etID         sql.NullInt64
		etTeamID     sql.NullInt64
		parentID     sql.NullInt64
		parentTeamID sql.NullInt64
	)
	if err := row.Scan(&b.UID, &ownerID, &b.CreatedAt, &etID, &etTeamID, &parentID, &parentTeamID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if ownerID.Valid {
		v := ownerID.Int64
		b.OwnerID = &v
	}
	if etID.Valid {
		et := &domain.EventType{ID: etID.Int64}
		if etTeamID.Valid {
			v := etTeamID.Int64
			et.TeamID = &v
		}
		if parentID.Valid {
			parent := &domain.ParentEventType{ID: parentID.Int64}
			if parentTeamID.Valid {
				v := parentTeamID.Int64
				parent.TeamID = &v
			}
			et.Parent = parent
		}
		b.EventType = et
	}
	return &b, nil
}
