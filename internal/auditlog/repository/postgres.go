package repository

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"booking-audit/backend/internal/auditlog/domain"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository returns an audit-log repository backed by the given pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var _ Repository = (*PostgresRepository)(nil)

// ListByBookingUID returns audit entries for the given booking, newest first,
// paginated by limit and offset.
func (r *PostgresRepository) ListByBookingUID(ctx context.Context, bookingUID string, limit, offset int32) ([]*domain.Entry, error) {
	const query = `SELECT id, booking_uid, actor_user_id, action, resource, ip, metadata, created_at
		FROM booking_audit_logs WHERE booking_uid = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, bookingUID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*domain.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Create persists the entry. The entry must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, e *domain.Entry) error {
	const query = `INSERT INTO booking_audit_logs (id, booking_uid, actor_user_id, action, resource, ip, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	meta := sql.NullString{String: e.Metadata, Valid: e.Metadata != ""}
	_, err := r.pool.Exec(ctx, query, e.ID, e.BookingUID, e.ActorUserID, e.Action, e.Resource, e.IP, meta, e.CreatedAt)
	return err
}

func scanEntry(row pgx.Row) (*domain.Entry, error) {
	var (
		e    domain.Entry
		meta sql.NullString
	)
	if err := row.Scan(&e.ID, &e.BookingUID, &e.ActorUserID, &e.Action, &e.Resource, &e.IP, &meta, &e.CreatedAt); err != nil {
		return nil, err
	}
	if meta.Valid {
		e.Metadata = meta.String
	}
	return &e, nil
}
