package repository

import (
	"context"

	"booking-audit/backend/internal/auditlog/domain"
)

// Repository defines persistence for booking audit-log entries.
type Repository interface {
	ListByBookingUID(ctx context.Context, bookingUID string, limit, offset int32) ([]*domain.Entry, error)
	Create(ctx context.Context, e *domain.Entry) error
}
