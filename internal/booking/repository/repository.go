package repository

import (
	"context"

	"booking-audit/backend/internal/booking/domain"
)

// Repository defines read access to bookings.
type Repository interface {
	// GetByUIDWithEventType resolves a booking by its public uid, including its
	// event type and the event type's one-level parent. Returns (nil, nil) when
	// no booking exists for uid; an error only for backend failures.
	GetByUIDWithEventType(ctx context.Context, uid string) (*domain.Booking, error)
}
