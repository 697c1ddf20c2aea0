package repository

import (
	"context"

	"booking-audit/backend/internal/membership/domain"
)

// Repository defines read access to memberships.
type Repository interface {
	// GetByUserAndTeam returns the membership for the given user and team (or
	// organization) id, or (nil, nil) when the user is not a member at all.
	// It returns an error only for backend failures.
	GetByUserAndTeam(ctx context.Context, userID, teamID int64) (*domain.Membership, error)
	// HasMembership reports whether the user has any membership in the given
	// team, regardless of role.
	HasMembership(ctx context.Context, userID, teamID int64) (bool, error)
}
