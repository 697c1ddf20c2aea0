// Package access decides whether a user may view audit-log entries for a
// booking. Audit logs are admin-only: regular users, including the booking's
// organizer and hosts, cannot view them. Access is granted when the acting
// user is OWNER or ADMIN of the team owning the booking's event type, or of
// the organization for personal bookings.
package access

import (
	"context"
	"fmt"

	bookingdomain "booking-audit/backend/internal/booking/domain"
	membershipdomain "booking-audit/backend/internal/membership/domain"
)

// BookingResolver resolves a booking with its event type and the event type's
// one-level parent. (nil, nil) means no booking exists for uid.
type BookingResolver interface {
	GetByUIDWithEventType(ctx context.Context, uid string) (*bookingdomain.Booking, error)
}

// MembershipResolver answers membership questions for a team or organization id.
type MembershipResolver interface {
	GetByUserAndTeam(ctx context.Context, userID, teamID int64) (*membershipdomain.Membership, error)
	HasMembership(ctx context.Context, userID, teamID int64) (bool, error)
}

// Checker runs the audit access decision. It is stateless and safe for
// concurrent use; every check is a fresh read of the backing data.
type Checker struct {
	bookings    BookingResolver
	memberships MembershipResolver
}

// NewChecker returns a Checker using the given collaborators.
func NewChecker(bookings BookingResolver, memberships MembershipResolver) *Checker {
	return &Checker{bookings: bookings, memberships: memberships}
}

// Check reports whether userID may view audit logs for the booking identified
// by bookingUID under the claimed organizationID scope. It returns nil when
// access is allowed, a *DeniedError for policy denials, and any other error
// for collaborator failures.
//
// The gates run in fixed precedence order and short-circuit:
//  1. missing organization scope
//  2. booking resolution
//  3. team path — privileged role in the effective owning team allows
//     immediately, bypassing all organization checks
//  4. personal path — owner present, owner in org, privileged org role
func (c *Checker) Check(ctx context.Context, bookingUID string, userID int64, organizationID *int64) error {
	if organizationID == nil {
		return deny(ReasonOrganizationIDRequired)
	}

	booking, err := c.bookings.GetByUIDWithEventType(ctx, bookingUID)
	if err != nil {
		return fmt.Errorf("resolve booking %q: %w", bookingUID, err)
	}
	if booking == nil {
		return deny(ReasonBookingNotFoundOrPermissionDenied)
	}

	if teamID := booking.EffectiveTeamID(); teamID != nil {
		privileged, err := c.hasPrivilegedRole(ctx, userID, *teamID)
		if err != nil {
			return err
		}
		if privileged {
			return nil
		}
		// Team role did not grant; the organization path below still applies.
	}

	if booking.OwnerID == nil {
		return deny(ReasonBookingHasNoOwner)
	}

	ownerInOrg, err := c.memberships.HasMembership(ctx, *booking.OwnerID, *organizationID)
	if err != nil {
		return fmt.Errorf("resolve owner membership: %w", err)
	}
	if !ownerInOrg {
		return deny(ReasonOwnerNotInOrganization)
	}

	privileged, err := c.hasPrivilegedRole(ctx, userID, *organizationID)
	if err != nil {
		return err
	}
	if privileged {
		return nil
	}
	return deny(ReasonPermissionDenied)
}

// hasPrivilegedRole reports whether the user holds a privileged role in the
// given team or organization. A missing membership is not privileged, never
// an error.
func (c *Checker) hasPrivilegedRole(ctx context.Context, userID, teamID int64) (bool, error) {
	m, err := c.memberships.GetByUserAndTeam(ctx, userID, teamID)
	if err != nil {
		return false, fmt.Errorf("resolve membership: %w", err)
	}
	if m == nil {
		return false, nil
	}
	return m.Role.Privileged(), nil
}
