package access

import (
	"context"
	"errors"
	"fmt"
	"testing"

	bookingdomain "booking-audit/backend/internal/booking/domain"
	membershipdomain "booking-audit/backend/internal/membership/domain"
)

// fakeBookings implements BookingResolver for tests.
type fakeBookings struct {
	bookings map[string]*bookingdomain.Booking
	err      error
}

func (f *fakeBookings) GetByUIDWithEventType(ctx context.Context, uid string) (*bookingdomain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.bookings[uid], nil
}

// fakeMemberships implements MembershipResolver for tests. Roles are keyed by
// "userID:teamID"; a missing key means no membership.
type fakeMemberships struct {
	roles map[string]membershipdomain.Role
	err   error
}

func membershipKey(userID, teamID int64) string {
	return fmt.Sprintf("%d:%d", userID, teamID)
}

func (f *fakeMemberships) GetByUserAndTeam(ctx context.Context, userID, teamID int64) (*membershipdomain.Membership, error) {
	if f.err != nil {
		return nil, f.err
	}
	role, ok := f.roles[membershipKey(userID, teamID)]
	if !ok {
		return nil, nil
	}
	return &membershipdomain.Membership{UserID: userID, TeamID: teamID, Role: role}, nil
}

func (f *fakeMemberships) HasMembership(ctx context.Context, userID, teamID int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.roles[membershipKey(userID, teamID)]
	return ok, nil
}

func i64(v int64) *int64 { return &v }

func teamBooking(uid string, ownerID *int64, teamID int64) *bookingdomain.Booking {
	return &bookingdomain.Booking{
		UID:       uid,
		OwnerID:   ownerID,
		EventType: &bookingdomain.EventType{ID: 1, TeamID: i64(teamID)},
	}
}

func personalBooking(uid string, ownerID *int64) *bookingdomain.Booking {
	return &bookingdomain.Booking{
		UID:       uid,
		OwnerID:   ownerID,
		EventType: &bookingdomain.EventType{ID: 1},
	}
}

func wantDenied(t *testing.T, err error, reason Reason) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected denial %s, got allow", reason)
	}
	got, ok := Denied(err)
	if !ok {
		t.Fatalf("expected policy denial, got %v", err)
	}
	if got != reason {
		t.Errorf("denial reason = %s, want %s", got, reason)
	}
}

func TestCheck_MissingOrganizationID(t *testing.T) {
	// Org scope gate fires before any lookup runs.
	c := NewChecker(
		&fakeBookings{err: errors.New("must not be called")},
		&fakeMemberships{err: errors.New("must not be called")},
	)

	err := c.Check(context.Background(), "abc123", 42, nil)
	wantDenied(t, err, ReasonOrganizationIDRequired)
}

func TestCheck_BookingNotFound(t *testing.T) {
	c := NewChecker(
		&fakeBookings{bookings: map[string]*bookingdomain.Booking{}},
		&fakeMemberships{roles: map[string]membershipdomain.Role{
			"42:7": membershipdomain.RoleOwner,
		}},
	)

	err := c.Check(context.Background(), "missing", 42, i64(7))
	wantDenied(t, err, ReasonBookingNotFoundOrPermissionDenied)
}

func TestCheck_TeamAdminAllowed(t *testing.T) {
	c := NewChecker(
		&fakeBookings{bookings: map[string]*bookingdomain.Booking{
			"b1": teamBooking("b1", i64(42), 5),
		}},
		&fakeMemberships{roles: map[string]membershipdomain.Role{
			"10:5": membershipdomain.RoleAdmin,
		}},
	)

	if err := c.Check(context.Background(), "b1", 10, i64(7)); err != nil {
		t.Fatalf("Check: %v", err)
	}
}

func TestCheck_TeamOwnerAllowed_OwnerNotInOrg(t *testing.T) {
	// Team-admin access is sufficient on its own: it must bypass the
	// owner-in-organization check entirely.
	c := NewChecker(
		&fakeBookings{bookings: map[string]*bookingdomain.Booking{
			"b1": teamBooking("b1", i64(42), 5),
		}},
		&fakeMemberships{roles: map[string]membershipdomain.Role{
			"10:5": membershipdomain.RoleOwner,
			// owner 42 has no membership anywhere
		}},
	)

	if err := c.Check(context.Background(), "b1", 10, i64(7)); err != nil {
		t.Fatalf("Check: %v", err)
	}
}

func TestCheck_ParentTeamInherited(t *testing.T) {
	booking := &bookingdomain.Booking{
		UID:     "b1",
		OwnerID: i64(42),
		EventType: &bookingdomain.EventType{
			ID:     2,
			Parent: &bookingdomain.ParentEventType{ID: 1, TeamID: i64(5)},
		},
	}
	c := NewChecker(
		&fakeBookings{bookings: map[string]*bookingdomain.Booking{"b1": booking}},
		&fakeMemberships{roles: map[string]membershipdomain.Role{
			"10:5": membershipdomain.RoleAdmin,
		}},
	)

	if err := c.Check(context.Background(), "b1", 10, i64(7)); err != nil {
		t.Fatalf("Check: %v", err)
	}
}

func TestCheck_TeamMemberFallsThroughToOrgAdmin(t *testing.T) {
	// MEMBER in the owning team does not grant, but OWNER/ADMIN in the org
	// still does once the owner belongs to the org.
	c := NewChecker(
		&fakeBookings{bookings: map[string]*bookingdomain.Booking{
			"b1": teamBooking("b1", i64(42), 5),
		}},
		&fakeMemberships{roles: map[string]membershipdomain.Role{
			"10:5": membershipdomain.RoleMember,
			"10:7": membershipdomain.RoleAdmin,
			"42:7": membershipdomain.RoleMember,
		}},
	)

	if err := c.Check(context.Background(), "b1", 10, i64(7)); err != nil {
		t.Fatalf("Check: %v", err)
	}
}

func TestCheck_BookingHasNoOwner(t *testing.T) {
	c := NewChecker(
		&fakeBookings{bookings: map[string]*bookingdomain.Booking{
			"b1": personalBooking("b1", nil),
		}},
		&fakeMemberships{roles: map[string]membershipdomain.Role{
			"10:7": membershipdomain.RoleOwner,
		}},
	)

	err := c.Check(context.Background(), "b1", 10, i64(7))
	wantDenied(t, err, ReasonBookingHasNoOwner)
}

func TestCheck_OwnerNotInOrganization(t *testing.T) {
	// Even an org OWNER cannot audit a booking whose owner is outside the org.
	c := NewChecker(
		&fakeBookings{bookings: map[string]*bookingdomain.Booking{
			"b1": personalBooking("b1", i64(42)),
		}},
		&fakeMemberships{roles: map[string]membershipdomain.Role{
			"10:7": membershipdomain.RoleOwner,
		}},
	)

	err := c.Check(context.Background(), "b1", 10, i64(7))
	wantDenied(t, err, ReasonOwnerNotInOrganization)
}

func TestCheck_OrgMemberDenied(t *testing.T) {
	c := NewChecker(
		&fakeBookings{bookings: map[string]*bookingdomain.Booking{
			"b1": personalBooking("b1", i64(42)),
		}},
		&fakeMemberships{roles: map[string]membershipdomain.Role{
			"42:7": membershipdomain.RoleMember,
			"10:7": membershipdomain.RoleMember,
		}},
	)

	err := c.Check(context.Background(), "b1", 10, i64(7))
	wantDenied(t, err, ReasonPermissionDenied)
}

func TestCheck_OrgNonMemberDenied(t *testing.T) {
	c := NewChecker(
		&fakeBookings{bookings: map[string]*bookingdomain.Booking{
			"b1": personalBooking("b1", i64(42)),
		}},
		&fakeMemberships{roles: map[string]membershipdomain.Role{
			"42:7": membershipdomain.RoleMember,
		}},
	)

	err := c.Check(context.Background(), "b1", 99, i64(7))
	wantDenied(t, err, ReasonPermissionDenied)
}

func TestCheck_PersonalBookingOrgAdminAllowed(t *testing.T) {
	// Booking "abc123" has no event type team, owner 42; org 7; user 42 is a
	// member of org 7; acting user 99 is ADMIN in org 7.
	c := NewChecker(
		&fakeBookings{bookings: map[string]*bookingdomain.Booking{
			"abc123": personalBooking("abc123", i64(42)),
		}},
		&fakeMemberships{roles: map[string]membershipdomain.Role{
			"42:7": membershipdomain.RoleMember,
			"99:7": membershipdomain.RoleAdmin,
		}},
	)

	if err := c.Check(context.Background(), "abc123", 99, i64(7)); err != nil {
		t.Fatalf("Check: %v", err)
	}
}

func TestCheck_TeamMemberFallsToOwnerCheckFirst(t *testing.T) {
	// Booking "xyz" owned by team 5; acting user 10 is only MEMBER there and
	// has no role in org 3; owner 42 is not a member of org 3. The personal
	// path runs and the owner-membership gate fires before the org role check.
	c := NewChecker(
		&fakeBookings{bookings: map[string]*bookingdomain.Booking{
			"xyz": teamBooking("xyz", i64(42), 5),
		}},
		&fakeMemberships{roles: map[string]membershipdomain.Role{
			"10:5": membershipdomain.RoleMember,
		}},
	)

	err := c.Check(context.Background(), "xyz", 10, i64(3))
	wantDenied(t, err, ReasonOwnerNotInOrganization)
}

func TestCheck_Idempotent(t *testing.T) {
	c := NewChecker(
		&fakeBookings{bookings: map[string]*bookingdomain.Booking{
			"b1": personalBooking("b1", i64(42)),
		}},
		&fakeMemberships{roles: map[string]membershipdomain.Role{
			"42:7": membershipdomain.RoleMember,
			"10:7": membershipdomain.RoleMember,
		}},
	)

	first := c.Check(context.Background(), "b1", 10, i64(7))
	second := c.Check(context.Background(), "b1", 10, i64(7))

	r1, ok1 := Denied(first)
	r2, ok2 := Denied(second)
	if !ok1 || !ok2 || r1 != r2 {
		t.Errorf("results differ across identical calls: %v vs %v", first, second)
	}
}

func TestCheck_BookingLookupFailure(t *testing.T) {
	backendErr := errors.New("database unreachable")
	c := NewChecker(
		&fakeBookings{err: backendErr},
		&fakeMemberships{roles: map[string]membershipdomain.Role{}},
	)

	err := c.Check(context.Background(), "b1", 10, i64(7))
	if err == nil {
		t.Fatal("expected error for backend failure")
	}
	if _, ok := Denied(err); ok {
		t.Error("backend failure must not be reported as a policy denial")
	}
	if !errors.Is(err, backendErr) {
		t.Errorf("error = %v, want wrapped %v", err, backendErr)
	}
}

func TestCheck_MembershipLookupFailure(t *testing.T) {
	backendErr := errors.New("database unreachable")
	c := NewChecker(
		&fakeBookings{bookings: map[string]*bookingdomain.Booking{
			"b1": teamBooking("b1", i64(42), 5),
		}},
		&fakeMemberships{err: backendErr},
	)

	err := c.Check(context.Background(), "b1", 10, i64(7))
	if err == nil {
		t.Fatal("expected error for backend failure")
	}
	if _, ok := Denied(err); ok {
		t.Error("backend failure must not be reported as a policy denial")
	}
	if !errors.Is(err, backendErr) {
		t.Errorf("error = %v, want wrapped %v", err, backendErr)
	}
}
