package access

import "errors"

// Reason is a policy denial code. The set is closed: callers switch over these
// and must handle every one. Reasons deliberately carry no detail beyond the
// code so hierarchy information is not leaked to the caller.
type Reason string

const (
	// ReasonOrganizationIDRequired: audit access is always scoped to an
	// organization; there is no global audit view.
	ReasonOrganizationIDRequired Reason = "ORGANIZATION_ID_REQUIRED"
	// ReasonBookingNotFoundOrPermissionDenied conflates "no such booking" with
	// "booking exists but is inaccessible" so callers cannot enumerate uids.
	ReasonBookingNotFoundOrPermissionDenied Reason = "BOOKING_NOT_FOUND_OR_PERMISSION_DENIED"
	// ReasonBookingHasNoOwner: the personal-booking path hit an owner-less
	// record. Reported as a denial, not a system fault.
	ReasonBookingHasNoOwner Reason = "BOOKING_HAS_NO_OWNER"
	// ReasonOwnerNotInOrganization: the booking owner does not belong to the
	// organization the request claims scope over.
	ReasonOwnerNotInOrganization Reason = "OWNER_NOT_IN_ORGANIZATION"
	// ReasonPermissionDenied: the acting user lacks a privileged role
	// everywhere checked.
	ReasonPermissionDenied Reason = "PERMISSION_DENIED"
)

// DeniedError is a policy denial: a deterministic, data-driven refusal.
// Infrastructure failures (lookup backend unreachable, malformed data) are
// never DeniedError values; they surface as ordinary wrapped errors so callers
// can distinguish "access correctly denied" from "could not determine access".
type DeniedError struct {
	Reason Reason
}

func (e *DeniedError) Error() string {
	return "audit access denied: " + string(e.Reason)
}

func deny(reason Reason) error {
	return &DeniedError{Reason: reason}
}

// Denied returns the denial reason and true when err is a policy denial.
func Denied(err error) (Reason, bool) {
	var d *DeniedError
	if errors.As(err, &d) {
		return d.Reason, true
	}
	return "", false
}
