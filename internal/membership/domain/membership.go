package domain

import (
	"time"
)

// Membership links a user to a team (or organization — organizations are teams
// flagged is_organization, so both share one id space) with a role.
// Absence of a membership means "not a member at all", never an implicit
// MEMBER role.
type Membership struct {
	ID        int64
	UserID    int64
	TeamID    int64
	Role      Role
	CreatedAt time.Time
}

type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

// Privileged reports whether the role grants administrative access to audit
// data. Single privilege definition shared by the team-path and org-path
// checks so the two call sites cannot drift.
func (r Role) Privileged() bool {
	return r == RoleOwner || r == RoleAdmin
}
