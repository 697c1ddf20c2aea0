package domain

import "time"

// Booking is a read-only snapshot of a booking as fetched for an access check.
// OwnerID is nil when the booking has no owning user; EventType is nil when the
// booking was created without an event type.
type Booking struct {
	UID       string
	OwnerID   *int64
	EventType *EventType
	CreatedAt time.Time
}

// EventType carries team ownership for a booking. TeamID is nil for personal
// event types. Parent is the managed event type this one was derived from, if
// any; inheritance is exactly one level deep.
type EventType struct {
	ID     int64
	TeamID *int64
	Parent *ParentEventType
}

// ParentEventType is the one-level parent of a managed event type.
type ParentEventType struct {
	ID     int64
	TeamID *int64
}

// EffectiveTeamID returns the team id governing this booking: the event type's
// own team id, falling back to its parent's. Nil means a personal booking.
func (b *Booking) EffectiveTeamID() *int64 {
	if b == nil || b.EventType == nil {
		return nil
	}
	if b.EventType.TeamID != nil {
		return b.EventType.TeamID
	}
	if b.EventType.Parent != nil {
		return b.EventType.Parent.TeamID
	}
	return nil
}
