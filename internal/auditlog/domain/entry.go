package domain

import "time"

// Entry is one audit-log record for a booking: who did what, from where.
// Entries are written by the surrounding system when a booking is mutated;
// this service guards read access to them.
type Entry struct {
	ID          string
	BookingUID  string
	ActorUserID int64
	Action      string
	Resource    string
	IP          string
	Metadata    string
	CreatedAt   time.Time
}
