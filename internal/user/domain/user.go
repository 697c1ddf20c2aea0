package domain

import "time"

// User is an account that books, hosts, or audits bookings.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}
