package domain

import "time"

// User is an account that can log in to the scheduler.
// Accounts are created at registration and never updated or deleted.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
