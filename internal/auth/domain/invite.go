package domain

import "time"

// Invite is a pending grant of permission bits tied to an email. It is
// consumed (deleted) exactly once, when the matching account signs up.
type Invite struct {
	Email       string
	Permissions []int // granted to the account created from this invite
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
