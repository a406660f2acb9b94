package domain

import "time"

// Node is a dashboard entry managed through the node permission bits.
type Node struct {
	ID          string
	DefaultText string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
