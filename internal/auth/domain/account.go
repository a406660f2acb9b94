package domain

import (
	"slices"
	"time"
)

// Account is an identity keyed by email. Pending accounts came from an
// invite and have not finished provisioning; inactive accounts can
// never authenticate regardless of permissions.
type Account struct {
	Email        string
	PasswordHash string // argon2id PHC string, empty while pending
	Active       bool
	Pending      bool
	Permissions  []int
	Metadata     string // opaque blob owned by the account holder's client
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasAny reports whether the account satisfies a required permission
// set. An empty requirement means "authenticated is enough". An
// inactive account never satisfies anything; the active check is
// deliberately inseparable from permission evaluation.
func (a Account) HasAny(required []int) bool {
	if !a.Active {
		return false
	}
	if len(required) == 0 {
		return true
	}
	for _, code := range required {
		if slices.Contains(a.Permissions, code) {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the account holds either admin bit.
func (a Account) IsAdmin() bool {
	return a.HasAny(AdminPermissions)
}
