package store

import (
	"context"
	"errors"

	"github.com/gatekeephq/gatekeep/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement
// this; the services only ever see the interface. Sub-repositories are
// exposed as methods to keep concerns tidy and testable.
type Store interface {
	Accounts() Accounts
	Invites() Invites
	Nodes() Nodes

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error
	// the transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// AccountUpdate describes a partial account update. Nil pointer fields
// are left untouched; for Permissions, nil means "leave untouched"
// while an empty non-nil slice clears every bit.
type AccountUpdate struct {
	PasswordHash *string
	Active       *bool
	Pending      *bool
	Permissions  []int
}

type Accounts interface {
	// GetByEmail returns the account for an identity.
	GetByEmail(ctx context.Context, email string) (domain.Account, error)

	// Create inserts a new account. A duplicate email yields
	// ErrAlreadyExists; the uniqueness constraint on the identity key
	// is what serializes concurrent signups for the same email.
	Create(ctx context.Context, a domain.Account) error

	// Update applies a partial field set. Returns ErrNotFound when no
	// account matches.
	Update(ctx context.Context, email string, upd AccountUpdate) error

	// UpdateMetadata replaces the opaque metadata blob.
	UpdateMetadata(ctx context.Context, email string, metadata string) error

	// Delete removes the account. Returns ErrNotFound when nothing was
	// deleted.
	Delete(ctx context.Context, email string) error

	// Count returns the total number of accounts.
	Count(ctx context.Context) (int64, error)

	// List returns all accounts ordered by email.
	List(ctx context.Context) ([]domain.Account, error)
}

type Invites interface {
	// GetByEmail returns the pending invite for an identity.
	GetByEmail(ctx context.Context, email string) (domain.Invite, error)

	// Upsert creates the invite or replaces the permission grant of an
	// existing one for the same email.
	Upsert(ctx context.Context, inv domain.Invite) error

	// UpdatePermissions replaces the permission grant of an existing
	// invite. Returns ErrNotFound when no invite matches.
	UpdatePermissions(ctx context.Context, email string, permissions []int) error

	// Delete removes the invite. Returns ErrNotFound when nothing was
	// deleted.
	Delete(ctx context.Context, email string) error

	// List returns all invites ordered by email.
	List(ctx context.Context) ([]domain.Invite, error)
}

type Nodes interface {
	// GetByID returns a node.
	GetByID(ctx context.Context, id string) (domain.Node, error)

	// Create inserts a new node; duplicate IDs yield ErrAlreadyExists.
	Create(ctx context.Context, n domain.Node) error

	// UpdateText replaces the node's default text. Returns ErrNotFound
	// when no node matches.
	UpdateText(ctx context.Context, id string, defaultText string) error

	// Delete removes the node. Returns ErrNotFound when nothing was
	// deleted.
	Delete(ctx context.Context, id string) error

	// List returns all nodes ordered by id.
	List(ctx context.Context) ([]domain.Node, error)
}
