package store

import (
	"context"
	"errors"

	"github.com/waypoint-labs/waypoint/internal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. Sub-repositories keep concerns tidy and testable.
type Store interface {
	Users() Users
	Destinations() Destinations

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, rolling back when fn
	// returns an error and committing otherwise. Multi-step mutations
	// (e.g. the registration uniqueness check plus insert) must go
	// through here so concurrent writers cannot interleave.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases underlying resources.
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

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail matches the stored email exactly (case-sensitive).
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// ListUsers returns all users ordered by creation.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// DeleteUser removes a user record.
	DeleteUser(ctx context.Context, id string) error
}

type Destinations interface {
	// GetDestinationByID returns a destination by id.
	GetDestinationByID(ctx context.Context, id string) (domain.Destination, error)

	// ListDestinations returns all destinations ordered by creation.
	ListDestinations(ctx context.Context) ([]domain.Destination, error)

	// CreateDestination inserts a new destination.
	CreateDestination(ctx context.Context, d domain.Destination) error

	// DeleteDestination removes a destination; ErrNotFound when absent.
	DeleteDestination(ctx context.Context, id string) error
}
