package store

import (
	"context"
	"errors"

	"elstore/internal/model"
)

var (
	ErrNotFound  = errors.New("order not found")
	ErrInvalidID = errors.New("invalid order id")
	ErrTerminal  = errors.New("order already in terminal status")
)

// OrderStore is the persistence capability the lifecycle engine depends on.
// Consumers define this interface, not the backing database.
type OrderStore interface {
	// Insert persists a new order and returns the assigned id.
	Insert(ctx context.Context, order *model.Order) (string, error)

	// FindByID returns the full, unredacted order.
	FindByID(ctx context.Context, id string) (*model.Order, error)

	// List returns up to limit orders, optionally filtered by exact email
	// match, in storage insertion order.
	List(ctx context.Context, email string, limit int) ([]model.Order, error)

	// UpdateStatus applies a conditional transition: the order is updated
	// only if its current status is not terminal. A non-empty note is set
	// alongside the status; updated_at is always refreshed. Returns the
	// updated order, ErrTerminal if the precondition failed, or ErrNotFound.
	UpdateStatus(ctx context.Context, id string, next model.Status, note string) (*model.Order, error)

	// Ping verifies the backing database is reachable.
	Ping(ctx context.Context) error
}
