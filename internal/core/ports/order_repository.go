package ports

import (
	"context"
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// ErrOrderNumberTaken is returned by Add when the storage-level uniqueness
// constraint rejects the order number because a concurrent creator already
// reserved it. The caller should pick the next candidate and retry the whole
// write; the constraint, not the in-process sequence hint, is the sole
// arbiter of number uniqueness.
var ErrOrderNumberTaken = errors.New("order number is already taken")

// OrderRepository defines the persistence contract for order aggregates.
// Implementations must write the order and all of its line items atomically:
// either the full aggregate becomes durably visible or none of it does.
type OrderRepository interface {
	// Add persists a new order aggregate together with all its line items.
	// Returns ErrOrderNumberTaken when the unique constraint on the order
	// number rejects the insert; nothing is persisted in that case.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists a status change of an existing order, guarded by the
	// aggregate's optimistic version. Returns a ConcurrentModificationError
	// when the stored version no longer matches, meaning another caller
	// mutated the order since it was read. Line items are never updated.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier,
	// including all line items in display order.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order aggregate by its human-readable number.
	GetByNumber(ctx context.Context, number order.Number) (*order.Order, error)

	// GetAllForOwner retrieves all orders placed by the given owner,
	// newest first.
	GetAllForOwner(ctx context.Context, ownerID kernel.UUID) ([]*order.Order, error)

	// GetAllInStatus retrieves all orders currently in the given status.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)

	// CountForDate returns the number of orders created on the given
	// calendar day (UTC). The result seeds the order number sequence and is
	// a hint only: it may be stale by the time of insertion.
	CountForDate(ctx context.Context, date time.Time) (int64, error)
}
