package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
)

// ProductInfo is the catalog's answer to a product resolution: the current
// display name and unit price. The order aggregate snapshots both at creation
// time and never consults the catalog again for that order.
type ProductInfo struct {
	Name      string
	UnitPrice kernel.Money
}

// ProductCatalog resolves opaque product references against the catalog.
// The catalog is an external collaborator of the ordering core: resolution is
// a synchronous precondition of order creation, and retry or backoff policy
// for it belongs to the caller, not to this core.
type ProductCatalog interface {
	// Resolve returns the current name and unit price for a product.
	// Returns an ObjectNotFoundError when no such product exists.
	Resolve(ctx context.Context, productRef kernel.UUID) (ProductInfo, error)
}
