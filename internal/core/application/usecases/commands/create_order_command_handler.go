package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// maxNumberAttempts bounds the retry loop around order number collisions.
// Each attempt re-runs in a fresh transaction, so under sustained contention
// the budget is consumed quickly and the caller gets
// ErrNumberGenerationExhausted instead of an unbounded loop.
const maxNumberAttempts = 10

// ErrNumberGenerationExhausted is returned when every attempted order number
// collided with a concurrent creator within the retry budget.
var ErrNumberGenerationExhausted = errors.New(
	"order number generation exhausted retry attempts",
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Resolves every requested product against the catalog, snapshots name and
// unit price into line items, and persists the new order under a generated
// day-scoped order number.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, catalog)
//	cmd, _ := NewCreateOrderCommand(ownerID, items, "addr-42", "card-7")
//
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// created.Number() is unique and created.Status() is Pending
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    ports.ProductCatalog
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence and a
// ProductCatalog for resolving product references.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	catalog ports.ProductCatalog,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
	}
}

// Handle processes the order creation command.
// Snapshots catalog data into line items, then attempts to persist the order
// under successive candidate numbers. The storage unique constraint is the
// sole arbiter of number uniqueness: on a collision the next candidate is
// tried in a fresh transaction, up to maxNumberAttempts.
// Returns the created order on success.
func (h *CreateOrderCommandHandler) Handle(
	ctx context.Context, cmd CreateOrderCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	lineItems, err := h.snapshotLineItems(ctx, cmd.LineItems())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	var candidate int64
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		created, err := h.tryCreate(ctx, cmd, lineItems, now, &candidate)
		if err != nil {
			if errors.Is(err, ports.ErrOrderNumberTaken) {
				continue
			}
			return nil, err
		}
		return created, nil
	}

	return nil, fmt.Errorf("%w after %d attempts", ErrNumberGenerationExhausted, maxNumberAttempts)
}

// tryCreate runs a single creation attempt in its own transaction.
// The candidate sequence is seeded from the day's order count on the first
// attempt and incremented on every collision, so a stale count converges on a
// free number instead of retrying the same one.
func (h *CreateOrderCommandHandler) tryCreate(
	ctx context.Context,
	cmd CreateOrderCommand,
	lineItems []order.LineItem,
	now time.Time,
	candidate *int64,
) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	if *candidate == 0 {
		count, err := orderRepo.CountForDate(ctx, now)
		if err != nil {
			return nil, err
		}
		*candidate = count + 1
	} else {
		*candidate++
	}

	number, err := order.NewNumber(now, *candidate)
	if err != nil {
		return nil, err
	}

	aggregate, err := order.NewOrder(
		kernel.NewUUID(),
		cmd.OwnerID(),
		number,
		lineItems,
		cmd.ShippingAddressRef(),
		cmd.PaymentMethodTag(),
	)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}

// snapshotLineItems resolves every requested product against the catalog and
// materializes line items that carry the name and unit price as of now.
func (h *CreateOrderCommandHandler) snapshotLineItems(
	ctx context.Context, requests []LineItemRequest,
) ([]order.LineItem, error) {
	lineItems := make([]order.LineItem, 0, len(requests))
	for _, request := range requests {
		product, err := h.catalog.Resolve(ctx, request.ProductRef)
		if err != nil {
			return nil, err
		}

		lineItem, err := order.NewLineItem(
			kernel.NewUUID(),
			request.ProductRef,
			product.Name,
			product.UnitPrice,
			request.Quantity,
		)
		if err != nil {
			return nil, err
		}

		lineItems = append(lineItems, lineItem)
	}

	return lineItems, nil
}
