package commands

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/order"
)

// CancelStaleOrdersCommandHandler sweeps Pending orders that outlived the
// configured TTL and cancels them through the regular transition path, so the
// state machine and optimistic versioning apply exactly as they do for any
// other status change.
//
// Example:
//
//	handler := NewCancelStaleOrdersCommandHandler(uowFactory)
//	cmd, _ := NewCancelStaleOrdersCommand(30 * time.Minute)
//
//	cancelled, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("stale order sweep failed: %w", err)
//	}
//	log.Printf("cancelled %d stale orders", cancelled)
type CancelStaleOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCancelStaleOrdersCommandHandler creates a handler for the stale order sweep.
// Requires an OrderUoWFactory for transactional persistence.
func NewCancelStaleOrdersCommandHandler(uowFactory OrderUoWFactory) CancelStaleOrdersCommandHandler {
	return CancelStaleOrdersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the sweep command.
// Retrieves all Pending orders, cancels the ones created before the TTL
// cutoff, and persists every cancellation within a single transaction.
// Returns the number of orders cancelled.
func (h *CancelStaleOrdersCommandHandler) Handle(
	ctx context.Context, cmd CancelStaleOrdersCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	pendingOrders, err := orderRepo.GetAllInStatus(ctx, order.Pending)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().UTC().Add(-cmd.TTL())

	cancelled := 0
	for _, aggregate := range pendingOrders {
		if !aggregate.CreatedAt().Before(cutoff) {
			continue
		}

		if err = aggregate.ChangeStatus(order.Cancelled); err != nil {
			return 0, err
		}

		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return 0, err
		}

		cancelled++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return cancelled, nil
}
