package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

// SetStatusCommandHandler handles privileged order status transitions.
// Loads the order, asks the aggregate to perform the transition against its
// state machine, and persists the result under optimistic versioning.
//
// Example:
//
//	handler := NewSetStatusCommandHandler(uowFactory)
//	cmd, _ := NewSetStatusCommand(orderID, order.Shipped)
//
//	updated, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("status change failed: %w", err)
//	}
type SetStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewSetStatusCommandHandler creates a handler for status transition operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewSetStatusCommandHandler(uowFactory OrderUoWFactory) SetStatusCommandHandler {
	return SetStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status transition command and returns the updated
// aggregate so callers observe the post-transition state without re-querying.
// The aggregate rejects illegal transitions with an InvalidTransitionError
// and treats a same-status request as a no-op; both cases reach the caller
// unchanged. A version conflict on persist surfaces as a
// ConcurrentModificationError.
func (h *SetStatusCommandHandler) Handle(ctx context.Context, cmd SetStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.ChangeStatus(cmd.TargetStatus()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
