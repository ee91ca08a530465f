package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/guard"
)

var (
	ErrSetStatusCommandIsNotConstructed = errors.New(
		"SetStatusCommand must be created via NewSetStatusCommand constructor",
	)
)

// SetStatusCommand represents a privileged request to move an order to a
// target status. Callers are expected to be authorized before the command is
// issued; the command itself only captures which order and which status.
//
// Example:
//
//	cmd, err := NewSetStatusCommand(orderID, order.Confirmed)
//	if err != nil {
//	    return fmt.Errorf("invalid status request: %w", err)
//	}
//
//	handler := NewSetStatusCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("status change failed: %w", err)
//	}
type SetStatusCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	targetStatus order.Status

	guard guard.ConstructorGuard
}

// NewSetStatusCommand creates a command to move an order to targetStatus.
// Validates that the order ID and the target status are both valid; whether
// the transition itself is legal is decided by the aggregate during handling.
func NewSetStatusCommand(orderID kernel.UUID, targetStatus order.Status) (SetStatusCommand, error) {
	statusCommand := SetStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		statusCommand.setOrderID(orderID),
		statusCommand.setTargetStatus(targetStatus),
	); err != nil {
		return SetStatusCommand{}, err
	}

	return statusCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSetStatusCommandIsNotConstructed if validation fails.
func (c SetStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c SetStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TargetStatus returns the status the order should be moved to.
func (c SetStatusCommand) TargetStatus() order.Status {
	return c.targetStatus
}

func (c *SetStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SetStatusCommand) setTargetStatus(targetStatus order.Status) error {
	if err := targetStatus.Validate(); err != nil {
		return err
	}

	c.targetStatus = targetStatus
	return nil
}
