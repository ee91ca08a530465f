package commands

import (
	"errors"
	"math"
	"time"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	ErrCancelStaleOrdersCommandIsNotConstructed = errors.New(
		"CancelStaleOrdersCommand must be created via NewCancelStaleOrdersCommand constructor",
	)
)

// CancelStaleOrdersCommand triggers cancellation of Pending orders that were
// never confirmed within the configured time-to-live. This batch operation is
// run periodically by the scheduler.
//
// Example:
//
//	cmd, _ := NewCancelStaleOrdersCommand(30 * time.Minute)
//	handler := NewCancelStaleOrdersCommandHandler(uowFactory)
//
//	cancelled, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    log.Printf("stale order sweep failed: %v", err)
//	}
type CancelStaleOrdersCommand struct { //nolint:recvcheck //using for validation
	ttl time.Duration

	guard guard.ConstructorGuard
}

// NewCancelStaleOrdersCommand creates a command to cancel Pending orders older
// than ttl. Validates that ttl is positive.
func NewCancelStaleOrdersCommand(ttl time.Duration) (CancelStaleOrdersCommand, error) {
	sweepCommand := CancelStaleOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := sweepCommand.setTTL(ttl); err != nil {
		return CancelStaleOrdersCommand{}, err
	}

	return sweepCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCancelStaleOrdersCommandIsNotConstructed if validation fails.
func (c CancelStaleOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCancelStaleOrdersCommandIsNotConstructed)
}

// TTL returns how long a Pending order may live before the sweep cancels it.
func (c CancelStaleOrdersCommand) TTL() time.Duration {
	return c.ttl
}

func (c *CancelStaleOrdersCommand) setTTL(ttl time.Duration) error {
	if ttl <= 0 {
		return errs.NewValueIsOutOfRangeError("ttl", ttl, time.Nanosecond, time.Duration(math.MaxInt64))
	}

	c.ttl = ttl
	return nil
}
