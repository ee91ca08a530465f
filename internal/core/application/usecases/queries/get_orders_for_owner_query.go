package queries

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	ErrGetOrdersForOwnerQueryIsNotConstructed = errors.New(
		"GetOrdersForOwnerQuery must be created via NewGetOrdersForOwnerQuery constructor",
	)
)

// GetOrdersForOwnerQuery retrieves all orders placed by one owner, newest
// first. Non-privileged callers may only list their own orders, so the
// constructor rejects a mismatched caller outright.
//
// Example:
//
//	query, _ := NewGetOrdersForOwnerQuery(ownerID, ownerID, false)
//	handler := NewGetOrdersForOwnerQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list orders: %w", err)
//	}
type GetOrdersForOwnerQuery struct { //nolint:recvcheck //using for validation
	ownerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrdersForOwnerQuery creates a query to list one owner's orders.
// Returns an AccessForbiddenError when a non-privileged caller asks for a
// different owner's orders.
func NewGetOrdersForOwnerQuery(
	ownerID, callerID kernel.UUID, privileged bool,
) (GetOrdersForOwnerQuery, error) {
	query := GetOrdersForOwnerQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		ownerID.Validate(),
		callerID.Validate(),
	); err != nil {
		return GetOrdersForOwnerQuery{}, err
	}

	if !privileged && !callerID.IsEqual(ownerID) {
		return GetOrdersForOwnerQuery{}, errs.NewAccessForbiddenError("orders", callerID.String())
	}

	query.ownerID = ownerID
	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrdersForOwnerQueryIsNotConstructed if validation fails.
func (q GetOrdersForOwnerQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersForOwnerQueryIsNotConstructed)
}

// OwnerID returns the owner whose orders are being listed.
func (q GetOrdersForOwnerQuery) OwnerID() kernel.UUID {
	return q.ownerID
}
