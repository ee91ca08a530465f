package queries

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/guard"
)

var (
	ErrGetOrderByNumberQueryIsNotConstructed = errors.New(
		"GetOrderByNumberQuery must be created via NewGetOrderByNumberQuery constructor",
	)
)

// GetOrderByNumberQuery retrieves a single order by its human-readable number.
// Access rules match GetOrderQuery: non-privileged callers may only read
// their own orders.
type GetOrderByNumberQuery struct { //nolint:recvcheck //using for validation
	number     order.Number
	callerID   kernel.UUID
	privileged bool

	guard guard.ConstructorGuard
}

// NewGetOrderByNumberQuery creates a query to retrieve one order by number.
// Validates that the number and caller ID were properly constructed.
func NewGetOrderByNumberQuery(
	number order.Number, callerID kernel.UUID, privileged bool,
) (GetOrderByNumberQuery, error) {
	query := GetOrderByNumberQuery{
		privileged: privileged,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setNumber(number),
		query.setCallerID(callerID),
	); err != nil {
		return GetOrderByNumberQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderByNumberQueryIsNotConstructed if validation fails.
func (q GetOrderByNumberQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderByNumberQueryIsNotConstructed)
}

// Number returns the order number to look up.
func (q GetOrderByNumberQuery) Number() order.Number {
	return q.number
}

// CallerID returns the identity of the actor making the request.
func (q GetOrderByNumberQuery) CallerID() kernel.UUID {
	return q.callerID
}

// Privileged reports whether the caller may read orders of other owners.
func (q GetOrderByNumberQuery) Privileged() bool {
	return q.privileged
}

func (q *GetOrderByNumberQuery) setNumber(number order.Number) error {
	if err := number.Validate(); err != nil {
		return err
	}

	q.number = number
	return nil
}

func (q *GetOrderByNumberQuery) setCallerID(callerID kernel.UUID) error {
	if err := callerID.Validate(); err != nil {
		return err
	}

	q.callerID = callerID
	return nil
}
