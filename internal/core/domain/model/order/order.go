package order

import (
	"errors"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrTotalAmountMismatch is returned when a persisted total does not equal
	// the exact sum of the line item subtotals during reconstruction.
	ErrTotalAmountMismatch = errors.New("total amount does not equal the sum of line item subtotals")
)

// Order represents a customer order in the system. It is the aggregate root that
// manages the order lifecycle from creation through fulfillment or cancellation.
//
// Order follows these invariants:
//   - Must have a valid unique identifier, owner and order number
//   - Must have at least one line item; every quantity is at least 1
//   - The total amount always equals the exact decimal sum of line item subtotals
//   - The owner and the order number never change after creation
//   - Line items are immutable after creation
//   - Status transitions follow the adjacency table in Status
//
// The Order struct uses private fields to ensure encapsulation: internal state
// can only change through ChangeStatus and CancelByOwner, so an invalid partial
// state is never observable from outside the aggregate boundary.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// number is the human-readable order number, unique across all orders ever created
	number Number

	// ownerID identifies the actor who placed the order
	ownerID kernel.UUID

	// status represents the current state in the order lifecycle
	status Status

	// lineItems holds the purchased positions in display order
	lineItems []LineItem

	// totalAmount is the exact sum of all line item subtotals
	totalAmount kernel.Money

	// shippingAddressRef is an opaque reference validated by an external collaborator
	shippingAddressRef string

	// paymentMethodTag is an opaque reference validated by an external collaborator
	paymentMethodTag string

	// createdAt is the creation timestamp, immutable
	createdAt time.Time

	// updatedAt is bumped on every successful mutation
	updatedAt time.Time

	// version supports optimistic concurrency control in the repository
	version int

	// isConstructed ensures the order was created via a factory method
	isConstructed bool
}

// NewOrder creates a new Order aggregate with validation. This is the only way
// (besides RestoreOrder for persistence) to obtain a valid Order.
//
// The order starts in Pending status with version 1; createdAt and updatedAt
// are stamped with the current UTC time. The total amount is computed here as
// the exact decimal sum of the line item subtotals and stored on the aggregate.
//
// Parameters:
//   - id: unique identifier for the order
//   - ownerID: identifier of the placing actor
//   - number: order number candidate obtained from the per-day sequence
//   - lineItems: non-empty slice of snapshot line items, in display order
//   - shippingAddressRef, paymentMethodTag: opaque references, stored as-is
//
// Returns a validation error if the id, owner, number or any line item is
// invalid, or if lineItems is empty.
func NewOrder(
	id kernel.UUID,
	ownerID kernel.UUID,
	number Number,
	lineItems []LineItem,
	shippingAddressRef string,
	paymentMethodTag string,
) (*Order, error) {
	now := time.Now().UTC()

	order := &Order{
		status:             Pending,
		shippingAddressRef: shippingAddressRef,
		paymentMethodTag:   paymentMethodTag,
		createdAt:          now,
		updatedAt:          now,
		version:            1,
		isConstructed:      true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setOwnerID(ownerID),
		order.setNumber(number),
		order.setLineItems(lineItems),
	); err != nil {
		return nil, err
	}

	order.totalAmount = sumSubtotals(order.lineItems)
	return order, nil
}

// RestoreOrder reconstructs an Order aggregate from persistence.
//
// Unlike NewOrder it takes the stored status, total, timestamps and version,
// and verifies the stored total against the exact sum of the line item
// subtotals so that storage-level drift is surfaced rather than silently
// recomputed away.
func RestoreOrder(
	id kernel.UUID,
	ownerID kernel.UUID,
	number Number,
	status Status,
	lineItems []LineItem,
	totalAmount kernel.Money,
	shippingAddressRef string,
	paymentMethodTag string,
	createdAt time.Time,
	updatedAt time.Time,
	version int,
) (*Order, error) {
	order := &Order{
		shippingAddressRef: shippingAddressRef,
		paymentMethodTag:   paymentMethodTag,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
		isConstructed:      true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setOwnerID(ownerID),
		order.setNumber(number),
		order.setStatus(status),
		order.setLineItems(lineItems),
		order.setVersion(version),
	); err != nil {
		return nil, err
	}

	if err := totalAmount.Validate(); err != nil {
		return nil, err
	}
	if sum := sumSubtotals(order.lineItems); !sum.IsEqual(totalAmount) {
		return nil, fmt.Errorf("%w: stored %s, computed %s",
			ErrTotalAmountMismatch, totalAmount, sum)
	}
	order.totalAmount = totalAmount

	return order, nil
}

// Validate ensures the Order instance was properly constructed through a factory.
// This prevents bypassing validation by directly instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the order's human-readable number.
func (o *Order) Number() Number {
	return o.number
}

// OwnerID returns the identifier of the actor who placed the order.
func (o *Order) OwnerID() kernel.UUID {
	return o.ownerID
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// LineItems returns the order's line items in display order.
// The returned slice is a copy; mutating it does not affect the aggregate.
func (o *Order) LineItems() []LineItem {
	items := make([]LineItem, len(o.lineItems))
	copy(items, o.lineItems)
	return items
}

// TotalAmount returns the exact sum of all line item subtotals.
func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

// ShippingAddressRef returns the opaque shipping address reference.
func (o *Order) ShippingAddressRef() string {
	return o.shippingAddressRef
}

// PaymentMethodTag returns the opaque payment method reference.
func (o *Order) PaymentMethodTag() string {
	return o.paymentMethodTag
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the timestamp of the last successful mutation.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Version returns the optimistic-concurrency version of the aggregate as read
// from storage. The repository increments it on every successful update.
func (o *Order) Version() int {
	return o.version
}

// ChangeStatus applies the privileged, table-driven status transition.
//
// Business rules:
//   - A request for the current status succeeds as an idempotent no-op
//   - Any other target must be an edge of the transition table
//   - On success updatedAt is bumped; line items and total are never touched
//
// Returns an *InvalidTransitionError naming the current and requested status
// when the transition is not allowed; the aggregate is left unchanged.
//
// Ownership is deliberately not checked here: this operation is assumed to be
// restricted to privileged callers upstream. Owner-initiated cancellation goes
// through CancelByOwner instead.
func (o *Order) ChangeStatus(target Status) error {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// CancelByOwner cancels the order on behalf of its owner.
//
// This is the narrow, owner-restricted counterpart of ChangeStatus:
//   - The caller must be the order's owner, otherwise AccessForbiddenError
//   - The order must currently be Pending or Confirmed, otherwise
//     InvalidTransitionError; in particular an order already in Processing
//     can no longer be cancelled by its owner
//
// On success the order is Cancelled and updatedAt is bumped.
func (o *Order) CancelByOwner(callerID kernel.UUID) error {
	if err := callerID.Validate(); err != nil {
		return err
	}
	if !callerID.IsEqual(o.ownerID) {
		return errs.NewAccessForbiddenError("order", callerID.String())
	}

	if o.status != Pending && o.status != Confirmed {
		return NewInvalidTransitionError(o.status, Cancelled)
	}

	o.status = Cancelled
	o.touch()
	return nil
}

// touch bumps updatedAt to the current UTC time.
func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

// sumSubtotals returns the exact decimal sum of the given items' subtotals.
func sumSubtotals(items []LineItem) kernel.Money {
	total := kernel.ZeroMoney()
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setOwnerID validates and sets the placing actor's identifier.
// This is a private method used only during construction.
func (o *Order) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	o.ownerID = ownerID
	return nil
}

// setNumber validates and sets the order number.
// This is a private method used only during construction.
func (o *Order) setNumber(number Number) error {
	if err := number.Validate(); err != nil {
		return err
	}
	o.number = number
	return nil
}

// setStatus validates and sets the status during reconstruction.
func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

// setLineItems validates and copies the line items.
// The aggregate must contain at least one item and every item must have been
// created through a line item constructor.
func (o *Order) setLineItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("lineItems")
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.lineItems = make([]LineItem, len(items))
	copy(o.lineItems, items)
	return nil
}

// setVersion validates and sets the optimistic-concurrency version.
func (o *Order) setVersion(version int) error {
	if version < 1 {
		return errs.NewValueIsInvalidErrorWithCause(
			"version",
			fmt.Errorf("%d is not greater than 0", version),
		)
	}
	o.version = version
	return nil
}
