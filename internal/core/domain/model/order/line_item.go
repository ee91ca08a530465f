package order

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

// ErrLineItemIsNotConstructed is returned when a LineItem instance was not
// created through NewLineItem or RestoreLineItem.
var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem or RestoreLineItem")

// ErrLineItemSubtotalMismatch is returned when a persisted subtotal does not
// equal unit price times quantity during reconstruction.
var ErrLineItemSubtotalMismatch = errors.New("line item subtotal does not equal unit price times quantity")

// LineItem is an entity within the Order aggregate representing one purchased
// product position. The product name and unit price are snapshots captured
// from the catalog at order-creation time and are never refreshed afterward,
// even if the catalog entry changes or disappears; the product reference may
// therefore become unresolvable later, which is acceptable.
//
// LineItem is immutable after the order is created: there is no operation to
// change quantity or price on an existing order.
type LineItem struct {
	// id is the unique identifier for the line item
	id kernel.UUID

	// productRef is the opaque reference to the catalog product
	productRef kernel.UUID

	// productName is the display name snapshot taken at creation
	productName string

	// unitPrice is the price snapshot taken at creation
	unitPrice kernel.Money

	// quantity is the number of units purchased (at least 1)
	quantity int

	// subtotal is unitPrice times quantity, computed once and stored
	subtotal kernel.Money

	guard guard.ConstructorGuard
}

// NewLineItem creates a line item from catalog snapshot data, computing the
// subtotal exactly as unit price times quantity.
//
// Validation rules:
//   - id and productRef must be valid UUIDs
//   - productName must not be empty
//   - unitPrice must be a constructed Money value
//   - quantity must be at least 1
func NewLineItem(
	id kernel.UUID,
	productRef kernel.UUID,
	productName string,
	unitPrice kernel.Money,
	quantity int,
) (LineItem, error) {
	item := LineItem{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setProductRef(productRef),
		item.setProductName(productName),
		item.setUnitPrice(unitPrice),
		item.setQuantity(quantity),
	); err != nil {
		return LineItem{}, err
	}

	item.subtotal = item.unitPrice.MulQuantity(item.quantity)
	return item, nil
}

// RestoreLineItem reconstructs a line item from persistence. Unlike
// NewLineItem it takes the stored subtotal and verifies it against the
// snapshots instead of recomputing silently, so storage-level drift is
// surfaced instead of papered over.
func RestoreLineItem(
	id kernel.UUID,
	productRef kernel.UUID,
	productName string,
	unitPrice kernel.Money,
	quantity int,
	subtotal kernel.Money,
) (LineItem, error) {
	item, err := NewLineItem(id, productRef, productName, unitPrice, quantity)
	if err != nil {
		return LineItem{}, err
	}

	if err := subtotal.Validate(); err != nil {
		return LineItem{}, err
	}
	if !item.subtotal.IsEqual(subtotal) {
		return LineItem{}, fmt.Errorf("%w: %s != %s x %d",
			ErrLineItemSubtotalMismatch, subtotal, unitPrice, quantity)
	}

	return item, nil
}

// ID returns the line item's unique identifier.
func (li LineItem) ID() kernel.UUID {
	return li.id
}

// ProductRef returns the opaque catalog product reference.
func (li LineItem) ProductRef() kernel.UUID {
	return li.productRef
}

// ProductName returns the product name snapshot taken at order creation.
func (li LineItem) ProductName() string {
	return li.productName
}

// UnitPrice returns the unit price snapshot taken at order creation.
func (li LineItem) UnitPrice() kernel.Money {
	return li.unitPrice
}

// Quantity returns the number of units purchased.
func (li LineItem) Quantity() int {
	return li.quantity
}

// Subtotal returns the stored subtotal (unit price times quantity).
func (li LineItem) Subtotal() kernel.Money {
	return li.subtotal
}

// Validate ensures the LineItem was created through a constructor.
func (li LineItem) Validate() error {
	return li.guard.Validate(ErrLineItemIsNotConstructed)
}

func (li *LineItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	li.id = id
	return nil
}

func (li *LineItem) setProductRef(productRef kernel.UUID) error {
	if err := productRef.Validate(); err != nil {
		return err
	}
	li.productRef = productRef
	return nil
}

func (li *LineItem) setProductName(productName string) error {
	if productName == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	li.productName = productName
	return nil
}

func (li *LineItem) setUnitPrice(unitPrice kernel.Money) error {
	if err := unitPrice.Validate(); err != nil {
		return err
	}
	li.unitPrice = unitPrice
	return nil
}

func (li *LineItem) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	li.quantity = quantity
	return nil
}
