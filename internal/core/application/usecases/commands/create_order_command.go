package commands

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// LineItemRequest describes one requested order position: which product and
// how many units. The product is resolved against the catalog during handling;
// the request itself carries no price.
type LineItemRequest struct {
	ProductRef kernel.UUID
	Quantity   int
}

// CreateOrderCommand represents a request to create a new order for an owner.
// Encapsulates the requested line items plus the opaque shipping and payment
// references, which are stored as-is and validated by external collaborators.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(ownerID, []LineItemRequest{
//	    {ProductRef: mouseRef, Quantity: 2},
//	    {ProductRef: laptopRef, Quantity: 1},
//	}, "addr-42", "card-7")
//	if err != nil {
//	    return fmt.Errorf("invalid order request: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, catalog)
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	ownerID            kernel.UUID
	lineItems          []LineItemRequest
	shippingAddressRef string
	paymentMethodTag   string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates that the owner ID is valid, at least one line item is requested,
// every product reference is valid and every quantity is at least 1.
func NewCreateOrderCommand(
	ownerID kernel.UUID,
	lineItems []LineItemRequest,
	shippingAddressRef string,
	paymentMethodTag string,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		shippingAddressRef: shippingAddressRef,
		paymentMethodTag:   paymentMethodTag,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOwnerID(ownerID),
		orderCommand.setLineItems(lineItems),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OwnerID returns the identifier of the actor placing the order.
func (c CreateOrderCommand) OwnerID() kernel.UUID {
	return c.ownerID
}

// LineItems returns the requested order positions in display order.
func (c CreateOrderCommand) LineItems() []LineItemRequest {
	items := make([]LineItemRequest, len(c.lineItems))
	copy(items, c.lineItems)
	return items
}

// ShippingAddressRef returns the opaque shipping address reference.
func (c CreateOrderCommand) ShippingAddressRef() string {
	return c.shippingAddressRef
}

// PaymentMethodTag returns the opaque payment method reference.
func (c CreateOrderCommand) PaymentMethodTag() string {
	return c.paymentMethodTag
}

func (c *CreateOrderCommand) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}

	c.ownerID = ownerID
	return nil
}

func (c *CreateOrderCommand) setLineItems(lineItems []LineItemRequest) error {
	if len(lineItems) == 0 {
		return errs.NewValueIsRequiredError("lineItems")
	}

	for i, item := range lineItems {
		if err := item.ProductRef.Validate(); err != nil {
			return err
		}
		if item.Quantity < 1 {
			return errs.NewValueIsInvalidErrorWithCause(
				"quantity",
				fmt.Errorf("%d at position %d is not greater than 0", item.Quantity, i),
			)
		}
	}

	c.lineItems = make([]LineItemRequest, len(lineItems))
	copy(c.lineItems, lineItems)
	return nil
}
