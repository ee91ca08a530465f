// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The order number carries a unique constraint: the database, not application
// code, is the final arbiter of number uniqueness under concurrent creation.
// Timestamps are owned by the domain model, so GORM's automatic time tracking
// is disabled.
type OrderDTO struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Number             string          `gorm:"type:varchar(32);uniqueIndex:idx_orders_number"`
	OwnerID            uuid.UUID       `gorm:"type:uuid;index:idx_orders_owner_created,priority:1"`
	Status             int             `gorm:"index"`
	TotalAmount        decimal.Decimal `gorm:"type:numeric(12,2)"`
	ShippingAddressRef string
	PaymentMethodTag   string
	CreatedAt          time.Time `gorm:"autoCreateTime:false;index:idx_orders_owner_created,priority:2"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime:false"`
	Version            int
	Items              []LineItemDTO `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO represents one persisted order position. Position preserves the
// display order of items within their order; unit price and subtotal are the
// values snapshotted at order creation.
type LineItemDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	Position    int
	ProductRef  uuid.UUID `gorm:"type:uuid"`
	ProductName string
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2)"`
	Quantity    int
	Subtotal    decimal.Decimal `gorm:"type:numeric(12,2)"`
}

// TableName specifies the database table name for line item entities.
func (LineItemDTO) TableName() string {
	return "order_line_items"
}

// fromDomain converts an order domain aggregate to its database representation,
// including all line items with their display positions.
func fromDomain(aggregate *order.Order) OrderDTO {
	lineItems := aggregate.LineItems()
	items := make([]LineItemDTO, 0, len(lineItems))
	for position, item := range lineItems {
		items = append(items, LineItemDTO{
			ID:          item.ID().Bytes(),
			OrderID:     aggregate.ID().Bytes(),
			Position:    position,
			ProductRef:  item.ProductRef().Bytes(),
			ProductName: item.ProductName(),
			UnitPrice:   item.UnitPrice().Amount(),
			Quantity:    item.Quantity(),
			Subtotal:    item.Subtotal().Amount(),
		})
	}

	return OrderDTO{
		ID:                 aggregate.ID().Bytes(),
		Number:             aggregate.Number().String(),
		OwnerID:            aggregate.OwnerID().Bytes(),
		Status:             int(aggregate.Status()),
		TotalAmount:        aggregate.TotalAmount().Amount(),
		ShippingAddressRef: aggregate.ShippingAddressRef(),
		PaymentMethodTag:   aggregate.PaymentMethodTag(),
		CreatedAt:          aggregate.CreatedAt(),
		UpdatedAt:          aggregate.UpdatedAt(),
		Version:            aggregate.Version(),
		Items:              items,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including line items using RestoreOrder,
// which re-verifies the stored total against the item subtotals.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	number, err := order.NumberFromString(dto.Number)
	if err != nil {
		return nil, err
	}

	totalAmount, err := kernel.NewMoney(dto.TotalAmount)
	if err != nil {
		return nil, err
	}

	lineItems := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := lineItemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		lineItems = append(lineItems, item)
	}

	return order.RestoreOrder(
		id,
		ownerID,
		number,
		order.Status(dto.Status),
		lineItems,
		totalAmount,
		dto.ShippingAddressRef,
		dto.PaymentMethodTag,
		dto.CreatedAt,
		dto.UpdatedAt,
		dto.Version,
	)
}

// lineItemToDomain converts a line item DTO to its domain entity.
func lineItemToDomain(dto LineItemDTO) (order.LineItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.LineItem{}, err
	}

	productRef, err := kernel.UUIDFromBytes(dto.ProductRef[:])
	if err != nil {
		return order.LineItem{}, err
	}

	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return order.LineItem{}, err
	}

	subtotal, err := kernel.NewMoney(dto.Subtotal)
	if err != nil {
		return order.LineItem{}, err
	}

	return order.RestoreLineItem(id, productRef, dto.ProductName, unitPrice, dto.Quantity, subtotal)
}
