// Package queries contains read-only operations that bypass the domain model.
// Implements the query side of the CQRS architecture: handlers read directly
// from the database with raw SQL and map rows into flat response structs.
package queries

import (
	"context"
	"database/sql"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LineItemResponse represents one order position in a query result.
// Prices are the values snapshotted at order creation, not current catalog
// prices.
type LineItemResponse struct {
	ID          kernel.UUID
	ProductRef  kernel.UUID
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
	Subtotal    decimal.Decimal
}

// OrderResponse represents a full order in a query result, including all
// line items in display order.
type OrderResponse struct {
	ID                 kernel.UUID
	Number             string
	OwnerID            kernel.UUID
	Status             string
	LineItems          []LineItemResponse
	TotalAmount        decimal.Decimal
	ShippingAddressRef string
	PaymentMethodTag   string
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Version            int
}

const selectOrderColumns = `
	SELECT
		id,
		number,
		owner_id,
		status,
		total_amount,
		shipping_address_ref,
		payment_method_tag,
		created_at,
		updated_at,
		version
	FROM orders
`

// scanOrderRow maps one row of selectOrderColumns into an OrderResponse
// without its line items.
func scanOrderRow(rows *sql.Rows) (OrderResponse, error) {
	var (
		resp     OrderResponse
		id       uuid.UUID
		ownerID  uuid.UUID
		statusID int
	)

	err := rows.Scan(
		&id,
		&resp.Number,
		&ownerID,
		&statusID,
		&resp.TotalAmount,
		&resp.ShippingAddressRef,
		&resp.PaymentMethodTag,
		&resp.CreatedAt,
		&resp.UpdatedAt,
		&resp.Version,
	)
	if err != nil {
		return OrderResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return OrderResponse{}, err
	}
	resp.ID = orderID

	owner, err := kernel.UUIDFromBytes(ownerID[:])
	if err != nil {
		return OrderResponse{}, err
	}
	resp.OwnerID = owner

	resp.Status = order.Status(statusID).String()
	return resp, nil
}

// fetchLineItems loads the line items of one order in display order.
func fetchLineItems(ctx context.Context, db *gorm.DB, orderID kernel.UUID) ([]LineItemResponse, error) {
	items := make([]LineItemResponse, 0)

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			id,
			product_ref,
			product_name,
			unit_price,
			quantity,
			subtotal
		FROM order_line_items
		WHERE order_id = ?
		ORDER BY position
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item       LineItemResponse
			id         uuid.UUID
			productRef uuid.UUID
		)

		err = rows.Scan(
			&id,
			&productRef,
			&item.ProductName,
			&item.UnitPrice,
			&item.Quantity,
			&item.Subtotal,
		)
		if err != nil {
			return nil, err
		}

		itemID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		item.ID = itemID

		ref, refErr := kernel.UUIDFromBytes(productRef[:])
		if refErr != nil {
			return nil, refErr
		}
		item.ProductRef = ref

		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
