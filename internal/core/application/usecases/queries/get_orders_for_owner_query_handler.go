package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetOrdersForOwnerQueryHandler lists an owner's orders from the database,
// newest first, each with its full set of line items.
type GetOrdersForOwnerQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersForOwnerQueryHandler creates a handler for owner order listings.
// Requires a GORM database connection for query execution.
func NewGetOrdersForOwnerQueryHandler(db *gorm.DB) GetOrdersForOwnerQueryHandler {
	return GetOrdersForOwnerQueryHandler{db: db}
}

// Handle executes the query to list all of one owner's orders.
// Results are sorted by creation time, newest first. An owner with no orders
// gets an empty slice, not an error.
func (h GetOrdersForOwnerQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersForOwnerQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]OrderResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(
		selectOrderColumns+`WHERE owner_id = ? ORDER BY created_at DESC`,
		query.OwnerID().Bytes(),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		resp, scanErr := scanOrderRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		orders[i].LineItems, err = fetchLineItems(ctx, h.db, orders[i].ID)
		if err != nil {
			return nil, err
		}
	}

	return orders, nil
}
