package queries

import (
	"context"

	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderByNumberQueryHandler retrieves a single order by its human-readable
// number. Access rules match GetOrderQueryHandler.
type GetOrderByNumberQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderByNumberQueryHandler creates a handler for order number lookups.
// Requires a GORM database connection for query execution.
func NewGetOrderByNumberQueryHandler(db *gorm.DB) GetOrderByNumberQueryHandler {
	return GetOrderByNumberQueryHandler{db: db}
}

// Handle executes the query to retrieve one order by number.
// Returns an ObjectNotFoundError when no order carries the number and an
// AccessForbiddenError when a non-privileged caller is not the owner.
func (h GetOrderByNumberQueryHandler) Handle(
	ctx context.Context,
	query GetOrderByNumberQuery,
) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(
		selectOrderColumns+`WHERE number = ?`, query.Number().String(),
	).Rows()
	if err != nil {
		return OrderResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return OrderResponse{}, err
		}
		return OrderResponse{}, errs.NewObjectNotFoundError("number", query.Number())
	}

	resp, err := scanOrderRow(rows)
	if err != nil {
		return OrderResponse{}, err
	}

	if !query.Privileged() && !query.CallerID().IsEqual(resp.OwnerID) {
		return OrderResponse{}, errs.NewAccessForbiddenError("order", query.CallerID().String())
	}

	resp.LineItems, err = fetchLineItems(ctx, h.db, resp.ID)
	if err != nil {
		return OrderResponse{}, err
	}

	return resp, nil
}
