package http

import (
	"time"

	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/order"
)

// Error is the uniform error payload returned by all endpoints.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	LineItems          []CreateOrderLineItem `json:"lineItems"`
	ShippingAddressRef string                `json:"shippingAddressRef"`
	PaymentMethodTag   string                `json:"paymentMethodTag"`
}

// CreateOrderLineItem references a catalog product and a quantity.
type CreateOrderLineItem struct {
	ProductRef string `json:"productRef"`
	Quantity   int    `json:"quantity"`
}

// SetStatusRequest is the body of PATCH /api/v1/orders/:id/status.
type SetStatusRequest struct {
	Status string `json:"status"`
}

// Order is the JSON representation of an order.
type Order struct {
	ID                 string     `json:"id"`
	Number             string     `json:"number"`
	OwnerID            string     `json:"ownerId"`
	Status             string     `json:"status"`
	LineItems          []LineItem `json:"lineItems"`
	TotalAmount        string     `json:"totalAmount"`
	ShippingAddressRef string     `json:"shippingAddressRef"`
	PaymentMethodTag   string     `json:"paymentMethodTag"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
	Version            int        `json:"version"`
}

// LineItem is the JSON representation of an order line.
type LineItem struct {
	ID          string `json:"id"`
	ProductRef  string `json:"productRef"`
	ProductName string `json:"productName"`
	UnitPrice   string `json:"unitPrice"`
	Quantity    int    `json:"quantity"`
	Subtotal    string `json:"subtotal"`
}

func orderFromAggregate(aggregate *order.Order) Order {
	items := aggregate.LineItems()
	lineItems := make([]LineItem, len(items))
	for i, item := range items {
		lineItems[i] = LineItem{
			ID:          item.ID().String(),
			ProductRef:  item.ProductRef().String(),
			ProductName: item.ProductName(),
			UnitPrice:   item.UnitPrice().String(),
			Quantity:    item.Quantity(),
			Subtotal:    item.Subtotal().String(),
		}
	}

	return Order{
		ID:                 aggregate.ID().String(),
		Number:             aggregate.Number().String(),
		OwnerID:            aggregate.OwnerID().String(),
		Status:             aggregate.Status().String(),
		LineItems:          lineItems,
		TotalAmount:        aggregate.TotalAmount().String(),
		ShippingAddressRef: aggregate.ShippingAddressRef(),
		PaymentMethodTag:   aggregate.PaymentMethodTag(),
		CreatedAt:          aggregate.CreatedAt(),
		UpdatedAt:          aggregate.UpdatedAt(),
		Version:            aggregate.Version(),
	}
}

func orderFromResponse(resp queries.OrderResponse) Order {
	lineItems := make([]LineItem, len(resp.LineItems))
	for i, item := range resp.LineItems {
		lineItems[i] = LineItem{
			ID:          item.ID.String(),
			ProductRef:  item.ProductRef.String(),
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			Quantity:    item.Quantity,
			Subtotal:    item.Subtotal.StringFixed(2),
		}
	}

	return Order{
		ID:                 resp.ID.String(),
		Number:             resp.Number,
		OwnerID:            resp.OwnerID.String(),
		Status:             resp.Status,
		LineItems:          lineItems,
		TotalAmount:        resp.TotalAmount.StringFixed(2),
		ShippingAddressRef: resp.ShippingAddressRef,
		PaymentMethodTag:   resp.PaymentMethodTag,
		CreatedAt:          resp.CreatedAt,
		UpdatedAt:          resp.UpdatedAt,
		Version:            resp.Version,
	}
}

func ordersFromResponses(resps []queries.OrderResponse) []Order {
	orders := make([]Order, len(resps))
	for i, resp := range resps {
		orders[i] = orderFromResponse(resp)
	}
	return orders
}
