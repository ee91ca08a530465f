package http

import (
	"errors"
	"net/http"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Header names carrying the caller identity. The gateway in front of this
// service authenticates requests and injects both headers.
const (
	headerUserID   = "X-User-Id"
	headerUserRole = "X-User-Role"

	roleAdmin = "admin"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler commands.CreateOrderCommandHandler
	setStatusHandler   commands.SetStatusCommandHandler
	cancelOrderHandler commands.CancelOrderCommandHandler

	// Query handlers
	getOrderHandler          queries.GetOrderQueryHandler
	getOrderByNumberHandler  queries.GetOrderByNumberQueryHandler
	getOrdersForOwnerHandler queries.GetOrdersForOwnerQueryHandler
	getOrdersByStatusHandler queries.GetOrdersByStatusQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	setStatusHandler commands.SetStatusCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOrderByNumberHandler queries.GetOrderByNumberQueryHandler,
	getOrdersForOwnerHandler queries.GetOrdersForOwnerQueryHandler,
	getOrdersByStatusHandler queries.GetOrdersByStatusQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		setStatusHandler:         setStatusHandler,
		cancelOrderHandler:       cancelOrderHandler,
		getOrderHandler:          getOrderHandler,
		getOrderByNumberHandler:  getOrderByNumberHandler,
		getOrdersForOwnerHandler: getOrdersForOwnerHandler,
		getOrdersByStatusHandler: getOrdersByStatusHandler,
	}
}

// RegisterRoutes wires all order endpoints onto the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrdersForOwner)
	api.GET("/orders/:id", s.GetOrder)
	api.GET("/orders/number/:number", s.GetOrderByNumber)
	api.GET("/orders/status/:status", s.GetOrdersByStatus)
	api.PATCH("/orders/:id/status", s.SetOrderStatus)
	api.POST("/orders/:id/cancel", s.CancelOrder)
}

// CreateOrder handles POST /api/v1/orders - places a new order for the caller.
func (s *Server) CreateOrder(ctx echo.Context) error {
	identity, err := callerIdentity(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	lineItems := make([]commands.LineItemRequest, 0, len(req.LineItems))
	for _, item := range req.LineItems {
		productRef, err := kernel.UUIDFromString(item.ProductRef)
		if err != nil {
			return badRequest(ctx, err)
		}
		lineItems = append(lineItems, commands.LineItemRequest{
			ProductRef: productRef,
			Quantity:   item.Quantity,
		})
	}

	cmd, err := commands.NewCreateOrderCommand(
		identity.callerID, lineItems, req.ShippingAddressRef, req.PaymentMethodTag,
	)
	if err != nil {
		return badRequest(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderFromAggregate(created))
}

// GetOrder handles GET /api/v1/orders/:id - retrieves a single order.
// Owners see their own orders, admins see any.
func (s *Server) GetOrder(ctx echo.Context) error {
	identity, err := callerIdentity(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID, identity.callerID, identity.privileged)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromResponse(resp))
}

// GetOrderByNumber handles GET /api/v1/orders/number/:number - retrieves a
// single order by its human-readable number.
func (s *Server) GetOrderByNumber(ctx echo.Context) error {
	identity, err := callerIdentity(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	number, err := order.NumberFromString(ctx.Param("number"))
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetOrderByNumberQuery(number, identity.callerID, identity.privileged)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	resp, err := s.getOrderByNumberHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromResponse(resp))
}

// GetOrdersForOwner handles GET /api/v1/orders - lists orders newest first.
// Without an owner parameter the caller's own orders are listed; admins may
// pass ?owner=<uuid> to list anyone's.
func (s *Server) GetOrdersForOwner(ctx echo.Context) error {
	identity, err := callerIdentity(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	ownerID := identity.callerID
	if ownerParam := ctx.QueryParam("owner"); ownerParam != "" {
		ownerID, err = kernel.UUIDFromString(ownerParam)
		if err != nil {
			return badRequest(ctx, err)
		}
	}

	query, err := queries.NewGetOrdersForOwnerQuery(ownerID, identity.callerID, identity.privileged)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	resp, err := s.getOrdersForOwnerHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ordersFromResponses(resp))
}

// GetOrdersByStatus handles GET /api/v1/orders/status/:status - lists all
// orders in the given status. Admin only.
func (s *Server) GetOrdersByStatus(ctx echo.Context) error {
	identity, err := callerIdentity(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	status, err := order.StatusFromString(ctx.Param("status"))
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetOrdersByStatusQuery(status, identity.privileged)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	resp, err := s.getOrdersByStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ordersFromResponses(resp))
}

// SetOrderStatus handles PATCH /api/v1/orders/:id/status - moves an order to
// a new lifecycle status. Admin only; owners cancel through the cancel route.
func (s *Server) SetOrderStatus(ctx echo.Context) error {
	identity, err := callerIdentity(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}
	if !identity.privileged {
		return ctx.JSON(http.StatusForbidden, Error{
			Code:    http.StatusForbidden,
			Message: "Only admins may change order status",
		})
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var req SetStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	status, err := order.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewSetStatusCommand(orderID, status)
	if err != nil {
		return badRequest(ctx, err)
	}

	updated, err := s.setStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromAggregate(updated))
}

// CancelOrder handles POST /api/v1/orders/:id/cancel - cancels the caller's
// own order while it is still Pending or Confirmed.
func (s *Server) CancelOrder(ctx echo.Context) error {
	identity, err := callerIdentity(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, identity.callerID)
	if err != nil {
		return badRequest(ctx, err)
	}

	cancelled, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromAggregate(cancelled))
}

type identity struct {
	callerID   kernel.UUID
	privileged bool
}

func callerIdentity(ctx echo.Context) (identity, error) {
	callerID, err := kernel.UUIDFromString(ctx.Request().Header.Get(headerUserID))
	if err != nil {
		return identity{}, errs.NewValueIsInvalidErrorWithCause(headerUserID, err)
	}

	return identity{
		callerID:   callerID,
		privileged: ctx.Request().Header.Get(headerUserRole) == roleAdmin,
	}, nil
}

func badRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
	})
}

// mapDomainError translates application and domain errors into HTTP statuses.
func mapDomainError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrAccessForbidden):
		return ctx.JSON(http.StatusForbidden, Error{
			Code:    http.StatusForbidden,
			Message: err.Error(),
		})
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, errs.ErrConcurrentModification):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, commands.ErrNumberGenerationExhausted):
		return ctx.JSON(http.StatusServiceUnavailable, Error{
			Code:    http.StatusServiceUnavailable,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return badRequest(ctx, err)
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}
