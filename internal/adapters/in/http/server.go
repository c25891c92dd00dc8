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

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	addOrderItemHandler      commands.AddOrderItemCommandHandler
	replaceOrderItemsHandler commands.ReplaceOrderItemsCommandHandler
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler

	// Query handlers
	getOrderHandler  queries.GetOrderQueryHandler
	getOrdersHandler queries.GetOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	addOrderItemHandler commands.AddOrderItemCommandHandler,
	replaceOrderItemsHandler commands.ReplaceOrderItemsCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		addOrderItemHandler:      addOrderItemHandler,
		replaceOrderItemsHandler: replaceOrderItemsHandler,
		changeOrderStatusHandler: changeOrderStatusHandler,
		getOrderHandler:          getOrderHandler,
		getOrdersHandler:         getOrdersHandler,
	}
}

// RegisterRoutes attaches the order routes behind the auth middleware.
// The health endpoint stays open for probes.
func (s *Server) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	e.GET("/health", s.Health)

	orders := e.Group("/orders", auth)
	orders.POST("", s.CreateOrder)
	orders.GET("", s.GetOrders)
	orders.GET("/:id", s.GetOrder)
	orders.POST("/:id/items", s.AddOrderItem)
	orders.PUT("/:id/items", s.ReplaceOrderItems)
	orders.PATCH("/:id/status", s.ChangeOrderStatus)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// CreateOrder handles POST /orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return s.unauthorized(ctx)
	}

	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	items, err := toDomainItems(request.Items)
	if err != nil {
		return s.writeError(ctx, err)
	}

	// Privileged callers may place orders for any customer or for guests;
	// customers always place orders under their own identity.
	userID := request.UserID
	if !actor.IsPrivileged() {
		own := actor.ID()
		userID = &own
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		request.ShopID,
		userID,
		request.PaymentMethod,
		items,
	)
	if err != nil {
		return s.writeError(ctx, err)
	}

	placed, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderToResponse(placed))
}

// GetOrders handles GET /orders - lists orders visible to the caller.
func (s *Server) GetOrders(ctx echo.Context) error {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return s.unauthorized(ctx)
	}

	query, err := queries.NewGetOrdersQuery(actor)
	if err != nil {
		return s.writeError(ctx, err)
	}

	rows, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]OrderResponse, 0, len(rows))
	for _, row := range rows {
		response = append(response, queryToResponse(row))
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /orders/:id - retrieves one order.
func (s *Server) GetOrder(ctx echo.Context) error {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return s.unauthorized(ctx)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	query, err := queries.NewGetOrderQuery(orderID, actor)
	if err != nil {
		return s.writeError(ctx, err)
	}

	row, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, queryToResponse(row))
}

// AddOrderItem handles POST /orders/:id/items - appends one item to a draft order.
func (s *Server) AddOrderItem(ctx echo.Context) error {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return s.unauthorized(ctx)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	var request OrderItemRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	item, err := toDomainItem(request)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewAddOrderItemCommand(orderID, item, actor)
	if err != nil {
		return s.writeError(ctx, err)
	}

	updated, err := s.addOrderItemHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(updated))
}

// ReplaceOrderItems handles PUT /orders/:id/items - replaces a draft order's item set.
func (s *Server) ReplaceOrderItems(ctx echo.Context) error {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return s.unauthorized(ctx)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	var request ReplaceOrderItemsRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	items, err := toDomainItems(request.Items)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewReplaceOrderItemsCommand(orderID, items, actor)
	if err != nil {
		return s.writeError(ctx, err)
	}

	updated, err := s.replaceOrderItemsHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(updated))
}

// ChangeOrderStatus handles PATCH /orders/:id/status - transitions an order's lifecycle.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return s.unauthorized(ctx)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	var request UpdateStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	target, err := order.StatusFromString(request.Status)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, target, actor)
	if err != nil {
		return s.writeError(ctx, err)
	}

	updated, err := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(updated))
}

func (s *Server) unauthorized(ctx echo.Context) error {
	return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
		Code:    http.StatusUnauthorized,
		Message: "Unauthorized",
	})
}

// writeError maps application errors to HTTP status codes.
func (s *Server) writeError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrOperationForbidden):
		code = http.StatusForbidden
	case errors.Is(err, commands.ErrItemsUnavailable):
		code = http.StatusConflict
	case errors.Is(err, commands.ErrShopIDIsRequired),
		errors.Is(err, commands.ErrItemsAreRequired),
		errors.Is(err, commands.ErrItemIsRequired):
		code = http.StatusBadRequest
	case errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, ErrorResponse{Code: code, Message: err.Error()})
}
