package handler

import (
	"errors"
	"net/http"

	"storefront-gateway/internal/core/logger"
	"storefront-gateway/internal/core/session"
	"storefront-gateway/internal/features/orders/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// OrderHandler handles HTTP requests related to orders.
type OrderHandler struct {
	// service is the OrderService instance.
	service *service.OrderService
}

// NewOrderHandler creates a new instance of OrderHandler.
func NewOrderHandler(s *service.OrderService) *OrderHandler {
	return &OrderHandler{
		service: s,
	}
}

// Register mounts the order routes on router.
func (h *OrderHandler) Register(router fiber.Router) {
	router.Get("/orders", h.ListOrders)
	router.Get("/orders/:id", h.GetOrder)
	router.Post("/orders/:id/cancel", h.CancelOrder)
}

// GetOrder handles the request to retrieve an order for the confirmation and detail views.
// @Summary Get Order by ID
// @Description Fetch order details for the signed-in shopper.
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	orderID := c.Params("id")

	order, err := h.service.GetOrder(session.Context(c), orderID)
	if err != nil {
		return h.fail(c, "Failed to fetch order", orderID, err)
	}

	return c.Status(http.StatusOK).JSON(order)
}

// ListOrders handles the request to retrieve the shopper's order history.
// @Summary List Orders
// @Description Fetch the signed-in shopper's orders.
// @Tags Orders
// @Produce json
// @Success 200 {array} domain.Order
// @Failure 401 {object} ErrorResponse
// @Router /orders [get]
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListOrders(session.Context(c))
	if err != nil {
		return h.fail(c, "Failed to list orders", "", err)
	}

	return c.Status(http.StatusOK).JSON(orders)
}

// CancelOrder handles the request to cancel an order before delivery.
// @Summary Cancel Order
// @Description Cancel an order that has not been delivered yet.
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /orders/{id}/cancel [post]
func (h *OrderHandler) CancelOrder(c *fiber.Ctx) error {
	orderID := c.Params("id")

	order, err := h.service.CancelOrder(session.Context(c), orderID)
	if err != nil {
		return h.fail(c, "Failed to cancel order", orderID, err)
	}

	return c.Status(http.StatusOK).JSON(order)
}

func (h *OrderHandler) fail(c *fiber.Ctx, logMsg, orderID string, err error) error {
	rayID, ok := c.Locals("requestid").(string)
	if !ok {
		rayID = "unknown"
	}

	logger.Get().Error(logMsg,
		zap.String("order_id", orderID),
		zap.String("session_id", session.ID(c)),
		zap.String("ray_id", rayID),
		zap.Error(err),
	)

	status := http.StatusInternalServerError
	msg := "Internal Server Error"

	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		status = http.StatusNotFound
		msg = "Order not found"
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusUnauthorized
		msg = "Please sign in to view this order"
	case errors.Is(err, service.ErrNotCancellable):
		status = http.StatusConflict
		msg = "This order can no longer be cancelled"
	}

	return c.Status(status).JSON(ErrorResponse{
		Message: msg,
		RayID:   rayID,
	})
}

// ErrorResponse represents the structure of an error response.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for debugging.
	RayID string `json:"ray_id"`
}
