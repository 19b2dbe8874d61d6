package handler

import (
	"context"
	"errors"
	"net/http"

	"storefront-gateway/internal/core/logger"
	"storefront-gateway/internal/core/session"
	"storefront-gateway/internal/features/checkout/domain"
	"storefront-gateway/internal/features/checkout/ports"
	"storefront-gateway/internal/features/checkout/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CheckoutHandler handles HTTP requests for the checkout flow.
type CheckoutHandler struct {
	sessions *service.Sessions
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(sessions *service.Sessions) *CheckoutHandler {
	return &CheckoutHandler{
		sessions: sessions,
	}
}

// Register mounts the checkout routes on router.
func (h *CheckoutHandler) Register(router fiber.Router) {
	router.Get("/checkout", h.GetCheckout)
	router.Post("/checkout", h.Submit)
	router.Delete("/checkout", h.Reset)
	router.Post("/checkout/validate", h.Validate)
	router.Post("/checkout/retry", h.Retry)
	router.Post("/checkout/payment/success", h.PaymentSuccess)
	router.Post("/checkout/payment/failure", h.PaymentFailure)
	router.Post("/checkout/payment/dismiss", h.PaymentDismiss)
}

// SubmitRequest represents the checkout form submission.
type SubmitRequest struct {
	ShippingAddress domain.ShippingAddress `json:"shipping_address"`
	PaymentMethod   domain.PaymentMethod   `json:"payment_method"`
}

// ValidationResponse is returned by the form validation endpoint.
type ValidationResponse struct {
	Valid  bool                    `json:"valid"`
	Errors domain.ValidationErrors `json:"errors,omitempty"`
}

// ErrorResponse represents the structure of an error response.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for debugging.
	RayID string `json:"ray_id"`
	// Errors holds per-field form errors.
	Errors domain.ValidationErrors `json:"errors,omitempty"`
}

// GetCheckout handles GET /checkout.
// @Summary Get the checkout state
// @Tags Checkout
// @Produce json
// @Success 200 {object} service.View
// @Router /checkout [get]
func (h *CheckoutHandler) GetCheckout(c *fiber.Ctx) error {
	return h.run(c, func(_ context.Context, o *service.Orchestrator) (service.View, error) {
		return o.View(), nil
	})
}

// Validate handles POST /checkout/validate.
// @Summary Validate the shipping form
// @Description Checks the form without placing an order.
// @Tags Checkout
// @Accept json
// @Produce json
// @Param form body domain.ShippingAddress true "Shipping address"
// @Success 200 {object} ValidationResponse
// @Router /checkout/validate [post]
func (h *CheckoutHandler) Validate(c *fiber.Ctx) error {
	var form domain.ShippingAddress
	if err := c.BodyParser(&form); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	form.Normalize()
	errs := form.Validate()
	return c.Status(http.StatusOK).JSON(ValidationResponse{Valid: errs == nil, Errors: errs})
}

// Submit handles POST /checkout.
// @Summary Place the order
// @Description Validates the form, creates the order, and completes a COD order or returns the payment widget options.
// @Tags Checkout
// @Accept json
// @Produce json
// @Param checkout body SubmitRequest true "Checkout form"
// @Success 200 {object} service.View
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /checkout [post]
func (h *CheckoutHandler) Submit(c *fiber.Ctx) error {
	var req SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}

	return h.run(c, func(ctx context.Context, o *service.Orchestrator) (service.View, error) {
		return o.Submit(ctx, req.ShippingAddress, req.PaymentMethod)
	})
}

// Retry handles POST /checkout/retry.
// @Summary Try the failed step again
// @Tags Checkout
// @Produce json
// @Success 200 {object} service.View
// @Failure 409 {object} ErrorResponse
// @Router /checkout/retry [post]
func (h *CheckoutHandler) Retry(c *fiber.Ctx) error {
	return h.run(c, func(ctx context.Context, o *service.Orchestrator) (service.View, error) {
		return o.Retry(ctx)
	})
}

// PaymentSuccess handles POST /checkout/payment/success.
// @Summary Report a gateway success
// @Description The payment is only completed once the store verifies it.
// @Tags Checkout
// @Accept json
// @Produce json
// @Param confirmation body ports.PaymentConfirmation true "Gateway confirmation"
// @Success 200 {object} service.View
// @Failure 409 {object} ErrorResponse
// @Router /checkout/payment/success [post]
func (h *CheckoutHandler) PaymentSuccess(c *fiber.Ctx) error {
	var req ports.PaymentConfirmation
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}

	return h.run(c, func(ctx context.Context, o *service.Orchestrator) (service.View, error) {
		return o.HandlePaymentSuccess(ctx, req)
	})
}

// PaymentFailure handles POST /checkout/payment/failure.
// @Summary Report a gateway failure
// @Tags Checkout
// @Accept json
// @Produce json
// @Param failure body ports.PaymentFailure true "Gateway error"
// @Success 200 {object} service.View
// @Failure 409 {object} ErrorResponse
// @Router /checkout/payment/failure [post]
func (h *CheckoutHandler) PaymentFailure(c *fiber.Ctx) error {
	var req ports.PaymentFailure
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}

	return h.run(c, func(ctx context.Context, o *service.Orchestrator) (service.View, error) {
		return o.HandlePaymentFailure(ctx, req)
	})
}

// PaymentDismiss handles POST /checkout/payment/dismiss.
// @Summary Report that the shopper closed the payment widget
// @Tags Checkout
// @Produce json
// @Success 200 {object} service.View
// @Failure 409 {object} ErrorResponse
// @Router /checkout/payment/dismiss [post]
func (h *CheckoutHandler) PaymentDismiss(c *fiber.Ctx) error {
	return h.run(c, func(ctx context.Context, o *service.Orchestrator) (service.View, error) {
		return o.HandleDismiss(ctx)
	})
}

// Reset handles DELETE /checkout.
// @Summary Start a new checkout
// @Tags Checkout
// @Produce json
// @Success 200 {object} service.View
// @Failure 409 {object} ErrorResponse
// @Router /checkout [delete]
func (h *CheckoutHandler) Reset(c *fiber.Ctx) error {
	sessionID := session.ID(c)
	ctx := session.Context(c)

	o, err := h.sessions.Load(ctx, sessionID)
	if err != nil {
		return internalError(c, "Failed to load checkout session", sessionID, err)
	}
	if err := o.Reset(); err != nil {
		return respondOpError(c, err)
	}
	if err := h.sessions.Discard(ctx, sessionID); err != nil {
		return internalError(c, "Failed to discard checkout session", sessionID, err)
	}
	return c.Status(http.StatusOK).JSON(o.View())
}

// run loads the session's orchestrator, applies op, persists the result and renders it.
func (h *CheckoutHandler) run(c *fiber.Ctx, op func(context.Context, *service.Orchestrator) (service.View, error)) error {
	sessionID := session.ID(c)
	ctx := session.Context(c)

	o, err := h.sessions.Load(ctx, sessionID)
	if err != nil {
		return internalError(c, "Failed to load checkout session", sessionID, err)
	}

	view, opErr := op(ctx, o)

	if err := h.sessions.Persist(ctx, sessionID, o); err != nil {
		return internalError(c, "Failed to save checkout session", sessionID, err)
	}

	if opErr != nil {
		return respondOpError(c, opErr)
	}
	return c.Status(http.StatusOK).JSON(view)
}

func respondOpError(c *fiber.Ctx, err error) error {
	var verrs domain.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Please correct the highlighted fields",
			RayID:   rayID(c),
			Errors:  verrs,
		})
	case errors.Is(err, domain.ErrInvalidPaymentMethod):
		return respondError(c, http.StatusBadRequest, "Payment method must be cod or online")
	case errors.Is(err, domain.ErrRetriesExhausted):
		return respondError(c, http.StatusConflict, domain.TerminalNotice)
	case errors.Is(err, domain.ErrRetryUnavailable):
		return respondError(c, http.StatusConflict, "This checkout cannot be retried")
	case errors.Is(err, domain.ErrNoPendingPayment):
		return respondError(c, http.StatusConflict, "No payment is in progress")
	case errors.Is(err, domain.ErrInvalidTransition):
		return respondError(c, http.StatusConflict, "Checkout is not in a state that allows this action")
	}
	return internalError(c, "Checkout operation failed", session.ID(c), err)
}

func rayID(c *fiber.Ctx) string {
	id, ok := c.Locals("requestid").(string)
	if !ok {
		return "unknown"
	}
	return id
}

func respondError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ErrorResponse{
		Message: msg,
		RayID:   rayID(c),
	})
}

func internalError(c *fiber.Ctx, msg, sessionID string, err error) error {
	id := rayID(c)
	logger.ForSession(sessionID, id).Error(msg, zap.Error(err))
	return respondError(c, http.StatusInternalServerError, "Internal server error")
}
