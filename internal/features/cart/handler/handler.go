package handler

import (
	"net/http"
	"time"

	"storefront-gateway/internal/core/logger"
	"storefront-gateway/internal/core/session"
	"storefront-gateway/internal/features/cart/domain"
	"storefront-gateway/internal/features/cart/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CartHandler handles HTTP requests for the shopper's cart.
type CartHandler struct {
	sessions *service.Sessions
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(sessions *service.Sessions) *CartHandler {
	return &CartHandler{
		sessions: sessions,
	}
}

// Register mounts the cart routes on router.
func (h *CartHandler) Register(router fiber.Router) {
	router.Get("/cart", h.GetCart)
	router.Delete("/cart", h.ClearCart)
	router.Post("/cart/items", h.AddItem)
	router.Put("/cart/items/:productId", h.UpdateItem)
	router.Delete("/cart/items/:productId", h.RemoveItem)
	router.Post("/cart/coupon", h.ApplyCoupon)
	router.Delete("/cart/coupon", h.RemoveCoupon)
}

// AddItemRequest represents the request body for adding a product.
type AddItemRequest struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id"`
	SizeID    string `json:"size_id"`
	Quantity  int    `json:"quantity"`
}

// UpdateItemRequest represents the request body for changing a line's quantity.
type UpdateItemRequest struct {
	VariantID string `json:"variant_id"`
	SizeID    string `json:"size_id"`
	Quantity  int    `json:"quantity"`
}

// CouponRequest represents the request body for applying a coupon.
type CouponRequest struct {
	Code string `json:"code"`
}

// CartView is the cart as rendered to the browser.
type CartView struct {
	Cart      domain.Cart `json:"cart"`
	ItemCount int         `json:"item_count"`
	Loading   bool        `json:"loading"`
	// Error is the banner text; empty once it has auto-cleared.
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// ErrorResponse represents the structure of an error response.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for debugging.
	RayID string `json:"ray_id"`
}

// GetCart handles GET /cart.
// @Summary Get the cart
// @Description Fetches the shopper's cart from the store and returns the mirrored state.
// @Tags Cart
// @Produce json
// @Success 200 {object} CartView
// @Failure 422 {object} CartView
// @Failure 500 {object} ErrorResponse
// @Router /cart [get]
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	return h.run(c, func(s *service.CartStore) bool {
		return s.FetchCart(session.Context(c))
	})
}

// AddItem handles POST /cart/items.
// @Summary Add a product to the cart
// @Tags Cart
// @Accept json
// @Produce json
// @Param item body AddItemRequest true "Product to add"
// @Success 200 {object} CartView
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} CartView
// @Router /cart/items [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.ProductID == "" {
		return badRequest(c, "Product ID is required")
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 1 {
		return badRequest(c, domain.ErrInvalidQuantity.Error())
	}

	return h.run(c, func(s *service.CartStore) bool {
		return s.AddToCart(session.Context(c), req.ProductID, req.VariantID, req.SizeID, req.Quantity)
	})
}

// UpdateItem handles PUT /cart/items/:productId.
// A quantity below one leaves the cart untouched and is answered with the current state.
// @Summary Change the quantity of a cart line
// @Tags Cart
// @Accept json
// @Produce json
// @Param productId path string true "Product ID"
// @Param item body UpdateItemRequest true "New quantity"
// @Success 200 {object} CartView
// @Failure 422 {object} CartView
// @Router /cart/items/{productId} [put]
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	var req UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	productID := c.Params("productId")

	if req.Quantity < 1 {
		return h.run(c, func(*service.CartStore) bool { return true })
	}

	return h.run(c, func(s *service.CartStore) bool {
		return s.UpdateCartItem(session.Context(c), productID, req.Quantity, req.VariantID, req.SizeID)
	})
}

// RemoveItem handles DELETE /cart/items/:productId.
// @Summary Remove a cart line
// @Tags Cart
// @Produce json
// @Param productId path string true "Product ID"
// @Param variant_id query string false "Variant ID"
// @Success 200 {object} CartView
// @Failure 422 {object} CartView
// @Router /cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	productID := c.Params("productId")
	variantID := c.Query("variant_id")

	return h.run(c, func(s *service.CartStore) bool {
		return s.RemoveFromCart(session.Context(c), productID, variantID)
	})
}

// ClearCart handles DELETE /cart.
// Clearing is destructive, so the caller must pass confirm=true.
// @Summary Clear the cart
// @Tags Cart
// @Produce json
// @Param confirm query bool true "Shopper confirmed"
// @Success 200 {object} CartView
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} CartView
// @Router /cart [delete]
func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	if !c.QueryBool("confirm") {
		return badRequest(c, "Clearing the cart requires confirm=true")
	}

	return h.run(c, func(s *service.CartStore) bool {
		return s.ClearCart(session.Context(c))
	})
}

// ApplyCoupon handles POST /cart/coupon.
// @Summary Apply a coupon
// @Tags Cart
// @Accept json
// @Produce json
// @Param coupon body CouponRequest true "Coupon code"
// @Success 200 {object} CartView
// @Failure 422 {object} CartView
// @Router /cart/coupon [post]
func (h *CartHandler) ApplyCoupon(c *fiber.Ctx) error {
	var req CouponRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	return h.run(c, func(s *service.CartStore) bool {
		return s.ApplyCoupon(session.Context(c), req.Code)
	})
}

// RemoveCoupon handles DELETE /cart/coupon.
// @Summary Remove the applied coupon
// @Tags Cart
// @Produce json
// @Success 200 {object} CartView
// @Failure 422 {object} CartView
// @Router /cart/coupon [delete]
func (h *CartHandler) RemoveCoupon(c *fiber.Ctx) error {
	return h.run(c, func(s *service.CartStore) bool {
		return s.RemoveCoupon(session.Context(c))
	})
}

// run loads the session's store, applies op, persists the result and renders it.
// A failed operation is answered with 422 and the banner in the body.
func (h *CartHandler) run(c *fiber.Ctx, op func(*service.CartStore) bool) error {
	sessionID := session.ID(c)
	ctx := session.Context(c)

	store, err := h.sessions.Load(ctx, sessionID)
	if err != nil {
		return internalError(c, "Failed to load cart session", sessionID, err)
	}

	ok := op(store)

	if err := h.sessions.Persist(ctx, sessionID, store); err != nil {
		return internalError(c, "Failed to save cart session", sessionID, err)
	}

	status := http.StatusOK
	if !ok {
		status = http.StatusUnprocessableEntity
	}
	return c.Status(status).JSON(view(store))
}

func view(store *service.CartStore) CartView {
	state := store.State()
	return CartView{
		Cart:      state.Cart,
		ItemCount: state.Cart.ItemCount(),
		Loading:   state.Loading,
		Error:     store.Error(),
		UpdatedAt: state.UpdatedAt,
	}
}

func rayID(c *fiber.Ctx) string {
	id, ok := c.Locals("requestid").(string)
	if !ok {
		return "unknown"
	}
	return id
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Message: msg,
		RayID:   rayID(c),
	})
}

func internalError(c *fiber.Ctx, msg, sessionID string, err error) error {
	id := rayID(c)
	logger.ForSession(sessionID, id).Error(msg, zap.Error(err))
	return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
		Message: "Internal server error",
		RayID:   id,
	})
}
