package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"storefront-gateway/internal/core/apiclient"
	"storefront-gateway/internal/core/logger"
	"storefront-gateway/internal/features/checkout/domain"
	"storefront-gateway/internal/features/checkout/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// DefaultErrorTTL is how long a checkout error banner stays visible.
	DefaultErrorTTL = 10 * time.Second
	// DefaultMaxRetries bounds the "Try Again" action.
	DefaultMaxRetries = 3
	// DefaultRedirectDelay paces the move to the confirmation page after a COD order.
	DefaultRedirectDelay = 1500 * time.Millisecond
)

// Config holds the payment and retry settings shared by every session.
type Config struct {
	KeyID         string
	ScriptURL     string
	Currency      string
	StoreName     string
	MaxRetries    int
	ErrorTTL      time.Duration
	RedirectDelay time.Duration
}

func (c Config) withDefaults() Config {
	if c.MaxRetries <= 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.ErrorTTL <= 0 {
		c.ErrorTTL = DefaultErrorTTL
	}
	if c.RedirectDelay <= 0 {
		c.RedirectDelay = DefaultRedirectDelay
	}
	if c.Currency == "" {
		c.Currency = "INR"
	}
	return c
}

// Options carries the injectable collaborators of an Orchestrator.
type Options struct {
	// Now is the clock. Defaults to time.Now.
	Now func() time.Time
	// NewKey generates idempotency keys. Defaults to uuid.NewString.
	NewKey func() string
	// Logger defaults to the global logger.
	Logger *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewKey == nil {
		o.NewKey = uuid.NewString
	}
	if o.Logger == nil {
		o.Logger = logger.Get()
	}
	return o
}

// Orchestrator drives one session's checkout through its state machine:
// idle -> creating_order -> (completed | processing_payment) -> (completed | failed).
//
// Checkout failures are recorded in state and never returned as Go errors;
// errors are reserved for calls the current state does not permit and for
// invalid forms.
type Orchestrator struct {
	api    ports.CheckoutAPI
	widget ports.PaymentWidget
	cart   ports.CartSource
	cfg    Config
	opts   Options

	sessionID string

	mu    sync.Mutex
	state domain.State
}

// NewOrchestrator creates an orchestrator for sessionID seeded with state (nil means idle).
func NewOrchestrator(api ports.CheckoutAPI, widget ports.PaymentWidget, cart ports.CartSource, sessionID string, state *domain.State, cfg Config, opts Options) *Orchestrator {
	if state == nil {
		state = domain.NewState()
	}
	opts = opts.withDefaults()
	opts.Logger = opts.Logger.With(zap.String("session_id", sessionID))
	return &Orchestrator{
		api:       api,
		widget:    widget,
		cart:      cart,
		cfg:       cfg.withDefaults(),
		opts:      opts,
		sessionID: sessionID,
		state:     *state,
	}
}

// State returns a copy of the current state.
func (o *Orchestrator) State() domain.State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// ValidateForm checks the shipping form without touching state.
func (o *Orchestrator) ValidateForm(form domain.ShippingAddress) domain.ValidationErrors {
	form.Normalize()
	return form.Validate()
}

// Submit validates the form, creates the order and either completes a COD
// order or opens an online payment. An invalid form is returned as
// domain.ValidationErrors and leaves state untouched.
func (o *Orchestrator) Submit(ctx context.Context, form domain.ShippingAddress, method domain.PaymentMethod) (View, error) {
	if !method.Valid() {
		return o.View(), domain.ErrInvalidPaymentMethod
	}
	form.Normalize()
	if errs := form.Validate(); errs != nil {
		return o.View(), errs
	}

	o.mu.Lock()
	if o.state.Status == domain.StatusFailed {
		if err := o.retryGuard(); err != nil {
			o.mu.Unlock()
			return o.View(), err
		}
	}
	if err := o.state.Transition(domain.StatusCreatingOrder); err != nil {
		o.mu.Unlock()
		return o.View(), err
	}
	o.state.Form = &form
	o.state.Method = method
	o.state.Order = nil
	o.state.Payment = nil
	o.state.ClearError()
	o.touch()
	o.mu.Unlock()

	return o.createOrder(ctx, form, method), nil
}

// ProcessPayment opens an online payment for the created order.
func (o *Orchestrator) ProcessPayment(ctx context.Context) (View, error) {
	o.mu.Lock()
	if o.state.Order == nil || o.state.Method != domain.PaymentMethodOnline {
		o.mu.Unlock()
		return o.View(), domain.ErrNoPendingPayment
	}
	if o.state.Status == domain.StatusFailed {
		if err := o.retryGuard(); err != nil {
			o.mu.Unlock()
			return o.View(), err
		}
	}
	if err := o.state.Transition(domain.StatusProcessingPayment); err != nil {
		o.mu.Unlock()
		return o.View(), err
	}
	o.state.ClearError()
	o.touch()
	o.mu.Unlock()

	return o.processPayment(ctx), nil
}

// HandlePaymentSuccess verifies a gateway success with the store. Only a
// verified payment clears the cart; an unverified one is flagged for support.
// The widget stays open after a failed attempt, so a success may also arrive
// while the checkout is failed.
func (o *Orchestrator) HandlePaymentSuccess(ctx context.Context, confirmation ports.PaymentConfirmation) (View, error) {
	order, err := o.settleableOrder()
	if err != nil {
		return o.View(), err
	}

	if err := o.api.VerifyPayment(ctx, order.ID, confirmation); err != nil {
		o.opts.Logger.Error("Payment verification failed",
			zap.String("order_id", order.ID),
			zap.String("gateway_payment_id", confirmation.GatewayPaymentID),
			zap.Error(err),
		)
		cause := domain.NewCheckoutError(domain.ErrorTypeServer, domain.UnverifiedPaymentMessage)
		cause.Details = map[string]string{
			"order_number":       order.OrderNumber,
			"gateway_payment_id": confirmation.GatewayPaymentID,
		}
		o.mu.Lock()
		if err := o.state.RequireSupport(cause, o.opts.Now()); err != nil {
			o.opts.Logger.Error("Unexpected checkout state", zap.Error(err))
		}
		o.touch()
		o.mu.Unlock()
		return o.View(), nil
	}

	o.clearCart(ctx, order.ID)

	o.mu.Lock()
	if err := o.state.Transition(domain.StatusCompleted); err != nil {
		o.mu.Unlock()
		return o.View(), err
	}
	o.state.ClearError()
	o.touch()
	o.mu.Unlock()

	o.opts.Logger.Info("Online payment completed", zap.String("order_id", order.ID))
	return o.View(), nil
}

// HandlePaymentFailure records a failure reported by the widget. The cart is kept.
func (o *Orchestrator) HandlePaymentFailure(ctx context.Context, failure ports.PaymentFailure) (View, error) {
	order, err := o.pendingOrder()
	if err != nil {
		return o.View(), err
	}

	t := domain.ClassifyGatewayFailure(failure.Code, failure.Reason)
	msg := failure.Description
	if msg == "" || t == domain.ErrorTypeUserCancelled {
		msg = domain.DefaultMessage(t)
	}
	cause := domain.NewCheckoutError(t, msg)
	cause.Details = map[string]string{"code": failure.Code}
	if failure.Reason != "" {
		cause.Details["reason"] = failure.Reason
	}

	o.opts.Logger.Warn("Payment failed",
		zap.String("order_id", order.ID),
		zap.String("code", failure.Code),
		zap.String("reason", failure.Reason),
		zap.String("type", string(t)),
	)

	o.mu.Lock()
	o.failLocked(cause)
	o.mu.Unlock()
	return o.View(), nil
}

// HandleDismiss records that the shopper closed the widget. No retry is consumed.
func (o *Orchestrator) HandleDismiss(ctx context.Context) (View, error) {
	if _, err := o.pendingOrder(); err != nil {
		return o.View(), err
	}

	o.mu.Lock()
	o.failLocked(domain.NewCheckoutError(domain.ErrorTypeUserCancelled, domain.DefaultMessage(domain.ErrorTypeUserCancelled)))
	o.mu.Unlock()
	return o.View(), nil
}

// Retry re-runs the step that failed: the payment when an order exists,
// otherwise the order submission with the stored form.
func (o *Orchestrator) Retry(ctx context.Context) (View, error) {
	o.mu.Lock()
	if err := o.retryGuard(); err != nil {
		o.mu.Unlock()
		return o.View(), err
	}
	order, form, method := o.state.Order, o.state.Form, o.state.Method
	o.mu.Unlock()

	if order != nil && method == domain.PaymentMethodOnline {
		return o.ProcessPayment(ctx)
	}
	if form == nil {
		return o.View(), domain.ErrRetryUnavailable
	}
	return o.Submit(ctx, *form, method)
}

// Reset starts a new checkout after completion or failure.
func (o *Orchestrator) Reset() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.state.Reset(); err != nil {
		return err
	}
	o.touch()
	return nil
}

func (o *Orchestrator) createOrder(ctx context.Context, form domain.ShippingAddress, method domain.PaymentMethod) View {
	if err := checkAccessToken(apiclient.AccessTokenFrom(ctx), o.opts.Now()); err != nil {
		o.opts.Logger.Warn("Checkout precondition failed", zap.Error(err))
		return o.fail(domain.NewCheckoutError(domain.ErrorTypeServer, "Please sign in to place your order."))
	}

	cart, err := o.cart.Snapshot(ctx, o.sessionID)
	if err != nil {
		o.opts.Logger.Error("Failed to load cart for checkout", zap.Error(err))
		return o.fail(apiFailure(err, domain.ErrorTypeServer))
	}
	if cart.IsEmpty() {
		return o.fail(domain.NewCheckoutError(domain.ErrorTypeValidation, "Your cart is empty."))
	}

	req := ports.CreateOrderRequest{
		ShippingAddress: form,
		PaymentMethod:   method,
		Items:           cart.Items,
		IdempotencyKey:  o.opts.NewKey(),
	}
	if cart.Coupon != nil {
		req.CouponCode = cart.Coupon.Code
	}

	order, err := o.api.CreateOrder(ctx, req)
	if err != nil {
		o.opts.Logger.Error("Failed to create order",
			zap.String("payment_method", string(method)),
			zap.Error(err),
		)
		cause := domain.NewCheckoutError(domain.ErrorTypeServer, messageOr(err, "Failed to create order. Please try again."))
		return o.fail(cause)
	}
	if order.Total.IsZero() {
		order.Total = cart.Total
	}

	o.mu.Lock()
	o.state.Order = order
	o.touch()
	o.mu.Unlock()

	o.opts.Logger.Info("Order created",
		zap.String("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.String("payment_method", string(method)),
	)

	if method == domain.PaymentMethodCOD {
		o.clearCart(ctx, order.ID)
		o.mu.Lock()
		defer o.mu.Unlock()
		if err := o.state.Transition(domain.StatusCompleted); err != nil {
			o.opts.Logger.Error("Unexpected checkout state", zap.Error(err))
		}
		o.touch()
		return o.viewLocked()
	}

	o.mu.Lock()
	if err := o.state.Transition(domain.StatusProcessingPayment); err != nil {
		o.mu.Unlock()
		o.opts.Logger.Error("Unexpected checkout state", zap.Error(err))
		return o.View()
	}
	o.mu.Unlock()
	return o.processPayment(ctx)
}

// processPayment runs with the state already in processing_payment.
func (o *Orchestrator) processPayment(ctx context.Context) View {
	o.mu.Lock()
	order := *o.state.Order
	widgetReady := o.state.WidgetReady
	o.mu.Unlock()

	if !widgetReady {
		if err := o.widget.Load(ctx); err != nil {
			o.opts.Logger.Error("Failed to load payment widget", zap.Error(err))
			return o.fail(domain.NewCheckoutError(domain.ErrorTypeNetwork, "Unable to load the payment gateway. Please check your connection and try again."))
		}
		o.mu.Lock()
		o.state.WidgetReady = true
		o.mu.Unlock()
	}

	session, err := o.api.InitializePayment(ctx, order.ID)
	if err != nil {
		o.opts.Logger.Error("Failed to initialize payment",
			zap.String("order_id", order.ID),
			zap.Error(err),
		)
		return o.fail(apiFailure(err, domain.ErrorTypeServer))
	}

	if session.Amount == 0 {
		session.Amount = domain.ToMinorUnits(order.Total)
	}
	if session.Currency == "" {
		session.Currency = o.cfg.Currency
	}
	if session.KeyID == "" {
		session.KeyID = o.cfg.KeyID
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.state.Payment = session
	o.touch()
	return o.viewLocked()
}

func (o *Orchestrator) pendingOrder() (domain.OrderRef, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state.Status != domain.StatusProcessingPayment || o.state.Order == nil {
		return domain.OrderRef{}, domain.ErrNoPendingPayment
	}
	return *o.state.Order, nil
}

// settleableOrder returns the order a gateway success may settle: one with a
// payment in flight, or one whose payment failed but whose widget may still be open.
func (o *Orchestrator) settleableOrder() (domain.OrderRef, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state.Order == nil {
		return domain.OrderRef{}, domain.ErrNoPendingPayment
	}
	switch {
	case o.state.Status == domain.StatusProcessingPayment,
		o.state.Status == domain.StatusFailed && o.state.Payment != nil && !o.state.SupportRequired:
		return *o.state.Order, nil
	}
	return domain.OrderRef{}, domain.ErrNoPendingPayment
}

func (o *Orchestrator) clearCart(ctx context.Context, orderID string) {
	if err := o.cart.Clear(ctx, o.sessionID); err != nil {
		o.opts.Logger.Warn("Failed to clear cart after order",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
	}
}

func (o *Orchestrator) fail(cause *domain.CheckoutError) View {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failLocked(cause)
	return o.viewLocked()
}

func (o *Orchestrator) failLocked(cause *domain.CheckoutError) {
	if err := o.state.Fail(cause, o.opts.Now()); err != nil {
		o.opts.Logger.Error("Unexpected checkout state", zap.Error(err))
		return
	}
	o.touch()
}

// retryGuard must be called with mu held.
func (o *Orchestrator) retryGuard() error {
	switch {
	case o.state.Status != domain.StatusFailed, o.state.SupportRequired:
		return domain.ErrRetryUnavailable
	case o.state.Exhausted(o.cfg.MaxRetries):
		return domain.ErrRetriesExhausted
	}
	return nil
}

func (o *Orchestrator) touch() {
	o.state.UpdatedAt = o.opts.Now()
}

// apiFailure maps an API error to a checkout error, keeping network problems distinct.
func apiFailure(err error, fallback domain.ErrorType) *domain.CheckoutError {
	if apiclient.KindOf(err) == apiclient.KindNetwork {
		return domain.NewCheckoutError(domain.ErrorTypeNetwork, domain.DefaultMessage(domain.ErrorTypeNetwork))
	}
	return domain.NewCheckoutError(fallback, messageOr(err, domain.DefaultMessage(fallback)))
}

func messageOr(err error, fallback string) string {
	var apiErr *apiclient.Error
	if errors.As(err, &apiErr) && apiErr.Kind == apiclient.KindRejected && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
