package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidTransition is returned when a status change is not allowed from the current status.
	ErrInvalidTransition = errors.New("invalid checkout status transition")
	// ErrRetriesExhausted is returned by Retry once the retry budget is spent.
	ErrRetriesExhausted = errors.New("checkout retries exhausted")
	// ErrRetryUnavailable is returned by Retry when the checkout is not in a retryable state.
	ErrRetryUnavailable = errors.New("checkout cannot be retried")
	// ErrInvalidPaymentMethod is returned for a payment method other than cod or online.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	// ErrNoPendingPayment is returned when a gateway callback arrives with no payment in flight.
	ErrNoPendingPayment = errors.New("no payment in progress")
)

// TerminalNotice is shown once no further retries are offered.
const TerminalNotice = "We could not complete your order. Please refresh the page or contact support."

// UnverifiedPaymentMessage is shown when the gateway reported success but the store could not confirm it.
const UnverifiedPaymentMessage = "Payment succeeded but could not be verified. Please contact support with your order number."

// Status is the checkout state machine position.
type Status string

const (
	StatusIdle              Status = "idle"
	StatusCreatingOrder     Status = "creating_order"
	StatusProcessingPayment Status = "processing_payment"
	StatusCompleted         Status = "completed"
	StatusFailed            Status = "failed"
)

var transitions = map[Status][]Status{
	StatusIdle:              {StatusCreatingOrder},
	StatusCreatingOrder:     {StatusCompleted, StatusProcessingPayment, StatusFailed},
	StatusProcessingPayment: {StatusCompleted, StatusFailed},
	StatusFailed:            {StatusCreatingOrder, StatusProcessingPayment, StatusCompleted, StatusIdle},
	StatusCompleted:         {StatusIdle},
}

// CanTransition reports whether the machine may move from s to next.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PaymentMethod is how the shopper pays.
type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "cod"
	PaymentMethodOnline PaymentMethod = "online"
)

// Valid reports whether m is a supported payment method.
func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCOD || m == PaymentMethodOnline
}

// ErrorType classifies a checkout failure.
type ErrorType string

const (
	ErrorTypeNetwork       ErrorType = "network"
	ErrorTypePayment       ErrorType = "payment"
	ErrorTypeValidation    ErrorType = "validation"
	ErrorTypeServer        ErrorType = "server"
	ErrorTypeUserCancelled ErrorType = "user_cancelled"
)

// CheckoutError is the typed failure carried by a failed checkout.
type CheckoutError struct {
	Type    ErrorType         `json:"type"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func (e *CheckoutError) Error() string {
	return fmt.Sprintf("checkout %s error: %s", e.Type, e.Message)
}

// NewCheckoutError creates a CheckoutError.
func NewCheckoutError(t ErrorType, msg string) *CheckoutError {
	return &CheckoutError{Type: t, Message: msg}
}

// OrderRef identifies the order created for this checkout.
type OrderRef struct {
	ID          string          `json:"id"`
	OrderNumber string          `json:"order_number"`
	Total       decimal.Decimal `json:"total"`
	Currency    string          `json:"currency,omitempty"`
}

// PaymentSession is the gateway session opened for an order.
type PaymentSession struct {
	// GatewayOrderID is the gateway's reference for the payment.
	GatewayOrderID string `json:"gateway_order_id"`
	// Amount is in minor units.
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"key_id,omitempty"`
}

// State is one session's checkout.
type State struct {
	Status Status           `json:"status"`
	Method PaymentMethod    `json:"method,omitempty"`
	Form   *ShippingAddress `json:"form,omitempty"`
	Order  *OrderRef        `json:"order,omitempty"`

	Payment *PaymentSession `json:"payment,omitempty"`
	// WidgetReady is set once the hosted widget script has been loaded for the session.
	WidgetReady bool `json:"widget_ready"`

	Error   *CheckoutError `json:"error,omitempty"`
	ErrorAt time.Time      `json:"error_at,omitempty"`
	// RetryCount counts failures other than user cancellations.
	RetryCount int `json:"retry_count"`
	// SupportRequired marks a payment that may have been captured but was not verified.
	SupportRequired bool `json:"support_required"`

	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// NewState returns an idle checkout.
func NewState() *State {
	return &State{Status: StatusIdle}
}

// Transition moves the machine to next.
func (s *State) Transition(next Status) error {
	if !s.Status.CanTransition(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.Status, next)
	}
	s.Status = next
	return nil
}

// Fail moves the checkout to failed and records cause. Failures other than user
// cancellation consume one retry.
func (s *State) Fail(cause *CheckoutError, now time.Time) error {
	if err := s.Transition(StatusFailed); err != nil {
		return err
	}
	s.Error = cause
	s.ErrorAt = now
	if cause.Type != ErrorTypeUserCancelled {
		s.RetryCount++
	}
	return nil
}

// RequireSupport records a failure only support can resolve and disables retry.
// A checkout that has already failed keeps its status and retry count.
func (s *State) RequireSupport(cause *CheckoutError, now time.Time) error {
	if s.Status == StatusFailed {
		s.Error = cause
		s.ErrorAt = now
	} else if err := s.Fail(cause, now); err != nil {
		return err
	}
	s.SupportRequired = true
	return nil
}

// ClearError drops the recorded failure.
func (s *State) ClearError() {
	s.Error = nil
	s.ErrorAt = time.Time{}
}

// RetryAvailable reports whether a "Try Again" action may be offered.
func (s *State) RetryAvailable(maxRetries int) bool {
	return s.Status == StatusFailed && !s.SupportRequired && s.RetryCount < maxRetries
}

// Exhausted reports whether the retry budget is spent.
func (s *State) Exhausted(maxRetries int) bool {
	return s.Status == StatusFailed && !s.SupportRequired && s.RetryCount >= maxRetries
}

// Notice is the terminal message shown once retries are exhausted, or "".
func (s *State) Notice(maxRetries int) string {
	if s.Exhausted(maxRetries) {
		return TerminalNotice
	}
	return ""
}

// ErrorVisible returns the failure to display, or nil once the banner has expired.
// The failed status itself does not expire.
func (s *State) ErrorVisible(now time.Time, ttl time.Duration) *CheckoutError {
	if s.Error == nil {
		return nil
	}
	if ttl > 0 && now.Sub(s.ErrorAt) >= ttl {
		return nil
	}
	return s.Error
}

// Reset returns a completed or failed checkout to idle. The widget stays loaded.
func (s *State) Reset() error {
	if err := s.Transition(StatusIdle); err != nil {
		return err
	}
	widget := s.WidgetReady
	*s = State{Status: StatusIdle, WidgetReady: widget}
	return nil
}
