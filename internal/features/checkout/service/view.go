package service

import (
	"storefront-gateway/internal/features/checkout/domain"
)

// WidgetPrefill pre-populates the hosted widget's contact fields.
type WidgetPrefill struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

// WidgetOptions is everything the browser needs to open the hosted payment widget.
type WidgetOptions struct {
	ScriptURL   string            `json:"script_url"`
	Key         string            `json:"key"`
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	OrderID     string            `json:"order_id"`
	Prefill     WidgetPrefill     `json:"prefill"`
	Notes       map[string]string `json:"notes,omitempty"`
}

// View is the checkout as rendered to the browser.
type View struct {
	Status domain.Status        `json:"status"`
	Method domain.PaymentMethod `json:"method,omitempty"`
	Order  *domain.OrderRef     `json:"order,omitempty"`
	// Widget is set while a payment is waiting for the shopper.
	Widget *WidgetOptions `json:"widget,omitempty"`
	// RedirectAfterMs is set once a COD order completes.
	RedirectAfterMs int64 `json:"redirect_after_ms,omitempty"`

	Error           *domain.CheckoutError `json:"error,omitempty"`
	RetryAvailable  bool                  `json:"retry_available"`
	RetryCount      int                   `json:"retry_count"`
	MaxRetries      int                   `json:"max_retries"`
	SupportRequired bool                  `json:"support_required"`
	Notice          string                `json:"notice,omitempty"`
}

// View renders the current state.
func (o *Orchestrator) View() View {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.viewLocked()
}

func (o *Orchestrator) viewLocked() View {
	s := &o.state
	v := View{
		Status:          s.Status,
		Method:          s.Method,
		Order:           s.Order,
		Error:           s.ErrorVisible(o.opts.Now(), o.cfg.ErrorTTL),
		RetryAvailable:  s.RetryAvailable(o.cfg.MaxRetries),
		RetryCount:      s.RetryCount,
		MaxRetries:      o.cfg.MaxRetries,
		SupportRequired: s.SupportRequired,
		Notice:          s.Notice(o.cfg.MaxRetries),
	}

	if s.Status == domain.StatusCompleted && s.Method == domain.PaymentMethodCOD {
		v.RedirectAfterMs = o.cfg.RedirectDelay.Milliseconds()
	}

	if s.Status == domain.StatusProcessingPayment && s.Payment != nil && s.Order != nil {
		v.Widget = o.widgetOptions()
	}
	return v
}

func (o *Orchestrator) widgetOptions() *WidgetOptions {
	s := &o.state
	opts := &WidgetOptions{
		ScriptURL:   o.widget.ScriptURL(),
		Key:         s.Payment.KeyID,
		Amount:      s.Payment.Amount,
		Currency:    s.Payment.Currency,
		Name:        o.cfg.StoreName,
		Description: "Order " + s.Order.OrderNumber,
		OrderID:     s.Payment.GatewayOrderID,
		Notes:       map[string]string{"order_id": s.Order.ID},
	}
	if s.Form != nil {
		opts.Prefill = WidgetPrefill{
			Name:    s.Form.FullName,
			Email:   s.Form.Email,
			Contact: s.Form.Phone,
		}
	}
	return opts
}
