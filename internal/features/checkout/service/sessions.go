package service

import (
	"context"
	"fmt"

	"storefront-gateway/internal/features/checkout/ports"
)

// Sessions builds an Orchestrator per shopper session and persists it afterwards.
type Sessions struct {
	api    ports.CheckoutAPI
	widget ports.PaymentWidget
	cart   ports.CartSource
	repo   ports.CheckoutRepository
	cfg    Config
	opts   Options
}

// NewSessions creates a new Sessions.
func NewSessions(api ports.CheckoutAPI, widget ports.PaymentWidget, cart ports.CartSource, repo ports.CheckoutRepository, cfg Config, opts Options) *Sessions {
	return &Sessions{
		api:    api,
		widget: widget,
		cart:   cart,
		repo:   repo,
		cfg:    cfg,
		opts:   opts,
	}
}

// Load returns the orchestrator for sessionID, seeded from persisted state.
func (m *Sessions) Load(ctx context.Context, sessionID string) (*Orchestrator, error) {
	state, err := m.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load checkout state: %w", err)
	}
	return NewOrchestrator(m.api, m.widget, m.cart, sessionID, state, m.cfg, m.opts), nil
}

// Persist saves the orchestrator's state for sessionID.
func (m *Sessions) Persist(ctx context.Context, sessionID string, o *Orchestrator) error {
	state := o.State()
	if err := m.repo.Save(ctx, sessionID, &state); err != nil {
		return fmt.Errorf("service: failed to save checkout state: %w", err)
	}
	return nil
}

// Discard drops the persisted checkout so the next Load starts from idle.
func (m *Sessions) Discard(ctx context.Context, sessionID string) error {
	if err := m.repo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("service: failed to discard checkout state: %w", err)
	}
	return nil
}
