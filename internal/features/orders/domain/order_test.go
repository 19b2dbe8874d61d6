package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderStatus(t *testing.T) {
	tests := map[string]OrderStatus{
		"pending":    OrderStatusPending,
		"CONFIRMED":  OrderStatusConfirmed,
		" shipped ":  OrderStatusShipped,
		"delivered":  OrderStatusDelivered,
		"cancelled":  OrderStatusCancelled,
		"canceled":   OrderStatusCancelled,
		"on-hold":    OrderStatusPending,
		"":           OrderStatusPending,
		"processing": OrderStatusProcessing,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseOrderStatus(in), in)
	}
}

func TestOrderStatus_CanTransition(t *testing.T) {
	assert.True(t, OrderStatusPending.CanTransition(OrderStatusConfirmed))
	assert.True(t, OrderStatusConfirmed.CanTransition(OrderStatusProcessing))
	assert.True(t, OrderStatusProcessing.CanTransition(OrderStatusShipped))
	assert.True(t, OrderStatusShipped.CanTransition(OrderStatusDelivered))
	assert.True(t, OrderStatusPending.CanTransition(OrderStatusProcessing), "confirmation can be skipped")

	assert.False(t, OrderStatusPending.CanTransition(OrderStatusShipped))
	assert.False(t, OrderStatusShipped.CanTransition(OrderStatusProcessing))
	assert.False(t, OrderStatusConfirmed.CanTransition(OrderStatusShipped))
	assert.False(t, OrderStatusProcessing.CanTransition(OrderStatusPending))
	assert.False(t, OrderStatusDelivered.CanTransition(OrderStatusCancelled))
	assert.False(t, OrderStatusCancelled.CanTransition(OrderStatusPending))

	for _, s := range []OrderStatus{OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing, OrderStatusShipped} {
		assert.True(t, s.CanTransition(OrderStatusCancelled), s)
		assert.True(t, s.IsCancellable(), s)
	}
	assert.False(t, OrderStatusDelivered.IsCancellable())
	assert.False(t, OrderStatusCancelled.IsCancellable())
}

func TestParsePaymentStatus(t *testing.T) {
	assert.Equal(t, PaymentStatusPaid, ParsePaymentStatus("PAID"))
	assert.Equal(t, PaymentStatusFailed, ParsePaymentStatus("failed"))
	assert.Equal(t, PaymentStatusPending, ParsePaymentStatus("authorized"))
}

func TestOrder_MarshalJSON(t *testing.T) {
	order := Order{
		ID:            "123",
		OrderNumber:   "SF-123",
		Status:        OrderStatusShipped,
		PaymentStatus: PaymentStatusPaid,
		Total:         decimal.RequireFromString("999.00"),
		Items:         []OrderItem{{ProductID: "p1", Name: "Kurta", Quantity: 1, Price: decimal.RequireFromString("999")}},
	}

	data, err := json.Marshal(order)
	require.NoError(t, err)

	jsonString := string(data)
	assert.Contains(t, jsonString, `"id":"123"`)
	assert.Contains(t, jsonString, `"status":"shipped"`)
	assert.Contains(t, jsonString, `"payment_status":"paid"`)
	assert.Contains(t, jsonString, `"total":"999"`)
	assert.Contains(t, jsonString, `"items":[{`)
}
