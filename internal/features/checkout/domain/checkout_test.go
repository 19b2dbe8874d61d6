package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusIdle, StatusCreatingOrder, true},
		{StatusIdle, StatusProcessingPayment, false},
		{StatusIdle, StatusCompleted, false},
		{StatusCreatingOrder, StatusCompleted, true},
		{StatusCreatingOrder, StatusProcessingPayment, true},
		{StatusCreatingOrder, StatusFailed, true},
		{StatusProcessingPayment, StatusCompleted, true},
		{StatusProcessingPayment, StatusFailed, true},
		{StatusProcessingPayment, StatusIdle, false},
		{StatusFailed, StatusCreatingOrder, true},
		{StatusFailed, StatusProcessingPayment, true},
		{StatusFailed, StatusIdle, true},
		{StatusFailed, StatusCompleted, true},
		{StatusCompleted, StatusIdle, true},
		{StatusCompleted, StatusFailed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestState_Transition(t *testing.T) {
	s := NewState()

	err := s.Transition(StatusCompleted)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StatusIdle, s.Status)

	require.NoError(t, s.Transition(StatusCreatingOrder))
	assert.Equal(t, StatusCreatingOrder, s.Status)
}

func TestState_FailCountsRetries(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	s := &State{Status: StatusProcessingPayment}

	require.NoError(t, s.Fail(NewCheckoutError(ErrorTypeUserCancelled, "closed"), now))
	assert.Equal(t, 0, s.RetryCount)
	assert.True(t, s.RetryAvailable(3))

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Transition(StatusProcessingPayment))
		require.NoError(t, s.Fail(NewCheckoutError(ErrorTypePayment, "declined"), now))
	}

	assert.Equal(t, 3, s.RetryCount)
	assert.False(t, s.RetryAvailable(3))
	assert.Equal(t, TerminalNotice, s.Notice(3))
}

func TestState_SupportRequiredDisablesRetry(t *testing.T) {
	s := &State{Status: StatusFailed, SupportRequired: true, RetryCount: 1}

	assert.False(t, s.RetryAvailable(3))
	assert.Empty(t, s.Notice(3))
}

func TestState_RequireSupport(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	cause := NewCheckoutError(ErrorTypeServer, UnverifiedPaymentMessage)

	t.Run("FromProcessingPayment", func(t *testing.T) {
		s := &State{Status: StatusProcessingPayment}

		require.NoError(t, s.RequireSupport(cause, now))
		assert.Equal(t, StatusFailed, s.Status)
		assert.True(t, s.SupportRequired)
		assert.Equal(t, cause, s.Error)
		assert.False(t, s.RetryAvailable(3))
	})

	t.Run("AlreadyFailed", func(t *testing.T) {
		s := &State{Status: StatusFailed, RetryCount: 2, Error: NewCheckoutError(ErrorTypePayment, "declined")}

		require.NoError(t, s.RequireSupport(cause, now))
		assert.Equal(t, StatusFailed, s.Status)
		assert.Equal(t, 2, s.RetryCount)
		assert.Equal(t, cause, s.Error)
		assert.Equal(t, now, s.ErrorAt)
	})

	t.Run("Idle", func(t *testing.T) {
		s := NewState()

		assert.ErrorIs(t, s.RequireSupport(cause, now), ErrInvalidTransition)
		assert.False(t, s.SupportRequired)
	})
}

func TestState_ErrorVisible(t *testing.T) {
	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	s := &State{Status: StatusFailed, Error: NewCheckoutError(ErrorTypeNetwork, "offline"), ErrorAt: at}

	assert.NotNil(t, s.ErrorVisible(at.Add(9*time.Second), 10*time.Second))
	assert.Nil(t, s.ErrorVisible(at.Add(10*time.Second), 10*time.Second))
	assert.Equal(t, StatusFailed, s.Status)
}

func TestState_Reset(t *testing.T) {
	s := &State{
		Status:      StatusCompleted,
		Order:       &OrderRef{ID: "o1"},
		WidgetReady: true,
		RetryCount:  2,
	}

	require.NoError(t, s.Reset())
	assert.Equal(t, StatusIdle, s.Status)
	assert.Nil(t, s.Order)
	assert.Zero(t, s.RetryCount)
	assert.True(t, s.WidgetReady)

	assert.ErrorIs(t, (&State{Status: StatusCreatingOrder}).Reset(), ErrInvalidTransition)
}

func TestCheckoutError_Error(t *testing.T) {
	err := NewCheckoutError(ErrorTypeServer, "boom")
	assert.Equal(t, "checkout server error: boom", err.Error())
}
