package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(112410), ToMinorUnits(decimal.RequireFromString("1124.10")))
	assert.Equal(t, int64(50), ToMinorUnits(decimal.RequireFromString("0.499")))
	assert.Equal(t, int64(0), ToMinorUnits(decimal.Zero))
}

func TestClassifyGatewayFailure(t *testing.T) {
	tests := []struct {
		code, reason string
		want         ErrorType
	}{
		{"BAD_REQUEST_ERROR", "", ErrorTypePayment},
		{"GATEWAY_ERROR", "", ErrorTypeServer},
		{"SERVER_ERROR", "", ErrorTypeServer},
		{"NETWORK_ERROR", "", ErrorTypeNetwork},
		{"BAD_REQUEST_ERROR", "payment_cancelled", ErrorTypeUserCancelled},
		{"SOMETHING_NEW", "", ErrorTypePayment},
		{"", "", ErrorTypePayment},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyGatewayFailure(tt.code, tt.reason), tt.code+"/"+tt.reason)
	}
}
