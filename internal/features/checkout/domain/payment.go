package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ToMinorUnits converts a major-unit amount (rupees) to minor units (paise).
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

// ClassifyGatewayFailure maps a widget failure code and reason to an ErrorType.
func ClassifyGatewayFailure(code, reason string) ErrorType {
	if strings.EqualFold(reason, "payment_cancelled") {
		return ErrorTypeUserCancelled
	}
	switch strings.ToUpper(code) {
	case "BAD_REQUEST_ERROR":
		return ErrorTypePayment
	case "GATEWAY_ERROR", "SERVER_ERROR":
		return ErrorTypeServer
	case "NETWORK_ERROR":
		return ErrorTypeNetwork
	default:
		return ErrorTypePayment
	}
}

// DefaultMessage is the text shown for t when no better description is available.
func DefaultMessage(t ErrorType) string {
	switch t {
	case ErrorTypeNetwork:
		return "Network error. Please check your connection and try again."
	case ErrorTypeServer:
		return "Something went wrong on our side. Please try again."
	case ErrorTypeUserCancelled:
		return "Payment was cancelled. Your order has been saved, you can try again."
	case ErrorTypeValidation:
		return "Please check your details and try again."
	default:
		return "Payment failed. Please try again or use a different payment method."
	}
}
