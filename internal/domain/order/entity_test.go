// internal/domain/order/entity_test.go
package order

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderNumber(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^ORD-20260314-\d{5}$`)

	for i := 0; i < 100; i++ {
		num := GenerateOrderNumber(now)
		assert.Regexp(t, pattern, num)
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusPaymentFailed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusShipped, false},
		{StatusPaymentFailed, StatusConfirmed, true}, // retried payment succeeds
		{StatusConfirmed, StatusProcessing, true},
		{StatusConfirmed, StatusPending, false},
		{StatusProcessing, StatusShipped, true},
		{StatusShipped, StatusDelivered, true},
		{StatusShipped, StatusCancelled, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusConfirmed, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestOrderIsPaid(t *testing.T) {
	assert.False(t, (&Order{PaymentStatus: PaymentStatusPending}).IsPaid())
	assert.False(t, (&Order{PaymentStatus: PaymentStatusFailed}).IsPaid())
	assert.True(t, (&Order{PaymentStatus: PaymentStatusCompleted}).IsPaid())
}

func TestOrderPaidWith(t *testing.T) {
	paid := &Order{
		PaymentStatus:     PaymentStatusCompleted,
		RazorpayPaymentID: "pay_abc123",
	}

	assert.True(t, paid.PaidWith("pay_abc123"), "replaying the settling payment is recognized")
	assert.False(t, paid.PaidWith("pay_other"), "a different payment id does not match")

	unpaid := &Order{
		PaymentStatus:     PaymentStatusPending,
		RazorpayPaymentID: "pay_abc123",
	}
	assert.False(t, unpaid.PaidWith("pay_abc123"), "an unpaid order matches nothing")
}
