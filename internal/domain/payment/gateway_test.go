// internal/domain/payment/gateway_test.go
package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeSignature(t *testing.T) {
	sig := ComputeSignature("test_secret", "order_abc123", "pay_xyz789")

	// Stable and hex encoded
	assert.Len(t, sig, 64)
	assert.Equal(t, sig, ComputeSignature("test_secret", "order_abc123", "pay_xyz789"))

	// Any input change produces a different signature
	assert.NotEqual(t, sig, ComputeSignature("other_secret", "order_abc123", "pay_xyz789"))
	assert.NotEqual(t, sig, ComputeSignature("test_secret", "order_abc124", "pay_xyz789"))
	assert.NotEqual(t, sig, ComputeSignature("test_secret", "order_abc123", "pay_xyz780"))
}

func TestVerifySignature(t *testing.T) {
	secret := "test_secret"
	orderID := "order_abc123"
	paymentID := "pay_xyz789"
	good := ComputeSignature(secret, orderID, paymentID)

	assert.True(t, VerifySignature(secret, orderID, paymentID, good))

	// Tampered signature
	tampered := good[:len(good)-1] + "0"
	if tampered == good {
		tampered = good[:len(good)-1] + "1"
	}
	assert.False(t, VerifySignature(secret, orderID, paymentID, tampered))

	// Signature for a different payment
	other := ComputeSignature(secret, orderID, "pay_other")
	assert.False(t, VerifySignature(secret, orderID, paymentID, other))

	// Empty signature
	assert.False(t, VerifySignature(secret, orderID, paymentID, ""))
}

func TestMockGatewayOrderID(t *testing.T) {
	now := time.Unix(1770000000, 0)
	id := MockGatewayOrderID(now)

	assert.Equal(t, "mock_order_1770000000000000000", id)
	assert.True(t, IsMockGatewayOrder(id))
	assert.False(t, IsMockGatewayOrder("order_abc123"))
	assert.False(t, IsMockGatewayOrder("mock_order_"))

	// Intents created within the same second still get distinct ids
	assert.NotEqual(t, id, MockGatewayOrderID(now.Add(time.Millisecond)))
}
