// internal/domain/payment/gateway.go
package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/aditya-prabhakar-13/Alcher-Store-26/internal/config"
)

// Gateway is a thin Razorpay Orders API client
type Gateway struct {
	keyID     string
	keySecret string
	baseURL   string
	client    *http.Client
}

// NewGateway creates a new Razorpay gateway client
func NewGateway(cfg *config.Config) *Gateway {
	return &Gateway{
		keyID:     cfg.Razorpay.KeyID,
		keySecret: cfg.Razorpay.KeySecret,
		baseURL:   cfg.Razorpay.BaseURL,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// GatewayOrder is the gateway-side order created for a payment
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"` // paise
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// CreateOrder creates a gateway order for the given amount in paise
func (g *Gateway) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (*GatewayOrder, error) {
	payload := map[string]interface{}{
		"amount":   amountPaise,
		"currency": currency,
		"receipt":  receipt,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal gateway request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.keyID, g.keySecret)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error struct {
				Description string `json:"description"`
			} `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return nil, fmt.Errorf("gateway returned %d: %s", resp.StatusCode, apiErr.Error.Description)
	}

	var gw GatewayOrder
	if err := json.NewDecoder(resp.Body).Decode(&gw); err != nil {
		return nil, fmt.Errorf("failed to decode gateway response: %w", err)
	}
	return &gw, nil
}

// ComputeSignature produces the handshake signature: HMAC-SHA256 over
// "<gateway order id>|<payment id>" with the key secret, hex encoded.
func ComputeSignature(secret, gatewayOrderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a handshake signature in constant time
func VerifySignature(secret, gatewayOrderID, paymentID, signature string) bool {
	expected := ComputeSignature(secret, gatewayOrderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// MockGatewayOrderID fabricates a gateway order id for simulated payments.
// Nanosecond precision keeps back-to-back intents from colliding.
func MockGatewayOrderID(now time.Time) string {
	return fmt.Sprintf("mock_order_%d", now.UnixNano())
}

// IsMockGatewayOrder reports whether a gateway order id was fabricated
func IsMockGatewayOrder(id string) bool {
	return len(id) > 11 && id[:11] == "mock_order_"
}
