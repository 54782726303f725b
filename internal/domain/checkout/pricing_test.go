// internal/domain/checkout/pricing_test.go
package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func storePricing() Pricing {
	return Pricing{
		FreeShippingThreshold: 500,
		FlatShippingRate:      50,
		TaxRate:               0.18,
	}
}

func TestPricingCompute(t *testing.T) {
	p := storePricing()

	tests := []struct {
		name     string
		subtotal int64
		want     Totals
	}{
		{
			name:     "free shipping at exactly the threshold",
			subtotal: 500,
			want:     Totals{Subtotal: 500, ShippingCost: 0, TaxAmount: 90, TotalAmount: 590},
		},
		{
			name:     "flat shipping below the threshold",
			subtotal: 499,
			want:     Totals{Subtotal: 499, ShippingCost: 50, TaxAmount: 90, TotalAmount: 639},
		},
		{
			name:     "small order",
			subtotal: 99,
			want:     Totals{Subtotal: 99, ShippingCost: 50, TaxAmount: 18, TotalAmount: 167},
		},
		{
			name:     "large order",
			subtotal: 2598,
			want:     Totals{Subtotal: 2598, ShippingCost: 0, TaxAmount: 468, TotalAmount: 3066},
		},
		{
			name:     "tax rounds to nearest rupee",
			subtotal: 125, // 22.5 rounds up
			want:     Totals{Subtotal: 125, ShippingCost: 50, TaxAmount: 23, TotalAmount: 198},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Compute(tt.subtotal))
		})
	}
}

func TestPricingZeroTaxRate(t *testing.T) {
	p := Pricing{FreeShippingThreshold: 500, FlatShippingRate: 50, TaxRate: 0}
	got := p.Compute(300)
	assert.Equal(t, int64(0), got.TaxAmount)
	assert.Equal(t, int64(350), got.TotalAmount)
}

func TestValidateAddress(t *testing.T) {
	valid := AddressInput{
		Name:         "Aditya Prabhakar",
		Phone:        "9876543210",
		AddressLine1: "Hostel 5, IIT Guwahati",
		City:         "Guwahati",
		State:        "Assam",
		Pincode:      "781039",
	}

	t.Run("valid address", func(t *testing.T) {
		addr, err := validateAddress(&valid)
		assert.NoError(t, err)
		assert.Equal(t, "781039", addr.Pincode)
	})

	t.Run("missing city", func(t *testing.T) {
		in := valid
		in.City = "  "
		_, err := validateAddress(&in)
		assert.ErrorIs(t, err, ErrInvalidAddress)
	})

	t.Run("bad pincode", func(t *testing.T) {
		in := valid
		in.Pincode = "78103"
		_, err := validateAddress(&in)
		assert.ErrorIs(t, err, ErrInvalidAddress)
	})

	t.Run("alphabetic pincode", func(t *testing.T) {
		in := valid
		in.Pincode = "78103A"
		_, err := validateAddress(&in)
		assert.ErrorIs(t, err, ErrInvalidAddress)
	})
}
