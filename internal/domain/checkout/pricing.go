// internal/domain/checkout/pricing.go
package checkout

import "math"

// Pricing holds the storefront pricing rules. Amounts are whole rupees.
type Pricing struct {
	FreeShippingThreshold int64
	FlatShippingRate      int64
	TaxRate               float64
}

// Totals is the full price breakdown of an order
type Totals struct {
	Subtotal     int64 `json:"subtotal"`
	ShippingCost int64 `json:"shipping_cost"`
	TaxAmount    int64 `json:"tax_amount"`
	TotalAmount  int64 `json:"total_amount"`
}

// ShippingCost returns the flat rate, waived at or above the free-shipping
// threshold.
func (p Pricing) ShippingCost(subtotal int64) int64 {
	if subtotal >= p.FreeShippingThreshold {
		return 0
	}
	return p.FlatShippingRate
}

// TaxAmount returns the tax on the subtotal, rounded to the nearest rupee.
// Tax applies to the subtotal only, not shipping.
func (p Pricing) TaxAmount(subtotal int64) int64 {
	return int64(math.Round(float64(subtotal) * p.TaxRate))
}

// Compute builds the full price breakdown for a subtotal
func (p Pricing) Compute(subtotal int64) Totals {
	shipping := p.ShippingCost(subtotal)
	tax := p.TaxAmount(subtotal)
	return Totals{
		Subtotal:     subtotal,
		ShippingCost: shipping,
		TaxAmount:    tax,
		TotalAmount:  subtotal + shipping + tax,
	}
}
