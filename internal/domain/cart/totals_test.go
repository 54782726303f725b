// internal/domain/cart/totals_test.go
package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssembleTotals(t *testing.T) {
	tests := []struct {
		name         string
		items        []CartItem
		wantCount    int
		wantSubtotal int64
	}{
		{
			name:      "empty cart",
			items:     nil,
			wantCount: 0, wantSubtotal: 0,
		},
		{
			name: "single line",
			items: []CartItem{
				{SKU: "ALCH001", Quantity: 2, Price: 250},
			},
			wantCount: 2, wantSubtotal: 500,
		},
		{
			name: "multiple lines",
			items: []CartItem{
				{SKU: "ALCH001", Quantity: 2, Price: 250},
				{SKU: "ALCH005", Quantity: 1, Price: 99},
				{SKU: "ALCH003", Quantity: 3, Price: 120},
			},
			wantCount: 6, wantSubtotal: 959,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := assemble(tt.items)
			assert.Equal(t, tt.wantCount, cart.ItemCount)
			assert.Equal(t, tt.wantSubtotal, cart.Subtotal)
			assert.NotNil(t, cart.Items)
		})
	}
}

func TestCartItemLineTotal(t *testing.T) {
	item := CartItem{Quantity: 4, Price: 299}
	assert.Equal(t, int64(1196), item.LineTotal())
}
