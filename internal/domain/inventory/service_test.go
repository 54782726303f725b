// internal/domain/inventory/service_test.go
package inventory

import (
	"testing"

	"github.com/aditya-prabhakar-13/Alcher-Store-26/internal/domain/product"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sizedTee() *product.Product {
	return &product.Product{
		ID:      1,
		SKU:     "ALCH001",
		Name:    "Festival Tee",
		HasSize: true,
		Variants: []product.ProductVariant{
			{ID: 1, ProductID: 1, Size: "S", Stock: 3},
			{ID: 2, ProductID: 1, Size: "M", Stock: 0},
			{ID: 3, ProductID: 1, Size: "L", Stock: 10},
		},
	}
}

func flatPoster() *product.Product {
	return &product.Product{
		ID:   2,
		SKU:  "ALCH005",
		Name: "Poster",
		Variants: []product.ProductVariant{
			{ID: 4, ProductID: 2, Stock: 5},
		},
	}
}

func TestCheckAvailability(t *testing.T) {
	svc := NewService(nil, nil)

	tests := []struct {
		name          string
		product       *product.Product
		size, color   string
		quantity      int
		wantOK        bool
		wantAvailable int
		wantErr       error
	}{
		{
			name:    "sized product without size is rejected",
			product: sizedTee(),
			size:    "", quantity: 1,
			wantErr: ErrVariantRequired,
		},
		{
			name:    "unknown size treated as out of stock",
			product: sizedTee(),
			size:    "XXL", quantity: 1,
			wantOK: false, wantAvailable: 0,
		},
		{
			name: "unknown colour treated as out of stock",
			product: &product.Product{
				ID: 3, SKU: "ALCH009", HasColor: true,
				Variants: []product.ProductVariant{{ID: 9, ProductID: 3, Color: "black", Stock: 8}},
			},
			color: "neon", quantity: 1,
			wantOK: false, wantAvailable: 0,
		},
		{
			name:    "enough stock",
			product: sizedTee(),
			size:    "S", quantity: 3,
			wantOK: true, wantAvailable: 3,
		},
		{
			name:    "not enough stock reports availability",
			product: sizedTee(),
			size:    "S", quantity: 4,
			wantOK: false, wantAvailable: 3,
		},
		{
			name:    "zero stock variant",
			product: sizedTee(),
			size:    "M", quantity: 1,
			wantOK: false, wantAvailable: 0,
		},
		{
			name:    "flat product ignores discriminators",
			product: flatPoster(),
			size:    "L", color: "red", quantity: 2,
			wantOK: true, wantAvailable: 5,
		},
		{
			name:     "flat product plain request",
			product:  flatPoster(),
			quantity: 5,
			wantOK:   true, wantAvailable: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.CheckAvailability(tt.product, tt.size, tt.color, tt.quantity)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, got.OK)
			assert.Equal(t, tt.wantAvailable, got.Available)
		})
	}
}

func TestCheckAvailabilityRejectsNonPositiveQuantity(t *testing.T) {
	svc := NewService(nil, nil)

	_, err := svc.CheckAvailability(flatPoster(), "", "", 0)
	assert.Error(t, err)

	_, err = svc.CheckAvailability(flatPoster(), "", "", -2)
	assert.Error(t, err)
}
