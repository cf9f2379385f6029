package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name string
		item LineItem
		want int64
	}{
		{
			name: "unit price only",
			item: LineItem{ProductType: ProductTypeTire, Quantity: 4, UnitPrice: 12999},
			want: 51996,
		},
		{
			name: "installation fee multiplies by quantity",
			item: LineItem{
				ProductType:     ProductTypeTire,
				Quantity:        2,
				UnitPrice:       10000,
				InstallationFee: 1500,
				AddonServices:   []AddonService{{Name: "road hazard", Price: 1000}},
			},
			want: 25000, // (100 + 15 + 10) * 2 dollars, in cents
		},
		{
			name: "multiple addons",
			item: LineItem{
				ProductType: ProductTypeWheel,
				Quantity:    1,
				UnitPrice:   24500,
				AddonServices: []AddonService{
					{Name: "balancing", Price: 1200},
					{Name: "valve stems", Price: 400},
				},
			},
			want: 26100,
		},
		{
			name: "zero price item",
			item: LineItem{ProductType: ProductTypeProduct, Quantity: 3, UnitPrice: 0},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.item.Validate())
			assert.Equal(t, tt.want, tt.item.LineTotal())
		})
	}
}

func TestLineTotalNeverBelowBasePrice(t *testing.T) {
	items := []LineItem{
		{ProductType: ProductTypeTire, Quantity: 4, UnitPrice: 9999},
		{ProductType: ProductTypeTire, Quantity: 4, UnitPrice: 9999, InstallationFee: 2000},
		{ProductType: ProductTypeWheel, Quantity: 2, UnitPrice: 15000, AddonServices: []AddonService{{Name: "coating", Price: 2500}}},
	}

	for _, item := range items {
		base := item.UnitPrice * int64(item.Quantity)
		assert.GreaterOrEqual(t, item.LineTotal(), base, "fees and addons must never reduce the total")
	}
}

func TestLineTotalDeterministic(t *testing.T) {
	item := LineItem{
		ProductType:     ProductTypeTire,
		Quantity:        3,
		UnitPrice:       8750,
		InstallationFee: 1250,
		AddonServices:   []AddonService{{Name: "disposal", Price: 500}},
	}

	first := item.LineTotal()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, item.LineTotal())
	}
}

func TestLineItemValidate(t *testing.T) {
	tests := []struct {
		name    string
		item    LineItem
		wantErr string
	}{
		{
			name:    "zero quantity",
			item:    LineItem{ProductType: ProductTypeTire, Quantity: 0, UnitPrice: 100},
			wantErr: "quantity must be positive",
		},
		{
			name:    "negative quantity",
			item:    LineItem{ProductType: ProductTypeTire, Quantity: -1, UnitPrice: 100},
			wantErr: "quantity must be positive",
		},
		{
			name:    "negative unit price",
			item:    LineItem{ProductType: ProductTypeTire, Quantity: 1, UnitPrice: -100},
			wantErr: "unit price cannot be negative",
		},
		{
			name:    "negative installation fee",
			item:    LineItem{ProductType: ProductTypeTire, Quantity: 1, UnitPrice: 100, InstallationFee: -1},
			wantErr: "installation fee cannot be negative",
		},
		{
			name:    "unknown product type",
			item:    LineItem{ProductType: "battery", Quantity: 1, UnitPrice: 100},
			wantErr: "unknown product type",
		},
		{
			name:    "negative addon price",
			item:    LineItem{ProductType: ProductTypeTire, Quantity: 1, UnitPrice: 100, AddonServices: []AddonService{{Name: "x", Price: -5}}},
			wantErr: "negative price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "129.99", FormatPrice(12999))
	assert.Equal(t, "0.00", FormatPrice(0))
	assert.Equal(t, "0.05", FormatPrice(5))
	assert.Equal(t, "1000.00", FormatPrice(100000))
}
