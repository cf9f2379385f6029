package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/your-org/tireshop-backend/internal/domain/pricing"
)

func TestBrandAssociationIsOptional(t *testing.T) {
	brand := Brand{ID: 3, Name: "Michelin", Slug: "michelin", IsActive: true}

	branded := Product{
		SKU:         "TIRE-MICH-PS4-22545R17",
		Name:        "Michelin Pilot Sport 4 225/45R17",
		ProductType: pricing.ProductTypeTire,
		Price:       18999,
		BrandID:     &brand.ID,
	}
	unbranded := Product{
		SKU:         "ACC-VALVE-CAPS",
		Name:        "Valve stem caps",
		ProductType: pricing.ProductTypeProduct,
		Price:       499,
	}

	if assert.NotNil(t, branded.BrandID) {
		assert.Equal(t, brand.ID, *branded.BrandID)
	}
	assert.Nil(t, unbranded.BrandID)
}

func TestIsInStock(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		want    bool
	}{
		{"tracked with stock", Product{TrackQuantity: true, Quantity: 4}, true},
		{"tracked and sold out", Product{TrackQuantity: true, Quantity: 0}, false},
		{"untracked always in stock", Product{TrackQuantity: false, Quantity: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.product.IsInStock())
		})
	}
}

func TestGetDiscountPercentage(t *testing.T) {
	assert.Equal(t, 13, (&Product{Price: 18999, ComparePrice: 21999}).GetDiscountPercentage())
	assert.Equal(t, 0, (&Product{Price: 18999}).GetDiscountPercentage())
	assert.Equal(t, 0, (&Product{Price: 21999, ComparePrice: 18999}).GetDiscountPercentage())
}

func TestFindServiceOptions(t *testing.T) {
	p := Product{
		ServiceOptions: []ServiceOption{
			{ID: 1, Name: "Road hazard protection", Price: 1200},
			{ID: 2, Name: "Nitrogen fill", Price: 500},
		},
	}

	addons, ok := p.FindServiceOptions([]uint{2, 1})
	assert.True(t, ok)
	assert.Equal(t, []pricing.AddonService{
		{Name: "Nitrogen fill", Price: 500},
		{Name: "Road hazard protection", Price: 1200},
	}, addons)

	_, ok = p.FindServiceOptions([]uint{99})
	assert.False(t, ok, "unknown option IDs must be rejected")

	addons, ok = p.FindServiceOptions(nil)
	assert.True(t, ok)
	assert.Empty(t, addons)
}
