package cart

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/tireshop-backend/internal/domain/pricing"
	"github.com/your-org/tireshop-backend/internal/infrastructure/cache"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestCalculateTotals(t *testing.T) {
	items := []CartItemResponse{
		{
			ProductID:       1,
			ProductType:     pricing.ProductTypeTire,
			Quantity:        4,
			UnitPrice:       12999,
			InstallationFee: 1500,
			AddonServices:   []pricing.AddonService{{Name: "road hazard", Price: 1000}},
		},
		{
			ProductID:   2,
			ProductType: pricing.ProductTypeWheel,
			Quantity:    2,
			UnitPrice:   24500,
		},
	}

	totals := CalculateTotals(items)

	assert.Equal(t, 2, totals.ItemCount)
	assert.Equal(t, 6, totals.TotalQuantity)
	assert.Equal(t, int64(12999*4+24500*2), totals.SubTotal)
	assert.Equal(t, int64(1500*4), totals.InstallationTotal)
	assert.Equal(t, int64(1000*4), totals.AddonTotal)
	assert.Equal(t, totals.SubTotal+totals.InstallationTotal+totals.AddonTotal, totals.TotalAmount)
}

func TestCalculateTotalsEmptyCart(t *testing.T) {
	totals := CalculateTotals(nil)

	assert.Equal(t, 0, totals.ItemCount)
	assert.Equal(t, 0, totals.TotalQuantity)
	assert.Equal(t, int64(0), totals.TotalAmount)
}

func TestCalculateTotalsNeverBelowSubtotal(t *testing.T) {
	items := []CartItemResponse{
		{ProductType: pricing.ProductTypeTire, Quantity: 4, UnitPrice: 9999, InstallationFee: 1800},
		{ProductType: pricing.ProductTypeProduct, Quantity: 1, UnitPrice: 2500},
	}

	totals := CalculateTotals(items)
	assert.GreaterOrEqual(t, totals.TotalAmount, totals.SubTotal)
}

func TestCartLineRoundTripsThroughPricing(t *testing.T) {
	item := CartItem{
		ProductID:       9,
		ProductType:     pricing.ProductTypeTire,
		Quantity:        2,
		UnitPrice:       10000,
		InstallationFee: 1500,
		AddonServices:   []pricing.AddonService{{Name: "disposal", Price: 1000}},
	}

	line := item.LineItem()
	require.NoError(t, line.Validate())
	assert.Equal(t, int64(25000), line.LineTotal())
}

func TestUserCartCacheInvalidatedOnMutation(t *testing.T) {
	// The cache contract: a successful mutation marks the user's cached cart
	// stale so the next read refetches.
	ctx := context.Background()
	store := cache.NewMemoryStore()

	userID := uint(11)
	stale := CartResponse{Items: []CartItemResponse{{ProductID: 1, Quantity: 1}}}
	require.NoError(t, store.Set(ctx, cache.CartScope(userID), stale, time.Minute))

	svc := &Service{cache: store, logger: testLogger()}
	svc.invalidateUserCart(ctx, userID)

	var got CartResponse
	found, err := store.Get(ctx, cache.CartScope(userID), &got)
	require.NoError(t, err)
	assert.False(t, found, "cart cache must be stale after a mutation")
}
