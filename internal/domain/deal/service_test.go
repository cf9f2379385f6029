package deal

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/tireshop-backend/internal/infrastructure/cache"
	"github.com/your-org/tireshop-backend/internal/pkg/pagination"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func activeDeals(n int) []Deal {
	deals := make([]Deal, n)
	for i := range deals {
		deals[i] = Deal{
			ID:      uint(i + 1),
			Title:   fmt.Sprintf("deal %d", i+1),
			ValidTo: time.Now().UTC().AddDate(0, 1, 0).Format(time.RFC3339),
		}
	}
	return deals
}

func TestActivePageKeysByClampedPage(t *testing.T) {
	now := time.Now().UTC()
	deals := activeDeals(10) // two pages at the storefront page size

	last, lastKey := activePage(deals, 2, now)
	require.Equal(t, 2, last.Pagination.TotalPages)

	// Every out-of-range request resolves to the same entry as the last page.
	for _, page := range []int{3, 99, 1000} {
		resp, key := activePage(deals, page, now)
		assert.Equal(t, lastKey, key, "page %d must share the last page's cache key", page)
		assert.Equal(t, 2, resp.Pagination.Page)
		assert.Equal(t, last.Deals, resp.Deals)
	}

	_, firstKey := activePage(deals, 1, now)
	assert.NotEqual(t, lastKey, firstKey)
}

func TestActivePageExcludesExpiredDeals(t *testing.T) {
	now := time.Now().UTC()
	deals := append(activeDeals(3), Deal{
		ID:      99,
		Title:   "expired promo",
		ValidTo: now.AddDate(0, 0, -1).Format(time.RFC3339),
	})

	resp, _ := activePage(deals, 1, now)

	require.Len(t, resp.Deals, 3)
	assert.Equal(t, int64(3), resp.Pagination.Total)
}

func TestMutationInvalidatesCachedDealPages(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()
	svc := &Service{cache: store, logger: testLogger()}

	stale := DealListResponse{Pagination: pagination.New(1, 1, pagination.DefaultPageSize)}
	require.NoError(t, store.Set(ctx, cache.DealsPageKey(1), stale, time.Minute))
	require.NoError(t, store.Set(ctx, cache.DealKey(5), Deal{ID: 5}, time.Minute))

	svc.invalidate(ctx)

	var gotList DealListResponse
	found, err := store.Get(ctx, cache.DealsPageKey(1), &gotList)
	require.NoError(t, err)
	assert.False(t, found, "cached deal pages must be stale after a mutation")

	var gotDeal Deal
	found, err = store.Get(ctx, cache.DealKey(5), &gotDeal)
	require.NoError(t, err)
	assert.False(t, found, "cached deal details must be stale after a mutation")
}
