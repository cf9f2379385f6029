package deal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsActive(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		validTo string
		want    bool
	}{
		{"expires tomorrow", "2025-06-16T12:00:00Z", true},
		{"expired yesterday", "2025-06-14T12:00:00Z", false},
		{"expires this exact instant", "2025-06-15T12:00:00Z", false}, // strictly greater
		{"date-only layout in the future", "2025-12-31", true},
		{"date-only layout in the past", "2024-01-01", false},
		{"layout without zone", "2025-06-16T00:00:00", true},
		{"unparseable garbage fails closed", "not-a-date", false},
		{"empty string fails closed", "", false},
		{"partial date fails closed", "2025-06", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Deal{Title: "test", ValidTo: tt.validTo}
			assert.Equal(t, tt.want, d.IsActive(now))
		})
	}
}

func TestIsActiveIgnoresValidFrom(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	// A deal whose window has not opened yet still counts as active as long
	// as its expiry is in the future; only ValidTo gates activity.
	d := Deal{ValidFrom: "2025-07-01", ValidTo: "2025-08-01"}
	assert.True(t, d.IsActive(now))
}

func TestFilterActive(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	deals := []Deal{
		{ID: 1, Title: "summer tires", ValidTo: "2025-09-01"},
		{ID: 2, Title: "expired promo", ValidTo: "2025-01-01"},
		{ID: 3, Title: "wheel clearance", ValidTo: "2025-06-16T00:00:00Z"},
		{ID: 4, Title: "broken dates", ValidTo: "TBD"},
		{ID: 5, Title: "year end", ValidTo: "2025-12-31"},
	}

	active := FilterActive(deals, now)

	require.Len(t, active, 3)
	// Original order is preserved.
	assert.Equal(t, uint(1), active[0].ID)
	assert.Equal(t, uint(3), active[1].ID)
	assert.Equal(t, uint(5), active[2].ID)
}

func TestFilterActiveEmptyInput(t *testing.T) {
	active := FilterActive(nil, time.Now())
	assert.Empty(t, active)
}

func TestParseDealTime(t *testing.T) {
	got, ok := ParseDealTime("2025-03-01T08:30:00Z")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 1, 8, 30, 0, 0, time.UTC), got)

	got, ok = ParseDealTime("2025-03-01")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), got)

	_, ok = ParseDealTime("03/01/2025")
	assert.False(t, ok)
}
