package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name           string
		total          int64
		page           int
		limit          int
		wantPage       int
		wantTotalPages int
		wantHasNext    bool
		wantHasPrev    bool
	}{
		{"first of many", 20, 1, 8, 1, 3, true, false},
		{"middle page", 20, 2, 8, 2, 3, true, true},
		{"last page", 20, 3, 8, 3, 3, false, true},
		{"exact multiple", 16, 2, 8, 2, 2, false, true},
		{"empty collection", 0, 1, 8, 1, 1, false, false},
		{"page beyond range clamps", 20, 99, 8, 3, 3, false, true},
		{"page below range clamps", 20, 0, 8, 1, 3, true, false},
		{"negative page clamps", 20, -5, 8, 1, 3, true, false},
		{"zero limit falls back to default", 20, 1, 0, 1, 3, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.total, tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantTotalPages, p.TotalPages)
			assert.Equal(t, tt.wantHasNext, p.HasNext)
			assert.Equal(t, tt.wantHasPrev, p.HasPrev)
		})
	}
}

func TestSliceEmptyInput(t *testing.T) {
	items, p := Slice([]string{}, 1, 8)

	assert.Empty(t, items)
	assert.Equal(t, 1, p.TotalPages)
	assert.Equal(t, int64(0), p.Total)
}

func TestSlicePartitionsWithoutGapsOrOverlap(t *testing.T) {
	for _, size := range []int{1, 3, 8, 25, 100} {
		list := make([]int, size)
		for i := range list {
			list[i] = i
		}

		for _, limit := range []int{1, 2, 8, 13} {
			var collected []int
			_, first := Slice(list, 1, limit)

			for page := 1; page <= first.TotalPages; page++ {
				items, _ := Slice(list, page, limit)
				collected = append(collected, items...)
			}

			require.Len(t, collected, size, "pages must cover every item exactly once (size=%d limit=%d)", size, limit)
			for i, v := range collected {
				assert.Equal(t, i, v, "pages must preserve original order")
			}
		}
	}
}

func TestSliceClampsOutOfRangePage(t *testing.T) {
	list := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	items, p := Slice(list, 50, 4)

	// Clamped to the last page rather than an empty slice.
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, []int{8, 9}, items)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, New(100, 1, 8).Offset())
	assert.Equal(t, 8, New(100, 2, 8).Offset())
	assert.Equal(t, 16, New(100, 3, 8).Offset())
}
