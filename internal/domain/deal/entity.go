// internal/domain/deal/entity.go
package deal

import (
	"time"

	"github.com/samber/lo"
	"github.com/your-org/tireshop-backend/internal/domain/product"
	"gorm.io/gorm"
)

// Deal represents a time-bounded promotional discount tied to a brand
type Deal struct {
	ID                 uint   `gorm:"primaryKey" json:"id"`
	Title              string `gorm:"not null;size:255" json:"title"`
	Description        string `gorm:"type:text" json:"description"`
	DiscountPercentage int    `gorm:"not null" json:"discount_percentage"`
	BrandID            *uint  `gorm:"index" json:"brand_id"`

	// Validity window. The admin feed supplies these as loosely formatted
	// date strings, so they are stored verbatim and parsed at evaluation
	// time. An unparseable ValidTo makes the deal inactive.
	ValidFrom string `gorm:"size:64" json:"valid_from"`
	ValidTo   string `gorm:"size:64" json:"valid_to"`

	ImageURL  string         `gorm:"size:500" json:"image_url"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Brand *product.Brand `gorm:"foreignKey:BrandID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"brand,omitempty"`
}

// TableName overrides the table name
func (Deal) TableName() string {
	return "deals"
}

// dealTimeLayouts are the accepted expiry date formats, tried in order
var dealTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDealTime parses a validity timestamp from the admin feed
func ParseDealTime(value string) (time.Time, bool) {
	for _, layout := range dealTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsActive reports whether the deal's expiry is strictly in the future.
// A ValidTo that cannot be parsed fails closed: the deal is not active.
// ValidFrom is informational only and does not gate activity.
func (d *Deal) IsActive(now time.Time) bool {
	expiry, ok := ParseDealTime(d.ValidTo)
	if !ok {
		return false
	}
	return expiry.After(now)
}

// FilterActive returns only the deals still active at the given instant,
// preserving the original order of the input
func FilterActive(deals []Deal, now time.Time) []Deal {
	return lo.Filter(deals, func(d Deal, _ int) bool {
		return d.IsActive(now)
	})
}
