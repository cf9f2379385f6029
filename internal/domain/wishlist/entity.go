package wishlist

import (
	"time"

	"github.com/your-org/tireshop-backend/internal/domain/pricing"
	"gorm.io/gorm"
)

// WishlistItem represents a wishlist entry
type WishlistItem struct {
	ID          uint                `gorm:"primaryKey" json:"id"`
	UserID      uint                `gorm:"not null;index" json:"user_id"`
	ProductID   uint                `gorm:"not null;index" json:"product_id"`
	ProductType pricing.ProductType `gorm:"not null;size:20" json:"product_type"`
	AddedAt     time.Time           `json:"added_at"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	DeletedAt   gorm.DeletedAt      `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (WishlistItem) TableName() string {
	return "wishlist_items"
}
