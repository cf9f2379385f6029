// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/your-org/tireshop-backend/internal/domain/pricing"
	"gorm.io/gorm"
)

// CartItem represents a cart line stored in database for authenticated users
type CartItem struct {
	ID          uint                `gorm:"primaryKey" json:"id"`
	UserID      *uint               `gorm:"index" json:"user_id"`
	ProductID   uint                `gorm:"not null;index" json:"product_id"`
	ProductType pricing.ProductType `gorm:"not null;size:20" json:"product_type"`
	Quantity    int                 `gorm:"not null;default:1" json:"quantity"`

	// Prices snapshotted at time of adding, in cents
	UnitPrice       int64 `gorm:"not null" json:"unit_price"`
	InstallationFee int64 `gorm:"default:0" json:"installation_fee"`

	AddonServices []pricing.AddonService `gorm:"serializer:json" json:"addon_services,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (CartItem) TableName() string {
	return "cart_items"
}

// LineItem converts a stored cart row into a pricing line item
func (ci *CartItem) LineItem() pricing.LineItem {
	return pricing.LineItem{
		ProductID:       ci.ProductID,
		ProductType:     ci.ProductType,
		Quantity:        ci.Quantity,
		UnitPrice:       ci.UnitPrice,
		InstallationFee: ci.InstallationFee,
		AddonServices:   ci.AddonServices,
	}
}

// SessionCart represents a cart session for guest users (stored in Redis)
type SessionCart struct {
	SessionID string            `json:"session_id"`
	Items     []SessionCartItem `json:"items"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	ExpiresAt time.Time         `json:"expires_at"`
}

// SessionCartItem represents a cart line for guest users
type SessionCartItem struct {
	ProductID       uint                   `json:"product_id"`
	ProductType     pricing.ProductType    `json:"product_type"`
	Quantity        int                    `json:"quantity"`
	UnitPrice       int64                  `json:"unit_price"`
	InstallationFee int64                  `json:"installation_fee"`
	AddonServices   []pricing.AddonService `json:"addon_services,omitempty"`
	AddedAt         time.Time              `json:"added_at"`
}

// LineItem converts a guest cart line into a pricing line item
func (si *SessionCartItem) LineItem() pricing.LineItem {
	return pricing.LineItem{
		ProductID:       si.ProductID,
		ProductType:     si.ProductType,
		Quantity:        si.Quantity,
		UnitPrice:       si.UnitPrice,
		InstallationFee: si.InstallationFee,
		AddonServices:   si.AddonServices,
	}
}

// CartTotals represents calculated cart totals, all amounts in cents
type CartTotals struct {
	ItemCount         int   `json:"item_count"`     // Number of unique lines
	TotalQuantity     int   `json:"total_quantity"` // Sum of all quantities
	SubTotal          int64 `json:"sub_total"`      // Unit prices only
	InstallationTotal int64 `json:"installation_total"`
	AddonTotal        int64 `json:"addon_total"`
	TotalAmount       int64 `json:"total_amount"`
}
