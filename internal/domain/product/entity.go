// internal/domain/product/entity.go
package product

import (
	"time"

	"github.com/your-org/tireshop-backend/internal/domain/pricing"
	"gorm.io/gorm"
)

// Product represents a catalog item: a tire, a wheel, or a generic accessory
type Product struct {
	ID           uint                `gorm:"primaryKey" json:"id"`
	SKU          string              `gorm:"uniqueIndex;not null;size:100" json:"sku"`
	Name         string              `gorm:"not null;size:255" json:"name"`
	Slug         string              `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	Description  string              `gorm:"type:text" json:"description"`
	ProductType  pricing.ProductType `gorm:"not null;index;size:20" json:"product_type"`
	Price        int64               `gorm:"not null" json:"price"` // Price in cents
	ComparePrice int64               `json:"compare_price"`         // Original price for discounts

	// InstallationFee is the optional per-unit mounting/installation charge
	InstallationFee int64 `gorm:"default:0" json:"installation_fee"`

	BrandID *uint `gorm:"index" json:"brand_id"`

	// Tire attributes (zero for wheels/accessories)
	TireWidth   int    `json:"tire_width,omitempty"`   // e.g. 225
	AspectRatio int    `json:"aspect_ratio,omitempty"` // e.g. 45
	RimDiameter int    `json:"rim_diameter,omitempty"` // e.g. 17
	SpeedRating string `gorm:"size:5" json:"speed_rating,omitempty"`

	// Wheel attributes
	BoltPattern string `gorm:"size:20" json:"bolt_pattern,omitempty"` // e.g. 5x114.3

	ImageURL      string         `gorm:"size:500" json:"image_url"`
	IsActive      bool           `gorm:"default:true" json:"is_active"`
	TrackQuantity bool           `gorm:"default:true" json:"track_quantity"`
	Quantity      int            `gorm:"default:0" json:"quantity"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Brand          *Brand          `gorm:"foreignKey:BrandID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"brand,omitempty"`
	ServiceOptions []ServiceOption `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service_options,omitempty"`
}

// Brand represents tire and wheel manufacturers
type Brand struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null;size:255" json:"name"`
	Slug      string         `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	LogoURL   string         `gorm:"size:500" json:"logo_url"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Products []Product `gorm:"foreignKey:BrandID" json:"products,omitempty"`
}

// ServiceOption is an add-on service offered with a product
// (road hazard coverage, balancing, disposal). Price is per unit in cents.
type ServiceOption struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	Name      string    `gorm:"not null;size:100" json:"name"`
	Price     int64     `gorm:"not null" json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides
func (Product) TableName() string       { return "products" }
func (Brand) TableName() string         { return "brands" }
func (ServiceOption) TableName() string { return "service_options" }

// Business methods for Product

func (p *Product) IsInStock() bool {
	return p.Quantity > 0 || !p.TrackQuantity
}

func (p *Product) GetFormattedPrice() string {
	return pricing.FormatPrice(p.Price)
}

func (p *Product) GetDiscountPercentage() int {
	if p.ComparePrice > 0 && p.Price < p.ComparePrice {
		return int(((p.ComparePrice - p.Price) * 100) / p.ComparePrice)
	}
	return 0
}

// FindServiceOptions resolves requested option IDs against the options this
// product actually offers; prices always come from the catalog, never the
// client.
func (p *Product) FindServiceOptions(ids []uint) ([]pricing.AddonService, bool) {
	addons := make([]pricing.AddonService, 0, len(ids))
	for _, id := range ids {
		found := false
		for _, opt := range p.ServiceOptions {
			if opt.ID == id {
				addons = append(addons, pricing.AddonService{Name: opt.Name, Price: opt.Price})
				found = true
				break
			}
		}
		if !found {
			return nil, false
		}
	}
	return addons, true
}
