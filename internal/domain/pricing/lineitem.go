// internal/domain/pricing/lineitem.go
package pricing

import (
	"fmt"
)

// ProductType identifies which catalog a line item came from
type ProductType string

const (
	ProductTypeTire    ProductType = "tire"
	ProductTypeWheel   ProductType = "wheel"
	ProductTypeProduct ProductType = "product"
)

// IsValid reports whether the product type is one of the known catalogs
func (t ProductType) IsValid() bool {
	switch t {
	case ProductTypeTire, ProductTypeWheel, ProductTypeProduct:
		return true
	}
	return false
}

// AddonService represents an optional add-on service attached to a line item
// (e.g. road hazard coverage, TPMS service). Price is per unit in cents.
type AddonService struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// LineItem represents one product entry within a cart or order.
// All monetary amounts are in cents.
type LineItem struct {
	ProductID       uint           `json:"product_id"`
	ProductType     ProductType    `json:"product_type"`
	Quantity        int            `json:"quantity"`
	UnitPrice       int64          `json:"unit_price"`
	InstallationFee int64          `json:"installation_fee"`
	AddonServices   []AddonService `json:"addon_services,omitempty"`
}

// Validate checks the line item invariants before any total is computed
func (li LineItem) Validate() error {
	if li.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", li.Quantity)
	}
	if li.UnitPrice < 0 {
		return fmt.Errorf("unit price cannot be negative")
	}
	if li.InstallationFee < 0 {
		return fmt.Errorf("installation fee cannot be negative")
	}
	if !li.ProductType.IsValid() {
		return fmt.Errorf("unknown product type %q", li.ProductType)
	}
	for _, addon := range li.AddonServices {
		if addon.Price < 0 {
			return fmt.Errorf("addon service %q has negative price", addon.Name)
		}
	}
	return nil
}

// AddonTotal returns the per-unit sum of all add-on service prices
func (li LineItem) AddonTotal() int64 {
	var total int64
	for _, addon := range li.AddonServices {
		total += addon.Price
	}
	return total
}

// LineTotal computes the total price of the line item in cents.
// The installation fee and every add-on service are charged per unit,
// so fees and add-ons never reduce the total below UnitPrice*Quantity.
func (li LineItem) LineTotal() int64 {
	qty := int64(li.Quantity)
	return li.UnitPrice*qty + li.InstallationFee*qty + li.AddonTotal()*qty
}

// FormatPrice renders cents as a 2-decimal currency string. Rounding happens
// here only; totals stay in integer cents everywhere else.
func FormatPrice(cents int64) string {
	return fmt.Sprintf("%.2f", float64(cents)/100)
}
