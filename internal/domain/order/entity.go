// internal/domain/order/entity.go
package order

import (
	"fmt"
	"time"

	"github.com/your-org/tireshop-backend/internal/domain/pricing"
	"gorm.io/gorm"
)

// OrderStatus represents the order status
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// IsValid reports whether the status is a known one
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// validTransitions is the server-authoritative status machine. Clients only
// request a transition; anything not listed here is rejected.
var validTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// CanTransition reports whether an order may move from one status to another
func CanTransition(from, to OrderStatus) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Order represents the order entity
type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	OrderNumber string      `gorm:"uniqueIndex;not null;size:50" json:"order_number"`
	UserID      uint        `gorm:"not null;index" json:"user_id"`
	Email       string      `gorm:"not null;size:255" json:"email"`
	Status      OrderStatus `gorm:"not null;default:'pending'" json:"status"`

	// Financial information, in cents
	SubtotalAmount     int64 `gorm:"not null" json:"subtotal_amount"`
	InstallationAmount int64 `gorm:"default:0" json:"installation_amount"`
	AddonAmount        int64 `gorm:"default:0" json:"addon_amount"`
	TotalAmount        int64 `gorm:"not null" json:"total_amount"`

	ShippingAddress Address `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`

	Currency      string `gorm:"size:3;default:'USD'" json:"currency"`
	PaymentMethod string `gorm:"size:50" json:"payment_method"`
	Notes         string `gorm:"type:text" json:"notes"`

	// Timestamps
	ProcessedAt *time.Time     `json:"processed_at"`
	ShippedAt   *time.Time     `json:"shipped_at"`
	DeliveredAt *time.Time     `json:"delivered_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items         []OrderItem          `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
	StatusHistory []OrderStatusHistory `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"status_history,omitempty"`
}

// OrderItem represents one line item within an order
type OrderItem struct {
	ID          uint                `gorm:"primaryKey" json:"id"`
	OrderID     uint                `gorm:"not null;index" json:"order_id"`
	ProductID   uint                `gorm:"not null;index" json:"product_id"`
	ProductType pricing.ProductType `gorm:"not null;size:20" json:"product_type"`
	SKU         string              `gorm:"not null;size:100" json:"sku"`
	Name        string              `gorm:"not null;size:255" json:"name"`
	Quantity    int                 `gorm:"not null" json:"quantity"`

	// Price snapshot at order time, in cents
	UnitPrice       int64                  `gorm:"not null" json:"unit_price"`
	InstallationFee int64                  `gorm:"default:0" json:"installation_fee"`
	AddonServices   []pricing.AddonService `gorm:"serializer:json" json:"addon_services,omitempty"`
	TotalPrice      int64                  `gorm:"not null" json:"total_price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LineItem converts an order row back into a pricing line item
func (oi *OrderItem) LineItem() pricing.LineItem {
	return pricing.LineItem{
		ProductID:       oi.ProductID,
		ProductType:     oi.ProductType,
		Quantity:        oi.Quantity,
		UnitPrice:       oi.UnitPrice,
		InstallationFee: oi.InstallationFee,
		AddonServices:   oi.AddonServices,
	}
}

// OrderStatusHistory tracks order status changes
type OrderStatusHistory struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	OrderID   uint        `gorm:"not null;index" json:"order_id"`
	Status    OrderStatus `gorm:"not null" json:"status"`
	Comment   string      `gorm:"type:text" json:"comment"`
	CreatedBy uint        `gorm:"index" json:"created_by"` // User ID who made the change
	CreatedAt time.Time   `json:"created_at"`
}

// Address represents a shipping address (embedded in Order)
type Address struct {
	FirstName    string `gorm:"size:100" json:"first_name"`
	LastName     string `gorm:"size:100" json:"last_name"`
	AddressLine1 string `gorm:"size:255" json:"address_line1"`
	AddressLine2 string `gorm:"size:255" json:"address_line2"`
	City         string `gorm:"size:100" json:"city"`
	State        string `gorm:"size:100" json:"state"`
	PostalCode   string `gorm:"size:20" json:"postal_code"`
	Country      string `gorm:"size:2" json:"country"`
	Phone        string `gorm:"size:20" json:"phone"`
}

// TableName overrides
func (Order) TableName() string              { return "orders" }
func (OrderItem) TableName() string          { return "order_items" }
func (OrderStatusHistory) TableName() string { return "order_status_history" }

// Business methods for Order

// GetFormattedTotal returns the total as a currency string
func (o *Order) GetFormattedTotal() string {
	return pricing.FormatPrice(o.TotalAmount)
}

// CanBeCancelled checks if the order can still be cancelled
func (o *Order) CanBeCancelled() bool {
	return CanTransition(o.Status, OrderStatusCancelled)
}

// IsTerminal reports whether the order has reached a final status
func (o *Order) IsTerminal() bool {
	return len(validTransitions[o.Status]) == 0
}

// AddStatusHistory appends a new status change to history
func (o *Order) AddStatusHistory(status OrderStatus, comment string, createdBy uint) {
	o.StatusHistory = append(o.StatusHistory, OrderStatusHistory{
		OrderID:   o.ID,
		Status:    status,
		Comment:   comment,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
	})
}

// GenerateOrderNumber formats an order number from an ID
func GenerateOrderNumber(orderID uint) string {
	// Format: ORD-YYYYMMDD-XXXXX
	return fmt.Sprintf("ORD-%s-%05d", time.Now().Format("20060102"), orderID)
}
