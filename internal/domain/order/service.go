// internal/domain/order/service.go
package order

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/tireshop-backend/internal/config"
	"github.com/your-org/tireshop-backend/internal/domain/cart"
	"github.com/your-org/tireshop-backend/internal/domain/product"
	"github.com/your-org/tireshop-backend/internal/infrastructure/cache"
	"github.com/your-org/tireshop-backend/internal/pkg/pagination"
	"gorm.io/gorm"
)

// Service handles order business logic
type Service struct {
	db          *gorm.DB
	cache       cache.Store
	config      *config.Config
	logger      *logrus.Logger
	cartService *cart.Service
}

// NewService creates a new order service
func NewService(db *gorm.DB, cacheStore cache.Store, cfg *config.Config, logger *logrus.Logger, cartService *cart.Service) *Service {
	return &Service{
		db:          db,
		cache:       cacheStore,
		config:      cfg,
		logger:      logger,
		cartService: cartService,
	}
}

// CreateOrderRequest represents order creation data
type CreateOrderRequest struct {
	ShippingAddress Address `json:"shipping_address" binding:"required"`
	PaymentMethod   string  `json:"payment_method" binding:"required"`
	Notes           string  `json:"notes,omitempty"`
}

// OrderListRequest represents order list query parameters
type OrderListRequest struct {
	Page      int         `form:"page,default=1"`
	Limit     int         `form:"limit,default=8"`
	Status    OrderStatus `form:"status"`
	SortOrder string      `form:"sort_order,default=desc"`
}

// OrderListResponse represents order response with pagination
type OrderListResponse struct {
	Orders     []Order               `json:"orders"`
	Pagination pagination.Pagination `json:"pagination"`
}

// UpdateStatusRequest represents a status transition request
type UpdateStatusRequest struct {
	Status  OrderStatus `json:"status" binding:"required"`
	Comment string      `json:"comment,omitempty"`
}

// CreateFromCart creates a new order from the user's cart
func (s *Service) CreateFromCart(ctx context.Context, userID uint, sessionID string, req *CreateOrderRequest) (*Order, error) {
	userCart, err := s.cartService.GetCart(ctx, &userID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if len(userCart.Items) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	var user struct {
		Email string
	}
	if err := s.db.Table("users").Select("email").Where("id = ?", userID).Scan(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	order := &Order{
		UserID:             userID,
		Email:              user.Email,
		Status:             OrderStatusPending,
		SubtotalAmount:     userCart.Totals.SubTotal,
		InstallationAmount: userCart.Totals.InstallationTotal,
		AddonAmount:        userCart.Totals.AddonTotal,
		TotalAmount:        userCart.Totals.TotalAmount,
		ShippingAddress:    req.ShippingAddress,
		Currency:           "USD",
		PaymentMethod:      req.PaymentMethod,
		Notes:              req.Notes,
	}

	if err := tx.Create(order).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	order.OrderNumber = GenerateOrderNumber(order.ID)
	if err := tx.Model(order).Update("order_number", order.OrderNumber).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to set order number: %w", err)
	}

	// Snapshot cart items and decrement inventory
	for _, item := range userCart.Items {
		var p product.Product
		if err := tx.First(&p, item.ProductID).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("product %d not found: %w", item.ProductID, err)
		}
		if p.TrackQuantity && p.Quantity < item.Quantity {
			tx.Rollback()
			return nil, fmt.Errorf("insufficient stock for %s", p.Name)
		}

		orderItem := OrderItem{
			OrderID:         order.ID,
			ProductID:       item.ProductID,
			ProductType:     item.ProductType,
			SKU:             p.SKU,
			Name:            p.Name,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			InstallationFee: item.InstallationFee,
			AddonServices:   item.AddonServices,
			TotalPrice:      item.LineTotal,
		}
		if err := tx.Create(&orderItem).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to create order item: %w", err)
		}

		if p.TrackQuantity {
			if err := tx.Model(&p).Update("quantity", gorm.Expr("quantity - ?", item.Quantity)).Error; err != nil {
				tx.Rollback()
				return nil, fmt.Errorf("failed to update inventory: %w", err)
			}
		}
	}

	history := OrderStatusHistory{
		OrderID:   order.ID,
		Status:    OrderStatusPending,
		Comment:   "Order created",
		CreatedBy: userID,
	}
	if err := tx.Create(&history).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create status history: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	if err := s.cartService.ClearCart(ctx, &userID, sessionID); err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Warn("Failed to clear cart after order")
	}
	s.invalidateUserOrders(ctx, userID)

	return s.GetOrder(ctx, order.ID, &userID)
}

// GetUserOrders retrieves orders for a user with pagination
func (s *Service) GetUserOrders(ctx context.Context, userID uint, req *OrderListRequest) (*OrderListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = pagination.DefaultPageSize
	}

	key := cache.OrdersPageKey(userID, req.Page, req.Limit)
	if req.Status == "" {
		var cached OrderListResponse
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	query := s.db.Model(&Order{}).Where("user_id = ?", userID)
	if req.Status != "" {
		if !req.Status.IsValid() {
			return nil, fmt.Errorf("invalid status: %s", req.Status)
		}
		query = query.Where("status = ?", req.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	pg := pagination.New(total, req.Page, req.Limit)

	order := "created_at DESC"
	if req.SortOrder == "asc" {
		order = "created_at ASC"
	}

	var orders []Order
	if err := query.Preload("Items").
		Order(order).
		Offset(pg.Offset()).
		Limit(pg.Limit).
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}

	resp := &OrderListResponse{Orders: orders, Pagination: pg}
	if req.Status == "" {
		if err := s.cache.Set(ctx, key, resp, s.config.Cache.ListTTL); err != nil {
			s.logger.WithError(err).Warn("Failed to cache order list")
		}
	}
	return resp, nil
}

// GetOrders retrieves all orders for admin with pagination
func (s *Service) GetOrders(ctx context.Context, req *OrderListRequest) (*OrderListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = pagination.DefaultPageSize
	}

	query := s.db.Model(&Order{})
	if req.Status != "" {
		if !req.Status.IsValid() {
			return nil, fmt.Errorf("invalid status: %s", req.Status)
		}
		query = query.Where("status = ?", req.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	pg := pagination.New(total, req.Page, req.Limit)

	var orders []Order
	if err := query.Preload("Items").
		Order("created_at DESC").
		Offset(pg.Offset()).
		Limit(pg.Limit).
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}

	return &OrderListResponse{Orders: orders, Pagination: pg}, nil
}

// GetOrder retrieves a single order. When userID is non-nil the order must
// belong to that user.
func (s *Service) GetOrder(ctx context.Context, orderID uint, userID *uint) (*Order, error) {
	query := s.db.Preload("Items").Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	})
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	var order Order
	if err := query.First(&order, orderID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrderByNumber retrieves an order by its order number
func (s *Service) GetOrderByNumber(ctx context.Context, orderNumber string, userID *uint) (*Order, error) {
	query := s.db.Preload("Items").Where("order_number = ?", orderNumber)
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	var order Order
	if err := query.First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus transitions an order to a new status
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID uint, req *UpdateStatusRequest, updatedBy uint) (*Order, error) {
	if !req.Status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", req.Status)
	}

	var order Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		return nil, err
	}

	if !CanTransition(order.Status, req.Status) {
		return nil, fmt.Errorf("cannot transition order from %s to %s", order.Status, req.Status)
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{"status": req.Status}
	switch req.Status {
	case OrderStatusProcessing:
		updates["processed_at"] = &now
	case OrderStatusShipped:
		updates["shipped_at"] = &now
	case OrderStatusDelivered:
		updates["delivered_at"] = &now
	}

	tx := s.db.Begin()
	if err := tx.Model(&order).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	history := OrderStatusHistory{
		OrderID:   order.ID,
		Status:    req.Status,
		Comment:   req.Comment,
		CreatedBy: updatedBy,
	}
	if err := tx.Create(&history).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to record status history: %w", err)
	}

	if req.Status == OrderStatusCancelled {
		if err := s.restoreInventory(tx, order.ID); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit status update: %w", err)
	}

	s.invalidateUserOrders(ctx, order.UserID)
	return s.GetOrder(ctx, order.ID, nil)
}

// CancelOrder cancels an order on behalf of its owner
func (s *Service) CancelOrder(ctx context.Context, orderID uint, userID uint, reason string) (*Order, error) {
	var order Order
	if err := s.db.Where("user_id = ?", userID).First(&order, orderID).Error; err != nil {
		return nil, err
	}

	if !order.CanBeCancelled() {
		return nil, fmt.Errorf("order in status %s cannot be cancelled", order.Status)
	}

	comment := reason
	if comment == "" {
		comment = "Cancelled by customer"
	}
	return s.UpdateOrderStatus(ctx, orderID, &UpdateStatusRequest{
		Status:  OrderStatusCancelled,
		Comment: comment,
	}, userID)
}

// restoreInventory puts ordered quantities back on cancellation
func (s *Service) restoreInventory(tx *gorm.DB, orderID uint) error {
	var items []OrderItem
	if err := tx.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
		return fmt.Errorf("failed to load order items: %w", err)
	}
	for _, item := range items {
		err := tx.Model(&product.Product{}).
			Where("id = ? AND track_quantity = ?", item.ProductID, true).
			Update("quantity", gorm.Expr("quantity + ?", item.Quantity)).Error
		if err != nil {
			return fmt.Errorf("failed to restore inventory: %w", err)
		}
	}
	return nil
}

func (s *Service) invalidateUserOrders(ctx context.Context, userID uint) {
	if err := s.cache.Invalidate(ctx, cache.OrdersScope(userID)); err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Warn("Failed to invalidate order cache")
	}
}
