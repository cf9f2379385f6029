// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/tireshop-backend/internal/config"
	"github.com/your-org/tireshop-backend/internal/domain/pricing"
	"github.com/your-org/tireshop-backend/internal/domain/product"
	"github.com/your-org/tireshop-backend/internal/infrastructure/cache"
	"gorm.io/gorm"
)

// Service handles cart business logic
type Service struct {
	db          *gorm.DB
	redisClient *redis.Client
	cache       cache.Store
	config      *config.Config
	logger      *logrus.Logger
}

// NewService creates a new cart service
func NewService(db *gorm.DB, redisClient *redis.Client, cacheStore cache.Store, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		db:          db,
		redisClient: redisClient,
		cache:       cacheStore,
		config:      cfg,
		logger:      logger,
	}
}

// CartItemResponse represents a cart line with product details
type CartItemResponse struct {
	ProductID       uint                   `json:"product_id"`
	ProductType     pricing.ProductType    `json:"product_type"`
	Quantity        int                    `json:"quantity"`
	UnitPrice       int64                  `json:"unit_price"`
	InstallationFee int64                  `json:"installation_fee"`
	AddonServices   []pricing.AddonService `json:"addon_services,omitempty"`
	LineTotal       int64                  `json:"line_total"`
	Product         *product.Product       `json:"product,omitempty"`
	AddedAt         time.Time              `json:"added_at"`
}

// CartResponse represents a shopping cart with items and totals
type CartResponse struct {
	SessionID string             `json:"session_id,omitempty"`
	UserID    *uint              `json:"user_id,omitempty"`
	Items     []CartItemResponse `json:"items"`
	Totals    CartTotals         `json:"totals"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// AddToCartRequest represents add to cart request
type AddToCartRequest struct {
	ProductID           uint                `json:"product_id" binding:"required"`
	ProductType         pricing.ProductType `json:"product_type" binding:"required"`
	Quantity            int                 `json:"quantity" binding:"required,min=1"`
	IncludeInstallation bool                `json:"include_installation"`
	ServiceOptionIDs    []uint              `json:"service_option_ids"`
}

// UpdateCartItemRequest represents update cart item request
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}

// GetCart retrieves cart for user or session
func (s *Service) GetCart(ctx context.Context, userID *uint, sessionID string) (*CartResponse, error) {
	if userID != nil {
		var cached CartResponse
		if found, err := s.cache.Get(ctx, cache.CartScope(*userID), &cached); err == nil && found {
			return &cached, nil
		}
	}

	var cartItems []CartItemResponse
	var createdAt, updatedAt time.Time

	if userID != nil {
		var dbItems []CartItem
		err := s.db.Where("user_id = ?", *userID).Order("created_at asc").Find(&dbItems).Error
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve user cart: %w", err)
		}

		cartItems = make([]CartItemResponse, len(dbItems))
		for i, item := range dbItems {
			cartItems[i] = CartItemResponse{
				ProductID:       item.ProductID,
				ProductType:     item.ProductType,
				Quantity:        item.Quantity,
				UnitPrice:       item.UnitPrice,
				InstallationFee: item.InstallationFee,
				AddonServices:   item.AddonServices,
				LineTotal:       item.LineItem().LineTotal(),
				AddedAt:         item.CreatedAt,
			}
		}

		if len(dbItems) > 0 {
			createdAt = dbItems[0].CreatedAt
			updatedAt = dbItems[0].UpdatedAt
		} else {
			createdAt = time.Now().UTC()
			updatedAt = time.Now().UTC()
		}
	} else {
		sessionCart, err := s.getGuestCart(ctx, sessionID)
		if err != nil {
			return nil, err
		}

		cartItems = make([]CartItemResponse, len(sessionCart.Items))
		for i, item := range sessionCart.Items {
			cartItems[i] = CartItemResponse{
				ProductID:       item.ProductID,
				ProductType:     item.ProductType,
				Quantity:        item.Quantity,
				UnitPrice:       item.UnitPrice,
				InstallationFee: item.InstallationFee,
				AddonServices:   item.AddonServices,
				LineTotal:       item.LineItem().LineTotal(),
				AddedAt:         item.AddedAt,
			}
		}

		createdAt = sessionCart.CreatedAt
		updatedAt = sessionCart.UpdatedAt
	}

	// Load product details for each line
	if err := s.loadProductDetails(cartItems); err != nil {
		return nil, err
	}

	response := &CartResponse{
		SessionID: sessionID,
		UserID:    userID,
		Items:     cartItems,
		Totals:    CalculateTotals(cartItems),
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}

	if userID != nil {
		if err := s.cache.Set(ctx, cache.CartScope(*userID), response, s.config.Cache.ListTTL); err != nil {
			s.logger.WithError(err).Warn("failed to cache user cart")
		}
	}

	return response, nil
}

// AddToCart adds a line to the cart. The price snapshot, installation fee,
// and add-on services are always resolved from the catalog.
func (s *Service) AddToCart(ctx context.Context, userID *uint, sessionID string, req *AddToCartRequest) (*CartResponse, error) {
	if !req.ProductType.IsValid() {
		return nil, fmt.Errorf("unknown product type %q", req.ProductType)
	}

	var prod product.Product
	result := s.db.Preload("ServiceOptions").
		Where("id = ? AND product_type = ? AND is_active = ?", req.ProductID, req.ProductType, true).
		First(&prod)
	if result.Error != nil {
		return nil, fmt.Errorf("product not found or inactive")
	}

	if prod.TrackQuantity && prod.Quantity < req.Quantity {
		return nil, fmt.Errorf("insufficient inventory. Available: %d", prod.Quantity)
	}

	addons, ok := prod.FindServiceOptions(req.ServiceOptionIDs)
	if !ok {
		return nil, fmt.Errorf("service option not offered for this product")
	}

	var installationFee int64
	if req.IncludeInstallation {
		installationFee = prod.InstallationFee
	}

	line := pricing.LineItem{
		ProductID:       prod.ID,
		ProductType:     prod.ProductType,
		Quantity:        req.Quantity,
		UnitPrice:       prod.Price,
		InstallationFee: installationFee,
		AddonServices:   addons,
	}
	if err := line.Validate(); err != nil {
		return nil, fmt.Errorf("invalid cart line: %w", err)
	}

	if userID != nil {
		if err := s.addToUserCart(*userID, line, prod.Quantity, prod.TrackQuantity); err != nil {
			return nil, err
		}
		s.invalidateUserCart(ctx, *userID)
	} else {
		if err := s.addToGuestCart(ctx, sessionID, line); err != nil {
			return nil, err
		}
	}

	return s.GetCart(ctx, userID, sessionID)
}

// UpdateCartItem updates quantity of a cart line; zero removes it
func (s *Service) UpdateCartItem(ctx context.Context, userID *uint, sessionID string, productID uint, req *UpdateCartItemRequest) (*CartResponse, error) {
	if req.Quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative")
	}

	if req.Quantity > 0 {
		var prod product.Product
		if err := s.db.Where("id = ?", productID).First(&prod).Error; err != nil {
			return nil, fmt.Errorf("product not found")
		}

		if prod.TrackQuantity && prod.Quantity < req.Quantity {
			return nil, fmt.Errorf("insufficient inventory. Available: %d", prod.Quantity)
		}
	}

	if userID != nil {
		if err := s.updateUserCartItem(*userID, productID, req.Quantity); err != nil {
			return nil, err
		}
		s.invalidateUserCart(ctx, *userID)
	} else {
		if err := s.updateGuestCartItem(ctx, sessionID, productID, req.Quantity); err != nil {
			return nil, err
		}
	}

	return s.GetCart(ctx, userID, sessionID)
}

// RemoveFromCart removes a line from the cart
func (s *Service) RemoveFromCart(ctx context.Context, userID *uint, sessionID string, productID uint) (*CartResponse, error) {
	return s.UpdateCartItem(ctx, userID, sessionID, productID, &UpdateCartItemRequest{Quantity: 0})
}

// ClearCart removes all lines from the cart
func (s *Service) ClearCart(ctx context.Context, userID *uint, sessionID string) error {
	if userID != nil {
		if err := s.db.Where("user_id = ?", *userID).Delete(&CartItem{}).Error; err != nil {
			return err
		}
		s.invalidateUserCart(ctx, *userID)
		return nil
	}

	cartKey := guestCartKey(sessionID)
	return s.redisClient.Del(ctx, cartKey).Err()
}

// GetCartItemCount returns the total quantity across all cart lines
func (s *Service) GetCartItemCount(ctx context.Context, userID *uint, sessionID string) (int, error) {
	cartResponse, err := s.GetCart(ctx, userID, sessionID)
	if err != nil {
		return 0, nil // Empty when cart doesn't exist
	}

	return cartResponse.Totals.TotalQuantity, nil
}

// MergeGuestCartToUser merges guest cart to user cart when user logs in
func (s *Service) MergeGuestCartToUser(ctx context.Context, userID uint, sessionID string) error {
	guestCart, err := s.getGuestCart(ctx, sessionID)
	if err != nil || len(guestCart.Items) == 0 {
		return nil // No guest cart to merge
	}

	for _, guestItem := range guestCart.Items {
		var existingItem CartItem
		result := s.db.Where("user_id = ? AND product_id = ?", userID, guestItem.ProductID).First(&existingItem)

		if result.Error == gorm.ErrRecordNotFound {
			newItem := CartItem{
				UserID:          &userID,
				ProductID:       guestItem.ProductID,
				ProductType:     guestItem.ProductType,
				Quantity:        guestItem.Quantity,
				UnitPrice:       guestItem.UnitPrice,
				InstallationFee: guestItem.InstallationFee,
				AddonServices:   guestItem.AddonServices,
			}
			s.db.Create(&newItem)
		} else {
			existingItem.Quantity += guestItem.Quantity
			s.db.Save(&existingItem)
		}
	}

	s.invalidateUserCart(ctx, userID)

	// Clear guest cart
	return s.ClearCart(ctx, nil, sessionID)
}

// CalculateTotals aggregates the cart lines into totals, in cents
func CalculateTotals(items []CartItemResponse) CartTotals {
	var totals CartTotals

	totals.ItemCount = len(items)

	for _, item := range items {
		qty := int64(item.Quantity)
		line := pricing.LineItem{
			ProductID:       item.ProductID,
			ProductType:     item.ProductType,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			InstallationFee: item.InstallationFee,
			AddonServices:   item.AddonServices,
		}

		totals.TotalQuantity += item.Quantity
		totals.SubTotal += item.UnitPrice * qty
		totals.InstallationTotal += item.InstallationFee * qty
		totals.AddonTotal += line.AddonTotal() * qty
		totals.TotalAmount += line.LineTotal()
	}

	return totals
}

// Private helper methods

func (s *Service) addToUserCart(userID uint, line pricing.LineItem, availableQuantity int, trackQuantity bool) error {
	var existingItem CartItem
	result := s.db.Where("user_id = ? AND product_id = ?", userID, line.ProductID).First(&existingItem)

	if result.Error == gorm.ErrRecordNotFound {
		newItem := CartItem{
			UserID:          &userID,
			ProductID:       line.ProductID,
			ProductType:     line.ProductType,
			Quantity:        line.Quantity,
			UnitPrice:       line.UnitPrice,
			InstallationFee: line.InstallationFee,
			AddonServices:   line.AddonServices,
		}
		return s.db.Create(&newItem).Error
	}

	newQuantity := existingItem.Quantity + line.Quantity
	if trackQuantity && availableQuantity < newQuantity {
		return fmt.Errorf("insufficient inventory for total quantity. Available: %d", availableQuantity)
	}

	existingItem.Quantity = newQuantity
	existingItem.UnitPrice = line.UnitPrice // Refresh snapshot in case price changed
	existingItem.InstallationFee = line.InstallationFee
	existingItem.AddonServices = line.AddonServices
	return s.db.Save(&existingItem).Error
}

func (s *Service) addToGuestCart(ctx context.Context, sessionID string, line pricing.LineItem) error {
	sessionCart, err := s.getGuestCart(ctx, sessionID)
	if err != nil {
		return err
	}

	itemExists := false
	for i := range sessionCart.Items {
		if sessionCart.Items[i].ProductID == line.ProductID {
			sessionCart.Items[i].Quantity += line.Quantity
			sessionCart.Items[i].UnitPrice = line.UnitPrice
			sessionCart.Items[i].InstallationFee = line.InstallationFee
			sessionCart.Items[i].AddonServices = line.AddonServices
			itemExists = true
			break
		}
	}

	if !itemExists {
		sessionCart.Items = append(sessionCart.Items, SessionCartItem{
			ProductID:       line.ProductID,
			ProductType:     line.ProductType,
			Quantity:        line.Quantity,
			UnitPrice:       line.UnitPrice,
			InstallationFee: line.InstallationFee,
			AddonServices:   line.AddonServices,
			AddedAt:         time.Now().UTC(),
		})
	}

	sessionCart.UpdatedAt = time.Now().UTC()
	return s.saveGuestCart(ctx, sessionID, sessionCart)
}

func (s *Service) updateUserCartItem(userID, productID uint, quantity int) error {
	if quantity == 0 {
		return s.db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&CartItem{}).Error
	}

	result := s.db.Model(&CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("item not found in cart")
	}
	return nil
}

func (s *Service) updateGuestCartItem(ctx context.Context, sessionID string, productID uint, quantity int) error {
	sessionCart, err := s.getGuestCart(ctx, sessionID)
	if err != nil {
		return err
	}

	itemFound := false
	for i := range sessionCart.Items {
		if sessionCart.Items[i].ProductID == productID {
			if quantity == 0 {
				sessionCart.Items = append(sessionCart.Items[:i], sessionCart.Items[i+1:]...)
			} else {
				sessionCart.Items[i].Quantity = quantity
			}
			itemFound = true
			break
		}
	}

	if !itemFound {
		return fmt.Errorf("item not found in cart")
	}

	sessionCart.UpdatedAt = time.Now().UTC()
	return s.saveGuestCart(ctx, sessionID, sessionCart)
}

func guestCartKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}

func (s *Service) getGuestCart(ctx context.Context, sessionID string) (*SessionCart, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID required for guest cart")
	}

	cartData, err := s.redisClient.Get(ctx, guestCartKey(sessionID)).Result()
	if err == redis.Nil {
		// Cart doesn't exist, return empty cart
		now := time.Now().UTC()
		return &SessionCart{
			SessionID: sessionID,
			Items:     []SessionCartItem{},
			CreatedAt: now,
			UpdatedAt: now,
			ExpiresAt: now.Add(s.config.Cache.GuestCartTTL),
		}, nil
	} else if err != nil {
		return nil, err
	}

	var sessionCart SessionCart
	if err := json.Unmarshal([]byte(cartData), &sessionCart); err != nil {
		return nil, err
	}

	return &sessionCart, nil
}

func (s *Service) saveGuestCart(ctx context.Context, sessionID string, sc *SessionCart) error {
	cartData, err := json.Marshal(sc)
	if err != nil {
		return err
	}

	return s.redisClient.Set(ctx, guestCartKey(sessionID), cartData, s.config.Cache.GuestCartTTL).Err()
}

func (s *Service) loadProductDetails(cartItems []CartItemResponse) error {
	for i := range cartItems {
		var prod product.Product
		err := s.db.Preload("Brand").
			Where("id = ?", cartItems[i].ProductID).First(&prod).Error
		if err != nil {
			continue // Skip if product not found
		}
		cartItems[i].Product = &prod
	}

	return nil
}

func (s *Service) invalidateUserCart(ctx context.Context, userID uint) {
	if err := s.cache.Invalidate(ctx, cache.CartScope(userID)); err != nil {
		s.logger.WithError(err).Warn("failed to invalidate cart cache")
	}
}
