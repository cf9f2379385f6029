package wishlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/tireshop-backend/internal/config"
	"github.com/your-org/tireshop-backend/internal/domain/cart"
	"github.com/your-org/tireshop-backend/internal/domain/pricing"
	"github.com/your-org/tireshop-backend/internal/domain/product"
	"github.com/your-org/tireshop-backend/internal/infrastructure/cache"
	"github.com/your-org/tireshop-backend/internal/pkg/pagination"
	"gorm.io/gorm"
)

// ErrDuplicateItem is returned when a product is already in the wishlist
var ErrDuplicateItem = errors.New("item already exists in wishlist")

// Service handles wishlist business logic
type Service struct {
	db          *gorm.DB
	cache       cache.Store
	config      *config.Config
	logger      *logrus.Logger
	cartService *cart.Service
}

// NewService creates a new wishlist service
func NewService(db *gorm.DB, cacheStore cache.Store, cfg *config.Config, logger *logrus.Logger, cartService *cart.Service) *Service {
	return &Service{
		db:          db,
		cache:       cacheStore,
		config:      cfg,
		logger:      logger,
		cartService: cartService,
	}
}

// WishlistItemResponse represents a wishlist entry with product details
type WishlistItemResponse struct {
	ID           uint                `json:"id"`
	ProductID    uint                `json:"product_id"`
	ProductType  pricing.ProductType `json:"product_type"`
	Product      *product.Product    `json:"product,omitempty"`
	AddedAt      time.Time           `json:"added_at"`
	IsAvailable  bool                `json:"is_available"`
	CurrentPrice int64               `json:"current_price"`
}

// WishlistResponse represents a wishlist page
type WishlistResponse struct {
	Items      []WishlistItemResponse `json:"items"`
	Count      int                    `json:"count"`
	Pagination pagination.Pagination  `json:"pagination"`
}

// AddToWishlistRequest represents add to wishlist request
type AddToWishlistRequest struct {
	ProductID   uint                `json:"product_id" binding:"required"`
	ProductType pricing.ProductType `json:"product_type" binding:"required"`
}

// GetWishlist retrieves a user's wishlist with pagination
func (s *Service) GetWishlist(ctx context.Context, userID uint, page, limit int) (*WishlistResponse, error) {
	key := cache.WishlistPageKey(userID, page, limit)

	var cached WishlistResponse
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		return &cached, nil
	}

	var total int64
	if err := s.db.Model(&WishlistItem{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count wishlist items: %w", err)
	}

	pageInfo := pagination.New(total, page, limit)

	var items []WishlistItem
	if err := s.db.Where("user_id = ?", userID).
		Order("added_at desc").
		Offset(pageInfo.Offset()).Limit(pageInfo.Limit).
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve wishlist items: %w", err)
	}

	wishlistItems := make([]WishlistItemResponse, len(items))
	for i, item := range items {
		wishlistItems[i] = WishlistItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductType: item.ProductType,
			AddedAt:     item.AddedAt,
		}
	}

	if err := s.loadProductDetails(wishlistItems); err != nil {
		return nil, err
	}

	response := &WishlistResponse{
		Items:      wishlistItems,
		Count:      len(wishlistItems),
		Pagination: pageInfo,
	}

	if err := s.cache.Set(ctx, key, response, s.config.Cache.ListTTL); err != nil {
		s.logger.WithError(err).Warn("failed to cache wishlist page")
	}

	return response, nil
}

// AddToWishlist adds a product to the wishlist
func (s *Service) AddToWishlist(ctx context.Context, userID uint, req *AddToWishlistRequest) (*WishlistItemResponse, error) {
	if !req.ProductType.IsValid() {
		return nil, fmt.Errorf("unknown product type %q", req.ProductType)
	}

	var prod product.Product
	result := s.db.Where("id = ? AND product_type = ? AND is_active = ?", req.ProductID, req.ProductType, true).First(&prod)
	if result.Error != nil {
		return nil, fmt.Errorf("product not found or inactive")
	}

	var existingItem WishlistItem
	if s.db.Where("user_id = ? AND product_id = ?", userID, req.ProductID).First(&existingItem).Error == nil {
		return nil, ErrDuplicateItem
	}

	wishlistItem := WishlistItem{
		UserID:      userID,
		ProductID:   req.ProductID,
		ProductType: req.ProductType,
		AddedAt:     time.Now().UTC(),
	}

	if err := s.db.Create(&wishlistItem).Error; err != nil {
		return nil, fmt.Errorf("failed to add item to wishlist: %w", err)
	}

	s.invalidate(ctx, userID)

	response := WishlistItemResponse{
		ID:          wishlistItem.ID,
		ProductID:   wishlistItem.ProductID,
		ProductType: wishlistItem.ProductType,
		AddedAt:     wishlistItem.AddedAt,
	}

	responseItems := []WishlistItemResponse{response}
	if err := s.loadProductDetails(responseItems); err != nil {
		return nil, err
	}

	return &responseItems[0], nil
}

// RemoveFromWishlist removes a product from the wishlist
func (s *Service) RemoveFromWishlist(ctx context.Context, userID, productID uint) error {
	result := s.db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&WishlistItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove item from wishlist: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("item not found in wishlist")
	}

	s.invalidate(ctx, userID)
	return nil
}

// ClearWishlist removes all items from the wishlist
func (s *Service) ClearWishlist(ctx context.Context, userID uint) error {
	if err := s.db.Where("user_id = ?", userID).Delete(&WishlistItem{}).Error; err != nil {
		return err
	}

	s.invalidate(ctx, userID)
	return nil
}

// IsInWishlist checks if a product is in the user's wishlist
func (s *Service) IsInWishlist(userID, productID uint) (bool, error) {
	var count int64
	err := s.db.Model(&WishlistItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	return count > 0, err
}

// MoveToCart moves a product from wishlist to cart
func (s *Service) MoveToCart(ctx context.Context, userID, productID uint, quantity int) error {
	var item WishlistItem
	if err := s.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error; err != nil {
		return fmt.Errorf("item not found in wishlist")
	}

	userIDPtr := &userID
	addToCartReq := &cart.AddToCartRequest{
		ProductID:   productID,
		ProductType: item.ProductType,
		Quantity:    quantity,
	}

	if _, err := s.cartService.AddToCart(ctx, userIDPtr, "", addToCartReq); err != nil {
		return fmt.Errorf("failed to add item to cart: %w", err)
	}

	return s.RemoveFromWishlist(ctx, userID, productID)
}

// Private helper methods

func (s *Service) loadProductDetails(items []WishlistItemResponse) error {
	for i := range items {
		var prod product.Product
		err := s.db.Preload("Brand").
			Where("id = ?", items[i].ProductID).First(&prod).Error
		if err != nil {
			items[i].IsAvailable = false
			continue
		}
		items[i].Product = &prod
		items[i].IsAvailable = prod.IsActive && prod.IsInStock()
		items[i].CurrentPrice = prod.Price
	}

	return nil
}

func (s *Service) invalidate(ctx context.Context, userID uint) {
	if err := s.cache.Invalidate(ctx, cache.WishlistScope(userID)); err != nil {
		s.logger.WithError(err).Warn("failed to invalidate wishlist cache")
	}
}
