// internal/domain/deal/service.go
package deal

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/tireshop-backend/internal/config"
	"github.com/your-org/tireshop-backend/internal/infrastructure/cache"
	"github.com/your-org/tireshop-backend/internal/pkg/pagination"
	"gorm.io/gorm"
)

// Service handles deal business logic
type Service struct {
	db     *gorm.DB
	cache  cache.Store
	config *config.Config
	logger *logrus.Logger
}

// NewService creates a new deal service
func NewService(db *gorm.DB, cacheStore cache.Store, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		db:     db,
		cache:  cacheStore,
		config: cfg,
		logger: logger,
	}
}

// DealListResponse represents the active deals for one page
type DealListResponse struct {
	Deals      []Deal                `json:"deals"`
	Pagination pagination.Pagination `json:"pagination"`
}

// CreateDealRequest represents deal creation data (admin)
type CreateDealRequest struct {
	Title              string `json:"title" binding:"required"`
	Description        string `json:"description"`
	DiscountPercentage int    `json:"discount_percentage" binding:"required,min=1,max=100"`
	BrandID            *uint  `json:"brand_id"`
	ValidFrom          string `json:"valid_from"`
	ValidTo            string `json:"valid_to" binding:"required"`
	ImageURL           string `json:"image_url"`
}

// UpdateDealRequest represents deal update data (admin)
type UpdateDealRequest struct {
	Title              *string `json:"title"`
	Description        *string `json:"description"`
	DiscountPercentage *int    `json:"discount_percentage"`
	BrandID            *uint   `json:"brand_id"`
	ValidFrom          *string `json:"valid_from"`
	ValidTo            *string `json:"valid_to"`
	ImageURL           *string `json:"image_url"`
}

// ListActive returns the requested page of currently active deals.
// Deals are fetched in their admin-defined order, filtered by expiry
// in-memory, and paginated with the storefront page size. Results are
// served through the query cache; deal mutations invalidate it.
func (s *Service) ListActive(ctx context.Context, page int) (*DealListResponse, error) {
	if page < 1 {
		page = 1
	}

	var cached DealListResponse
	if found, err := s.cache.Get(ctx, cache.DealsPageKey(page), &cached); err == nil && found {
		return &cached, nil
	}

	var deals []Deal
	if err := s.db.Preload("Brand").Order("created_at DESC, id DESC").Find(&deals).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve deals: %w", err)
	}

	response, key := activePage(deals, page, time.Now().UTC())
	if err := s.cache.Set(ctx, key, response, s.config.Cache.ListTTL); err != nil {
		s.logger.WithError(err).Warn("failed to cache active deals page")
	}

	return response, nil
}

// activePage filters, paginates, and names the cache entry for one page of
// active deals. Out-of-range requests clamp to the last real page, and the
// entry is keyed by the clamped page number so every alias of that page
// shares one cached copy.
func activePage(deals []Deal, page int, now time.Time) (*DealListResponse, string) {
	active := FilterActive(deals, now)
	pageItems, pageInfo := pagination.Slice(active, page, pagination.DefaultPageSize)

	response := &DealListResponse{
		Deals:      pageItems,
		Pagination: pageInfo,
	}
	return response, cache.DealsPageKey(pageInfo.Page)
}

// GetDeal retrieves a single deal by ID
func (s *Service) GetDeal(ctx context.Context, id uint) (*Deal, error) {
	key := cache.DealKey(id)

	var cached Deal
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		return &cached, nil
	}

	var d Deal
	result := s.db.Preload("Brand").Where("id = ?", id).First(&d)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to retrieve deal: %w", result.Error)
	}

	if err := s.cache.Set(ctx, key, &d, s.config.Cache.ListTTL); err != nil {
		s.logger.WithError(err).Warn("failed to cache deal")
	}

	return &d, nil
}

// CreateDeal creates a new deal (admin)
func (s *Service) CreateDeal(ctx context.Context, req *CreateDealRequest) (*Deal, error) {
	if _, ok := ParseDealTime(req.ValidTo); !ok {
		return nil, fmt.Errorf("valid_to %q is not a recognized date", req.ValidTo)
	}
	if req.ValidFrom != "" {
		if _, ok := ParseDealTime(req.ValidFrom); !ok {
			return nil, fmt.Errorf("valid_from %q is not a recognized date", req.ValidFrom)
		}
	}

	d := Deal{
		Title:              req.Title,
		Description:        req.Description,
		DiscountPercentage: req.DiscountPercentage,
		BrandID:            req.BrandID,
		ValidFrom:          req.ValidFrom,
		ValidTo:            req.ValidTo,
		ImageURL:           req.ImageURL,
	}

	if err := s.db.Create(&d).Error; err != nil {
		return nil, fmt.Errorf("failed to create deal: %w", err)
	}

	s.invalidate(ctx)
	return &d, nil
}

// UpdateDeal updates an existing deal (admin)
func (s *Service) UpdateDeal(ctx context.Context, id uint, req *UpdateDealRequest) (*Deal, error) {
	var d Deal
	if err := s.db.First(&d, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to retrieve deal: %w", err)
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.DiscountPercentage != nil {
		updates["discount_percentage"] = *req.DiscountPercentage
	}
	if req.BrandID != nil {
		updates["brand_id"] = *req.BrandID
	}
	if req.ValidFrom != nil {
		if _, ok := ParseDealTime(*req.ValidFrom); !ok {
			return nil, fmt.Errorf("valid_from %q is not a recognized date", *req.ValidFrom)
		}
		updates["valid_from"] = *req.ValidFrom
	}
	if req.ValidTo != nil {
		if _, ok := ParseDealTime(*req.ValidTo); !ok {
			return nil, fmt.Errorf("valid_to %q is not a recognized date", *req.ValidTo)
		}
		updates["valid_to"] = *req.ValidTo
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}

	if len(updates) > 0 {
		if err := s.db.Model(&d).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update deal: %w", err)
		}
	}

	s.invalidate(ctx)
	return &d, nil
}

// DeleteDeal removes a deal (admin)
func (s *Service) DeleteDeal(ctx context.Context, id uint) error {
	result := s.db.Delete(&Deal{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete deal: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	s.invalidate(ctx)
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, cache.ScopeDeals); err != nil {
		s.logger.WithError(err).Warn("failed to invalidate deals cache")
	}
}
