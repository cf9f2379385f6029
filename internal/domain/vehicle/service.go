// internal/domain/vehicle/service.go
package vehicle

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/tireshop-backend/internal/config"
	"github.com/your-org/tireshop-backend/internal/infrastructure/cache"
	"gorm.io/gorm"
)

// Service handles the user's saved vehicles
type Service struct {
	db     *gorm.DB
	cache  cache.Store
	bus    Bus
	config *config.Config
	logger *logrus.Logger
}

// NewService creates a new vehicle service
func NewService(db *gorm.DB, cacheStore cache.Store, bus Bus, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		db:     db,
		cache:  cacheStore,
		bus:    bus,
		config: cfg,
		logger: logger,
	}
}

// AddVehicleRequest represents a vehicle to save
type AddVehicleRequest struct {
	Year      int    `json:"year" binding:"required,min=1950,max=2100"`
	Make      string `json:"make" binding:"required,max=100"`
	Model     string `json:"model" binding:"required,max=100"`
	Trim      string `json:"trim,omitempty" binding:"max=100"`
	TireSize  string `json:"tire_size,omitempty" binding:"max=50"`
	IsDefault bool   `json:"is_default"`
}

// VehicleListResponse represents a user's saved vehicles
type VehicleListResponse struct {
	Vehicles []Vehicle `json:"vehicles"`
	Count    int       `json:"count"`
}

// ListVehicles returns every vehicle a user has saved, newest first
func (s *Service) ListVehicles(ctx context.Context, userID uint) (*VehicleListResponse, error) {
	key := cache.VehiclesScope(userID)
	var cached VehicleListResponse
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	var vehicles []Vehicle
	if err := s.db.Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").
		Find(&vehicles).Error; err != nil {
		return nil, fmt.Errorf("failed to get vehicles: %w", err)
	}

	resp := &VehicleListResponse{Vehicles: vehicles, Count: len(vehicles)}
	if err := s.cache.Set(ctx, key, resp, s.config.Cache.ListTTL); err != nil {
		s.logger.WithError(err).Warn("Failed to cache vehicle list")
	}
	return resp, nil
}

// AddVehicle saves a new vehicle for a user and broadcasts the change
func (s *Service) AddVehicle(ctx context.Context, userID uint, req *AddVehicleRequest) (*Vehicle, error) {
	vehicle := &Vehicle{
		UserID:    userID,
		Year:      req.Year,
		Make:      req.Make,
		Model:     req.Model,
		Trim:      req.Trim,
		TireSize:  req.TireSize,
		IsDefault: req.IsDefault,
	}

	tx := s.db.Begin()
	if req.IsDefault {
		if err := tx.Model(&Vehicle{}).
			Where("user_id = ?", userID).
			Update("is_default", false).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to clear default vehicle: %w", err)
		}
	}
	if err := tx.Create(vehicle).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to add vehicle: %w", err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit vehicle: %w", err)
	}

	s.notifyChanged(ctx, userID, "added", vehicle.ID)
	return vehicle, nil
}

// RemoveVehicle deletes a saved vehicle and broadcasts the change
func (s *Service) RemoveVehicle(ctx context.Context, userID, vehicleID uint) error {
	result := s.db.Where("user_id = ?", userID).Delete(&Vehicle{}, vehicleID)
	if result.Error != nil {
		return fmt.Errorf("failed to remove vehicle: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("vehicle not found")
	}

	s.notifyChanged(ctx, userID, "removed", vehicleID)
	return nil
}

// SetDefaultVehicle marks one of the user's vehicles as their default
func (s *Service) SetDefaultVehicle(ctx context.Context, userID, vehicleID uint) (*Vehicle, error) {
	var vehicle Vehicle
	if err := s.db.Where("user_id = ?", userID).First(&vehicle, vehicleID).Error; err != nil {
		return nil, err
	}

	tx := s.db.Begin()
	if err := tx.Model(&Vehicle{}).
		Where("user_id = ?", userID).
		Update("is_default", false).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to clear default vehicle: %w", err)
	}
	if err := tx.Model(&vehicle).Update("is_default", true).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to set default vehicle: %w", err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit default vehicle: %w", err)
	}

	s.notifyChanged(ctx, userID, "updated", vehicleID)
	vehicle.IsDefault = true
	return &vehicle, nil
}

// notifyChanged invalidates the cached list and publishes the change so
// other instances and open sessions refresh their vehicle state
func (s *Service) notifyChanged(ctx context.Context, userID uint, action string, vehicleID uint) {
	if err := s.cache.Invalidate(ctx, cache.VehiclesScope(userID)); err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Warn("Failed to invalidate vehicle cache")
	}
	if err := s.bus.Publish(ctx, Event{UserID: userID, Action: action, VehicleID: vehicleID}); err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Warn("Failed to publish vehicle event")
	}
}
