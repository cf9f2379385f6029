// internal/interfaces/http/handlers/vehicle.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/tireshop-backend/internal/config"
	"github.com/your-org/tireshop-backend/internal/domain/vehicle"
	"github.com/your-org/tireshop-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// VehicleHandler handles saved vehicle endpoints
type VehicleHandler struct {
	vehicleService *vehicle.Service
	config         *config.Config
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(vehicleService *vehicle.Service, cfg *config.Config) *VehicleHandler {
	return &VehicleHandler{
		vehicleService: vehicleService,
		config:         cfg,
	}
}

// GetVehicles handles GET /vehicles
func (h *VehicleHandler) GetVehicles(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	response, err := h.vehicleService.ListVehicles(c.Request.Context(), *userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve vehicles",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Vehicles retrieved successfully",
		"data":    response,
	})
}

// AddVehicle handles POST /vehicles
func (h *VehicleHandler) AddVehicle(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	var req vehicle.AddVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	v, err := h.vehicleService.AddVehicle(c.Request.Context(), *userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to add vehicle",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Vehicle added successfully",
		"data":    v,
	})
}

// RemoveVehicle handles DELETE /vehicles/:id
func (h *VehicleHandler) RemoveVehicle(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	vehicleID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid vehicle ID",
		})
		return
	}

	if err := h.vehicleService.RemoveVehicle(c.Request.Context(), *userID, uint(vehicleID)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Vehicle removed successfully",
	})
}

// SetDefaultVehicle handles PUT /vehicles/:id/default
func (h *VehicleHandler) SetDefaultVehicle(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	vehicleID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid vehicle ID",
		})
		return
	}

	v, err := h.vehicleService.SetDefaultVehicle(c.Request.Context(), *userID, uint(vehicleID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Vehicle not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to set default vehicle",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Default vehicle updated successfully",
		"data":    v,
	})
}
