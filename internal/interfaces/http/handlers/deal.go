// internal/interfaces/http/handlers/deal.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/tireshop-backend/internal/config"
	"github.com/your-org/tireshop-backend/internal/domain/deal"
	"gorm.io/gorm"
)

// DealHandler handles deal endpoints
type DealHandler struct {
	dealService *deal.Service
	config      *config.Config
}

// NewDealHandler creates a new deal handler
func NewDealHandler(dealService *deal.Service, cfg *config.Config) *DealHandler {
	return &DealHandler{
		dealService: dealService,
		config:      cfg,
	}
}

// GetDeals handles GET /deals - only currently active deals are returned
func (h *DealHandler) GetDeals(c *gin.Context) {
	page := 1
	if pageParam := c.Query("page"); pageParam != "" {
		if p, err := strconv.Atoi(pageParam); err == nil {
			page = p
		}
	}

	deals, err := h.dealService.ListActive(c.Request.Context(), page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve deals",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Deals retrieved successfully",
		"data":    deals,
	})
}

// GetDeal handles GET /deals/:id
func (h *DealHandler) GetDeal(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid deal ID",
		})
		return
	}

	d, err := h.dealService.GetDeal(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Deal not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve deal",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Deal retrieved successfully",
		"data":    d,
	})
}

// CreateDeal handles POST /admin/deals
func (h *DealHandler) CreateDeal(c *gin.Context) {
	var req deal.CreateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	d, err := h.dealService.CreateDeal(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Deal created successfully",
		"data":    d,
	})
}

// UpdateDeal handles PUT /admin/deals/:id
func (h *DealHandler) UpdateDeal(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid deal ID",
		})
		return
	}

	var req deal.UpdateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	d, err := h.dealService.UpdateDeal(c.Request.Context(), uint(id), &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Deal not found",
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Deal updated successfully",
		"data":    d,
	})
}

// DeleteDeal handles DELETE /admin/deals/:id
func (h *DealHandler) DeleteDeal(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid deal ID",
		})
		return
	}

	if err := h.dealService.DeleteDeal(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Deal not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete deal",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Deal deleted successfully",
	})
}
