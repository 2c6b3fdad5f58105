package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/martinkasobkova-alt/zenyzenam/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	servicesCacheKey = "services:catalog"
	servicesCacheTTL = 10 * time.Minute
)

type AddServiceRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *Handler) ListServices(c *gin.Context) {
	ctx := context.Background()

	// Redis cache lookup; any cache trouble falls through to the DB
	if h.rdb != nil {
		if val, err := h.rdb.Get(ctx, servicesCacheKey).Result(); err == nil {
			var cached []models.Service
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				c.JSON(http.StatusOK, cached)
				return
			}
		}
	}

	var catalog []models.Service
	if err := h.db.Order("name").Find(&catalog).Error; err != nil {
		h.logger.Error("Failed to fetch services", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch services"})
		return
	}

	if h.rdb != nil {
		if data, err := json.Marshal(catalog); err == nil {
			h.rdb.Set(ctx, servicesCacheKey, data, servicesCacheTTL)
		}
	}

	c.JSON(http.StatusOK, catalog)
}

func (h *Handler) AddService(c *gin.Context) {
	var req AddServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Service name is required"})
		return
	}

	service := models.Service{Name: req.Name}
	if err := h.db.Create(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Service already exists"})
			return
		}
		h.logger.Error("Failed to add service", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add service"})
		return
	}

	h.invalidateServicesCache()

	c.JSON(http.StatusCreated, service)
}

func (h *Handler) DeleteService(c *gin.Context) {
	id := c.Param("id")

	// Links referencing the service go with it
	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("service_id = ?", id).Delete(&models.UserServiceOffered{}).Error; err != nil {
			return err
		}
		if err := tx.Where("service_id = ?", id).Delete(&models.UserServiceNeeded{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Service{}).Error
	})
	if err != nil {
		h.logger.Error("Failed to delete service", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete service"})
		return
	}

	h.invalidateServicesCache()

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}

func (h *Handler) invalidateServicesCache() {
	if h.rdb != nil {
		h.rdb.Del(context.Background(), servicesCacheKey)
	}
}
