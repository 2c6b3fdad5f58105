package handlers

import (
	"errors"
	"net/http"

	"github.com/martinkasobkova-alt/zenyzenam/internal/models"
	"github.com/martinkasobkova-alt/zenyzenam/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UpdateServicesRequest struct {
	ServicesOffered []uint `json:"servicesOffered"`
	ServicesNeeded  []uint `json:"servicesNeeded"`
}

type UpdateCityRequest struct {
	City string `json:"city" binding:"required"`
}

type UpdateAvatarRequest struct {
	Avatar string `json:"avatar" binding:"required"`
}

func (h *Handler) GetProfile(c *gin.Context) {
	userID := currentUserID(c)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			h.logger.Error("Failed to fetch profile", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		}
		return
	}

	payload, err := h.userWithServices(user)
	if err != nil {
		h.logger.Error("Failed to resolve services", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}

	c.JSON(http.StatusOK, payload)
}

func (h *Handler) UpdateServices(c *gin.Context) {
	var req UpdateServicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := currentUserID(c)
	err := h.profileService.ReplaceServiceLinks(userID, req.ServicesOffered, req.ServicesNeeded)
	if err != nil {
		if errors.Is(err, services.ErrUnknownService) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to update services", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update services"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Services updated successfully"})
}

func (h *Handler) UpdateCity(c *gin.Context) {
	var req UpdateCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "City is required"})
		return
	}

	if err := h.db.Model(&models.User{}).Where("id = ?", currentUserID(c)).Update("city", req.City).Error; err != nil {
		h.logger.Error("Failed to update city", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update city"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "City updated successfully"})
}

func (h *Handler) UpdateAvatar(c *gin.Context) {
	var req UpdateAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Avatar is required"})
		return
	}

	if err := h.db.Model(&models.User{}).Where("id = ?", currentUserID(c)).Update("avatar", req.Avatar).Error; err != nil {
		h.logger.Error("Failed to update avatar", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update avatar"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Avatar updated successfully"})
}

func (h *Handler) DeleteProfile(c *gin.Context) {
	userID := currentUserID(c)

	if err := h.profileService.DeleteAccount(userID); err != nil {
		h.logger.Error("Failed to delete profile", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete profile"})
		return
	}

	h.auditService.LogAction(&userID, "DELETE_ACCOUNT", "", nil, c.ClientIP())

	c.JSON(http.StatusOK, gin.H{"message": "Profile deleted successfully"})
}
