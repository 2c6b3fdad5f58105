package handlers

import (
	"errors"
	"net/http"

	"github.com/martinkasobkova-alt/zenyzenam/internal/models"
	"github.com/martinkasobkova-alt/zenyzenam/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ResetRequestRequest struct {
	Email string `json:"email" binding:"required"`
}

type ResetConfirmRequest struct {
	Email       string `json:"email" binding:"required"`
	ResetCode   string `json:"resetCode" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

func (h *Handler) RequestPasswordReset(c *gin.Context) {
	var req ResetRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Email not found"})
		} else {
			h.logger.Error("Failed to look up user", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to request password reset"})
		}
		return
	}

	reset, err := h.resetService.CreateRequest(user.ID)
	if err != nil {
		h.logger.Error("Failed to create reset request", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to request password reset"})
		return
	}

	// Reset mail goes out synchronously: email is the only channel for
	// the code, so when delivery fails the code must come back in-band.
	if err := h.mailerService.Send(services.NewResetEmail(user.Email, user.Name, reset.ResetCode)); err != nil {
		h.logger.Warn("Failed to send reset email, returning code in response", "error", err)
		c.JSON(http.StatusOK, gin.H{
			"message":   "Reset code generated",
			"resetCode": reset.ResetCode,
			"email":     user.Email,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reset kód byl odeslán na tvůj email",
		"email":   user.Email,
	})
}

func (h *Handler) ConfirmPasswordReset(c *gin.Context) {
	var req ResetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email, reset code, and new password are required"})
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Email not found"})
		} else {
			h.logger.Error("Failed to look up user", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		}
		return
	}

	err := h.resetService.Confirm(user.ID, req.ResetCode, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPasswordTooShort):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 6 characters"})
		case errors.Is(err, services.ErrResetCodeInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired reset code"})
		default:
			h.logger.Error("Failed to reset password", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}
