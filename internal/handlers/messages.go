package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/martinkasobkova-alt/zenyzenam/internal/models"
	"github.com/martinkasobkova-alt/zenyzenam/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SendMessageRequest struct {
	ToUserID uint   `json:"toUserId" binding:"required"`
	Message  string `json:"message" binding:"required"`
}

// MessageRow is a message joined with both parties' public fields,
// as the conversation view renders it.
type MessageRow struct {
	ID         uint      `json:"id"`
	FromUserID uint      `json:"from_user_id"`
	ToUserID   uint      `json:"to_user_id"`
	Message    string    `json:"message"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
	FromName   string    `json:"from_name"`
	FromEmail  string    `json:"from_email"`
	FromAvatar string    `json:"from_avatar"`
	ToName     string    `json:"to_name"`
	ToEmail    string    `json:"to_email"`
	ToAvatar   string    `json:"to_avatar"`
}

func (h *Handler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Recipient and message are required"})
		return
	}

	userID := currentUserID(c)

	var sender models.User
	if err := h.db.First(&sender, userID).Error; err != nil {
		h.logger.Error("Failed to load sender", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	var recipient models.User
	if err := h.db.First(&recipient, req.ToUserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipient not found"})
		} else {
			h.logger.Error("Failed to load recipient", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		}
		return
	}

	message := models.Message{
		FromUserID: userID,
		ToUserID:   req.ToUserID,
		Body:       req.Message,
	}
	if err := h.db.Create(&message).Error; err != nil {
		h.logger.Error("Failed to create message", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	h.auditService.LogAction(&userID, "SEND_MESSAGE", recipient.Email, nil, c.ClientIP())
	h.mailerService.SendAsync(services.NewMessageEmail(
		recipient.Email, recipient.Name, sender.Name, sender.Email, req.Message,
	))

	c.JSON(http.StatusCreated, message)
}

func (h *Handler) ListMessages(c *gin.Context) {
	userID := currentUserID(c)

	rows := []MessageRow{}
	err := h.db.Table("messages m").
		Select(`m.id, m.from_user_id, m.to_user_id, m.message, m.read, m.created_at,
			u_from.name AS from_name, u_from.email AS from_email, u_from.avatar AS from_avatar,
			u_to.name AS to_name, u_to.email AS to_email, u_to.avatar AS to_avatar`).
		Joins("JOIN users u_from ON m.from_user_id = u_from.id").
		Joins("JOIN users u_to ON m.to_user_id = u_to.id").
		Where("m.from_user_id = ? OR m.to_user_id = ?", userID, userID).
		Order("m.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		h.logger.Error("Failed to fetch messages", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	c.JSON(http.StatusOK, rows)
}
