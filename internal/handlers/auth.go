package handlers

import (
	"errors"
	"net/http"

	"github.com/martinkasobkova-alt/zenyzenam/internal/models"
	"github.com/martinkasobkova-alt/zenyzenam/internal/services"
	"github.com/martinkasobkova-alt/zenyzenam/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	City            string `json:"city" binding:"required"`
	Bio             string `json:"bio"`
	Avatar          string `json:"avatar"`
	ServicesOffered []uint `json:"servicesOffered"`
	ServicesNeeded  []uint `json:"servicesNeeded"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userPayload struct {
	models.User
	ServicesOffered []models.Service `json:"servicesOffered"`
	ServicesNeeded  []models.Service `json:"servicesNeeded"`
}

func (h *Handler) userWithServices(user models.User) (userPayload, error) {
	offered, needed, err := h.profileService.ResolveServices(user.ID)
	if err != nil {
		return userPayload{}, err
	}
	return userPayload{User: user, ServicesOffered: offered, ServicesNeeded: needed}, nil
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Check if user exists (exact, case-sensitive email match)
	var existing models.User
	if err := h.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	if req.Avatar == "" {
		req.Avatar = "avatar1"
	}

	newUser := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		City:         req.City,
		Bio:          req.Bio,
		Avatar:       req.Avatar,
	}

	// User and both link sets commit together so a bad service id never
	// leaves an orphaned half-registered profile.
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newUser).Error; err != nil {
			return err
		}
		return h.profileService.AttachLinks(tx, newUser.ID, req.ServicesOffered, req.ServicesNeeded)
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownService):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, gorm.ErrDuplicatedKey):
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		default:
			h.logger.Error("Failed to register user", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		}
		return
	}

	token, err := h.tokenService.Generate(newUser.ID, newUser.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	h.auditService.LogAction(&newUser.ID, "REGISTER", newUser.Email, nil, c.ClientIP())
	h.mailerService.SendAsync(services.NewWelcomeEmail(
		newUser.Email, newUser.Name, newUser.City,
		len(req.ServicesOffered), len(req.ServicesNeeded),
	))

	payload, err := h.userWithServices(newUser)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": payload, "token": token})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	result := h.db.Where("email = ?", req.Email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		} else {
			h.logger.Error("Failed to look up user", "error", result.Error)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		}
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.tokenService.Generate(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	payload, err := h.userWithServices(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	h.auditService.LogAction(&user.ID, "LOGIN", user.Email, nil, c.ClientIP())

	c.JSON(http.StatusOK, gin.H{"user": payload, "token": token})
}
