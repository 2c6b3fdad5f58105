package services

import (
	"errors"
	"time"

	"github.com/martinkasobkova-alt/zenyzenam/internal/models"
	"github.com/martinkasobkova-alt/zenyzenam/pkg/utils"

	"gorm.io/gorm"
)

var (
	// ErrResetCodeInvalid covers wrong, already-used and expired codes.
	ErrResetCodeInvalid = errors.New("invalid or expired reset code")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
)

const (
	resetCodeTTL      = 15 * time.Minute
	minPasswordLength = 6
)

type ResetService struct {
	db            *gorm.DB
	codeGenerator func() (string, error)
}

func NewResetService(db *gorm.DB) *ResetService {
	return &ResetService{
		db:            db,
		codeGenerator: utils.GenerateResetCode,
	}
}

// CreateRequest issues a fresh reset code for the user, valid for 15
// minutes. Earlier outstanding requests stay untouched.
func (s *ResetService) CreateRequest(userID uint) (*models.PasswordReset, error) {
	code, err := s.codeGenerator()
	if err != nil {
		return nil, err
	}

	reset := models.PasswordReset{
		UserID:    userID,
		ResetCode: code,
		ExpiresAt: time.Now().Add(resetCodeTTL),
	}
	if err := s.db.Create(&reset).Error; err != nil {
		return nil, err
	}
	return &reset, nil
}

// Confirm consumes the most recent matching unused, unexpired code and
// swaps in the new password hash. Both updates happen in one
// transaction so a code is never burned without the password changing.
func (s *ResetService) Confirm(userID uint, code, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}

	var reset models.PasswordReset
	err := s.db.
		Where("user_id = ? AND reset_code = ? AND used = ? AND expires_at > ?", userID, code, false, time.Now()).
		Order("created_at DESC").
		First(&reset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResetCodeInvalid
		}
		return err
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", userID).Update("password_hash", hash).Error; err != nil {
			return err
		}
		return tx.Model(&models.PasswordReset{}).Where("id = ?", reset.ID).Update("used", true).Error
	})
}
