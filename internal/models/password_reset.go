package models

import (
	"time"
)

// PasswordReset is a single-use, time-bounded reset code. Several
// outstanding rows per user are allowed; confirmation honours only the
// most recent unused, unexpired one with a matching code.
type PasswordReset struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	ResetCode string    `gorm:"not null;size:6" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Used      bool      `gorm:"default:false" json:"used"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (PasswordReset) TableName() string {
	return "password_resets"
}
