package models

import (
	"time"
)

type Message struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FromUserID uint      `gorm:"not null;index" json:"from_user_id"`
	ToUserID   uint      `gorm:"not null;index" json:"to_user_id"`
	Body       string    `gorm:"column:message;not null;type:text" json:"message"`
	Read       bool      `gorm:"default:false" json:"read"`
	CreatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	From *User `gorm:"foreignKey:FromUserID" json:"from,omitempty"`
	To   *User `gorm:"foreignKey:ToUserID" json:"to,omitempty"`
}
