package models

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null;size:100" json:"name"`
	Email        string    `gorm:"unique;not null;size:255;index" json:"email"`
	PasswordHash string    `gorm:"not null;size:255" json:"-"`
	City         string    `gorm:"not null;size:100;index" json:"city"`
	Bio          string    `gorm:"type:text" json:"bio"`
	Avatar       string    `gorm:"size:50;default:avatar1" json:"avatar"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}
