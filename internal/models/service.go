package models

import (
	"time"
)

type Service struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"unique;not null;size:100" json:"name"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// UserServiceOffered links a user to a service she offers.
// A (user, service) pair appears at most once.
type UserServiceOffered struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_offered_user_service" json:"user_id"`
	ServiceID uint `gorm:"not null;uniqueIndex:idx_offered_user_service" json:"service_id"`
}

func (UserServiceOffered) TableName() string {
	return "user_services_offered"
}

// UserServiceNeeded links a user to a service she is looking for.
type UserServiceNeeded struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_needed_user_service" json:"user_id"`
	ServiceID uint `gorm:"not null;uniqueIndex:idx_needed_user_service" json:"service_id"`
}

func (UserServiceNeeded) TableName() string {
	return "user_services_needed"
}
