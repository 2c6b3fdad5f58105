package services

import (
	"errors"

	"github.com/martinkasobkova-alt/zenyzenam/internal/models"

	"gorm.io/gorm"
)

// ErrUnknownService is returned when a supplied service id is not in
// the catalog.
var ErrUnknownService = errors.New("unknown service id")

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// ReplaceServiceLinks atomically swaps a user's full offered and needed
// sets for the supplied ones. Existing links in both relations are
// removed first; an empty list leaves that relation empty.
func (s *ProfileService) ReplaceServiceLinks(userID uint, offered, needed []uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserServiceOffered{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserServiceNeeded{}).Error; err != nil {
			return err
		}
		return s.AttachLinks(tx, userID, offered, needed)
	})
}

// AttachLinks inserts offered and needed links for a user on the given
// handle, which may be a transaction. Duplicate ids in the input are
// collapsed so the (user, service) uniqueness invariant holds; an id
// missing from the catalog fails the whole call with ErrUnknownService.
func (s *ProfileService) AttachLinks(tx *gorm.DB, userID uint, offered, needed []uint) error {
	offered = dedupe(offered)
	needed = dedupe(needed)

	if err := validateServiceIDs(tx, union(offered, needed)); err != nil {
		return err
	}

	for _, serviceID := range offered {
		link := models.UserServiceOffered{UserID: userID, ServiceID: serviceID}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	for _, serviceID := range needed {
		link := models.UserServiceNeeded{UserID: userID, ServiceID: serviceID}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

// ResolveServices loads a user's offered and needed lists as catalog
// entries.
func (s *ProfileService) ResolveServices(userID uint) (offered, needed []models.Service, err error) {
	offered = []models.Service{}
	needed = []models.Service{}

	err = s.db.
		Joins("JOIN user_services_offered uso ON uso.service_id = services.id").
		Where("uso.user_id = ?", userID).
		Find(&offered).Error
	if err != nil {
		return nil, nil, err
	}

	err = s.db.
		Joins("JOIN user_services_needed usn ON usn.service_id = services.id").
		Where("usn.user_id = ?", userID).
		Find(&needed).Error
	if err != nil {
		return nil, nil, err
	}

	return offered, needed, nil
}

// DeleteAccount removes a user and everything she owns. Children go
// first inside one transaction so drivers without FK cascades (sqlite
// via AutoMigrate) behave like the postgres schema.
func (s *ProfileService) DeleteAccount(userID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserServiceOffered{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserServiceNeeded{}).Error; err != nil {
			return err
		}
		if err := tx.Where("from_user_id = ? OR to_user_id = ?", userID, userID).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.PasswordReset{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func union(a, b []uint) []uint {
	return dedupe(append(append([]uint{}, a...), b...))
}

func validateServiceIDs(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	var count int64
	if err := tx.Model(&models.Service{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(ids)) {
		return ErrUnknownService
	}
	return nil
}
