package services

import (
	"github.com/martinkasobkova-alt/zenyzenam/internal/models"

	"gorm.io/gorm"
)

// Match is a same-city user who offers at least one service the
// requester needs. ServicesOffered holds only the overlap, not the
// candidate's full offered list.
type Match struct {
	models.User
	ServicesOffered []models.Service `json:"servicesOffered"`
}

type MatcherService struct {
	db *gorm.DB
}

func NewMatcherService(db *gorm.DB) *MatcherService {
	return &MatcherService{db: db}
}

// FindMatches returns candidates in the requester's city whose offered
// services intersect the requester's needed set. Each candidate appears
// once regardless of how many services overlap. An empty needed set
// yields an empty result. Returns gorm.ErrRecordNotFound when the
// requester does not exist.
func (s *MatcherService) FindMatches(userID uint) ([]Match, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}

	var neededIDs []uint
	if err := s.db.Model(&models.UserServiceNeeded{}).
		Where("user_id = ?", userID).
		Pluck("service_id", &neededIDs).Error; err != nil {
		return nil, err
	}

	matches := []Match{}
	if len(neededIDs) == 0 {
		return matches, nil
	}

	var candidates []models.User
	if err := s.db.Distinct("users.*").
		Joins("JOIN user_services_offered uso ON uso.user_id = users.id").
		Where("users.city = ? AND users.id <> ? AND uso.service_id IN ?", user.City, userID, neededIDs).
		Find(&candidates).Error; err != nil {
		return nil, err
	}

	for _, candidate := range candidates {
		var overlap []models.Service
		if err := s.db.
			Joins("JOIN user_services_offered uso ON uso.service_id = services.id").
			Where("uso.user_id = ? AND services.id IN ?", candidate.ID, neededIDs).
			Find(&overlap).Error; err != nil {
			return nil, err
		}

		matches = append(matches, Match{
			User:            candidate,
			ServicesOffered: overlap,
		})
	}

	return matches, nil
}
