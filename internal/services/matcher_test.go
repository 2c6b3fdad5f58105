package services

import (
	"testing"

	"github.com/martinkasobkova-alt/zenyzenam/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.UserServiceOffered{},
		&models.UserServiceNeeded{},
		&models.Message{},
		&models.PasswordReset{},
		&models.AuditLog{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func seedCatalog(t *testing.T, db *gorm.DB, names ...string) []models.Service {
	t.Helper()
	services := make([]models.Service, 0, len(names))
	for _, name := range names {
		svc := models.Service{Name: name}
		if err := db.Create(&svc).Error; err != nil {
			t.Fatalf("failed to seed service %q: %v", name, err)
		}
		services = append(services, svc)
	}
	return services
}

func createUser(t *testing.T, db *gorm.DB, name, email, city string) models.User {
	t.Helper()
	user := models.User{Name: name, Email: email, PasswordHash: "x", City: city, Avatar: "avatar1"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %q: %v", email, err)
	}
	return user
}

func offer(t *testing.T, db *gorm.DB, userID uint, serviceIDs ...uint) {
	t.Helper()
	for _, id := range serviceIDs {
		if err := db.Create(&models.UserServiceOffered{UserID: userID, ServiceID: id}).Error; err != nil {
			t.Fatalf("failed to create offered link: %v", err)
		}
	}
}

func need(t *testing.T, db *gorm.DB, userID uint, serviceIDs ...uint) {
	t.Helper()
	for _, id := range serviceIDs {
		if err := db.Create(&models.UserServiceNeeded{UserID: userID, ServiceID: id}).Error; err != nil {
			t.Fatalf("failed to create needed link: %v", err)
		}
	}
}

func TestMatcherService_FindMatches(t *testing.T) {
	t.Run("City And Service Overlap", func(t *testing.T) {
		db := setupTestDB(t)
		svcs := seedCatalog(t, db, "Hlídání dětí", "Překlady", "Úklid")
		matcher := NewMatcherService(db)

		a := createUser(t, db, "Anna", "anna@example.com", "Brno")
		b := createUser(t, db, "Berta", "berta@example.com", "Brno")
		c := createUser(t, db, "Cecílie", "cecilie@example.com", "Praha")

		need(t, db, a.ID, svcs[0].ID, svcs[1].ID)
		offer(t, db, b.ID, svcs[1].ID, svcs[2].ID)
		offer(t, db, c.ID, svcs[0].ID)

		matches, err := matcher.FindMatches(a.ID)
		assert.NoError(t, err)
		assert.Len(t, matches, 1)
		assert.Equal(t, b.ID, matches[0].ID)

		// Only the overlap, not B's full offered list
		assert.Len(t, matches[0].ServicesOffered, 1)
		assert.Equal(t, svcs[1].ID, matches[0].ServicesOffered[0].ID)
		assert.Equal(t, "Překlady", matches[0].ServicesOffered[0].Name)
	})

	t.Run("Candidate Appears Once Despite Multiple Overlaps", func(t *testing.T) {
		db := setupTestDB(t)
		svcs := seedCatalog(t, db, "Koučink", "Masáže", "Vaření")
		matcher := NewMatcherService(db)

		a := createUser(t, db, "Anna", "anna@example.com", "Brno")
		b := createUser(t, db, "Berta", "berta@example.com", "Brno")

		need(t, db, a.ID, svcs[0].ID, svcs[1].ID, svcs[2].ID)
		offer(t, db, b.ID, svcs[0].ID, svcs[1].ID, svcs[2].ID)

		matches, err := matcher.FindMatches(a.ID)
		assert.NoError(t, err)
		assert.Len(t, matches, 1)
		assert.Len(t, matches[0].ServicesOffered, 3)
	})

	t.Run("Empty Needed Set Matches Nobody", func(t *testing.T) {
		db := setupTestDB(t)
		svcs := seedCatalog(t, db, "Koučink")
		matcher := NewMatcherService(db)

		a := createUser(t, db, "Anna", "anna@example.com", "Brno")
		b := createUser(t, db, "Berta", "berta@example.com", "Brno")
		offer(t, db, b.ID, svcs[0].ID)

		matches, err := matcher.FindMatches(a.ID)
		assert.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("Different City Never Matches", func(t *testing.T) {
		db := setupTestDB(t)
		svcs := seedCatalog(t, db, "Koučink", "Masáže")
		matcher := NewMatcherService(db)

		a := createUser(t, db, "Anna", "anna@example.com", "Brno")
		c := createUser(t, db, "Cecílie", "cecilie@example.com", "Praha")

		need(t, db, a.ID, svcs[0].ID, svcs[1].ID)
		offer(t, db, c.ID, svcs[0].ID, svcs[1].ID)

		matches, err := matcher.FindMatches(a.ID)
		assert.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("Requester Excluded From Own Results", func(t *testing.T) {
		db := setupTestDB(t)
		svcs := seedCatalog(t, db, "Koučink")
		matcher := NewMatcherService(db)

		a := createUser(t, db, "Anna", "anna@example.com", "Brno")
		need(t, db, a.ID, svcs[0].ID)
		offer(t, db, a.ID, svcs[0].ID)

		matches, err := matcher.FindMatches(a.ID)
		assert.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("Unknown Requester", func(t *testing.T) {
		db := setupTestDB(t)
		matcher := NewMatcherService(db)

		_, err := matcher.FindMatches(999)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}
