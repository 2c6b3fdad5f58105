package repository

import (
	"fmt"
	"log"
	"strings"

	"github.com/martinkasobkova-alt/zenyzenam/internal/config"
	"github.com/martinkasobkova-alt/zenyzenam/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DefaultServices is the catalog seeded at first boot.
var DefaultServices = []string{
	"Hlídání dětí",
	"Výuka jazyků",
	"Koučink",
	"Účetnictví",
	"Právní poradenství",
	"IT podpora",
	"Grafický design",
	"Psaní textů",
	"Překlady",
	"Fotografie",
	"Make-up",
	"Kadeřnictví",
	"Masáže",
	"Cvičení/fitness",
	"Vaření",
	"Úklid",
	"Žehlení",
	"Zahradničení",
	"Opravy oblečení",
	"Výměna oblečení",
	"Společnost na aktivity",
	"Doprovod k lékaři",
	"Pomoc se stěhováním",
	"Pomoc se zvířaty",
}

func InitDB(cfg config.Config) (*gorm.DB, error) {
	var dialer gorm.Dialector
	if strings.HasPrefix(cfg.DatabaseURL, "postgres") {
		dialer = postgres.Open(cfg.DatabaseURL)
	} else if strings.HasPrefix(cfg.DatabaseURL, "sqlite") {
		dialer = sqlite.Open(strings.TrimPrefix(cfg.DatabaseURL, "sqlite://"))
	} else {
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.DatabaseURL)
	}

	db, err := gorm.Open(dialer, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func RunMigrations(databaseURL string, sourcePath string) error {
	if sourcePath == "" {
		sourcePath = "file://migration"
	}
	m, err := migrate.New(
		sourcePath,
		databaseURL,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run up migrations: %w", err)
	}

	log.Println("Database migrations ran successfully")
	return nil
}

// AutoMigrate builds the schema through gorm for drivers without SQL
// migrations (sqlite in local and test runs).
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.UserServiceOffered{},
		&models.UserServiceNeeded{},
		&models.Message{},
		&models.PasswordReset{},
		&models.AuditLog{},
	)
}

// SeedServices inserts the default catalog on an empty services table.
// Safe to call on every boot.
func SeedServices(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Service{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count services: %w", err)
	}
	if count > 0 {
		return nil
	}

	services := make([]models.Service, 0, len(DefaultServices))
	for _, name := range DefaultServices {
		services = append(services, models.Service{Name: name})
	}

	if err := db.Create(&services).Error; err != nil {
		return fmt.Errorf("failed to seed services: %w", err)
	}
	return nil
}
