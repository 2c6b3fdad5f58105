package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/martinkasobkova-alt/zenyzenam/internal/config"
	"github.com/martinkasobkova-alt/zenyzenam/internal/models"
	"github.com/martinkasobkova-alt/zenyzenam/internal/repository"
	"github.com/martinkasobkova-alt/zenyzenam/internal/services"
	"github.com/martinkasobkova-alt/zenyzenam/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func setupTestHandler(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := config.Config{
		JWTSecret: "test-secret-12345678901234567890123456789012",
	}

	matcher := services.NewMatcherService(db)
	profiles := services.NewProfileService(db)
	resets := services.NewResetService(db)
	tokens := services.NewTokenService(cfg.JWTSecret, time.Hour)
	mailer := services.NewMailerService("", "Test <test@example.com>", logger)
	audit := services.NewAuditService(db, logger)

	// Dummy redis client (not connected) with no retries
	rdb := redis.NewClient(&redis.Options{
		Addr:       "localhost:1",
		MaxRetries: -1,
	})

	h := NewHandler(cfg, logger, db, rdb, matcher, profiles, resets, tokens, mailer, audit)
	return h, db
}

func setupTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return h.SetupRouter(nil)
}

func seedTestCatalog(t *testing.T, db *gorm.DB, names ...string) []models.Service {
	t.Helper()
	out := make([]models.Service, 0, len(names))
	for _, name := range names {
		svc := models.Service{Name: name}
		if err := db.Create(&svc).Error; err != nil {
			t.Fatalf("failed to seed service %q: %v", name, err)
		}
		out = append(out, svc)
	}
	return out
}

func createTestUser(t *testing.T, db *gorm.DB, name, email, password, city string) models.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := models.User{Name: name, Email: email, PasswordHash: hash, City: city, Avatar: "avatar1"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %q: %v", email, err)
	}
	return user
}

func bearerToken(t *testing.T, h *Handler, user models.User) string {
	t.Helper()
	token, err := h.tokenService.Generate(user.ID, user.Email)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return "Bearer " + token
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func doJSON(r *gin.Engine, method, path, auth string, body interface{}) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		buf = bytes.NewBuffer(jsonBody)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
