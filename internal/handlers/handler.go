package handlers

import (
	"log/slog"

	"github.com/martinkasobkova-alt/zenyzenam/internal/config"
	"github.com/martinkasobkova-alt/zenyzenam/internal/services"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Handler struct {
	cfg            config.Config
	logger         *slog.Logger
	db             *gorm.DB
	rdb            *redis.Client
	matcherService *services.MatcherService
	profileService *services.ProfileService
	resetService   *services.ResetService
	tokenService   *services.TokenService
	mailerService  *services.MailerService
	auditService   *services.AuditService
}

func NewHandler(
	cfg config.Config,
	logger *slog.Logger,
	db *gorm.DB,
	rdb *redis.Client,
	matcherService *services.MatcherService,
	profileService *services.ProfileService,
	resetService *services.ResetService,
	tokenService *services.TokenService,
	mailerService *services.MailerService,
	auditService *services.AuditService,
) *Handler {
	return &Handler{
		cfg:            cfg,
		logger:         logger,
		db:             db,
		rdb:            rdb,
		matcherService: matcherService,
		profileService: profileService,
		resetService:   resetService,
		tokenService:   tokenService,
		mailerService:  mailerService,
		auditService:   auditService,
	}
}
