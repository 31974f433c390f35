package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/premios/awards-api/internal/api/handler"
	"github.com/premios/awards-api/internal/api/middleware"
	"github.com/premios/awards-api/internal/core/domain"
	"github.com/premios/awards-api/internal/core/ports"
	"github.com/premios/awards-api/internal/core/service"
	"github.com/premios/awards-api/internal/infrastructure/config"
	mongorepo "github.com/premios/awards-api/internal/infrastructure/db/mongo"
	redisinfra "github.com/premios/awards-api/internal/infrastructure/db/redis"
	"github.com/premios/awards-api/internal/infrastructure/mail"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, roles ports.RoleCatalog, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("awards_auth"))

	// --- Dependencies ---
	userRepo := mongorepo.NewUserRepository(db)
	refreshRepo := mongorepo.NewRefreshTokenRepository(db)

	var mailer ports.NotificationSink
	if cfg.SMTP.Addr != "" {
		mailer = mail.NewSMTPSink(cfg.SMTP.Addr, cfg.SMTP.From)
	} else {
		mailer = mail.NewLogSink(log)
	}

	credentials := service.NewCredentialStore(cfg.Auth.BcryptCost)
	issuer := service.NewAccessTokenIssuer([]byte(cfg.Auth.JWTSecret), cfg.Auth.Issuer, cfg.Auth.AccessTokenTTL)
	refreshMgr := service.NewRefreshTokenManager(refreshRepo, cfg.Auth.RefreshTokenTTL, log)
	activationMgr := service.NewActivationTokenManager(userRepo, log)
	resetMgr := service.NewPasswordResetTokenManager(
		userRepo, credentials, mailer,
		redisinfra.NewResetGuard(rdb),
		cfg.Auth.ResetTokenTTL, cfg.Auth.ResetURL, log,
	)
	authService := service.NewAuthService(
		userRepo, roles, credentials, issuer,
		refreshMgr, activationMgr, resetMgr,
		mailer, cfg.Auth.ActivateURL, log,
	)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userRepo)
	authMiddleware := middleware.Auth(issuer)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)
	e.GET("/auth/activate/:token", authHandler.Activate)
	e.POST("/auth/password-reset/request", authHandler.RequestPasswordReset)
	e.POST("/auth/password-reset/confirm", authHandler.ConfirmPasswordReset)

	// --- Authenticated routes ---
	e.GET("/users/me", userHandler.Me, authMiddleware)

	admin := e.Group("/admin", authMiddleware, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/users/:username", userHandler.GetByUsername)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	return e
}
