package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/consultly/marketplace-api/docs"
	"github.com/consultly/marketplace-api/internal/api/handler"
	"github.com/consultly/marketplace-api/internal/api/middleware"
	"github.com/consultly/marketplace-api/internal/core/domain"
	"github.com/consultly/marketplace-api/internal/core/service"
	mongodb "github.com/consultly/marketplace-api/internal/infrastructure/db/mongo"
	redisinfra "github.com/consultly/marketplace-api/internal/infrastructure/db/redis"
	"github.com/consultly/marketplace-api/internal/infrastructure/storage"
	"github.com/consultly/marketplace-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	// --- Dependencies ---
	accountRepo := mongodb.NewAccountRepository(db)
	credentialRepo := mongodb.NewCredentialRepository(db)
	clientRepo := mongodb.NewClientProfileRepository(db)
	consultantRepo := mongodb.NewConsultantProfileRepository(db)

	sessions := redisinfra.NewSessionStore(rdb)
	directoryCache := redisinfra.NewDirectoryCache(rdb, log)

	pictures, err := storage.NewPictureStore(db, cfg.StorageBaseURL)
	if err != nil {
		return nil, err
	}

	authService := service.NewAuthService(credentialRepo, sessions, cfg.JWTSecret, cfg.TokenTTL)
	identityService := service.NewIdentityService(accountRepo, clientRepo, consultantRepo, log)
	profileService := service.NewProfileService(clientRepo, consultantRepo, directoryCache, log)
	directoryService := service.NewDirectoryService(consultantRepo, directoryCache, cfg.StorageBaseURL, log)

	authHandler := handler.NewAuthHandler(authService)
	identityHandler := handler.NewIdentityHandler(identityService)
	profileHandler := handler.NewProfileHandler(profileService, pictures)
	directoryHandler := handler.NewDirectoryHandler(directoryService)
	mediaHandler := handler.NewMediaHandler(pictures)

	authMiddleware := middleware.Auth(authService)
	anyRole := middleware.RBAC(accountRepo, domain.RoleClient, domain.RoleConsultant)
	consultantOnly := middleware.RBAC(accountRepo, domain.RoleConsultant)

	// --- Auth routes ---
	e.POST("/signup", authHandler.Signup)
	e.POST("/login", authHandler.Login)
	e.GET("/v1/session", authHandler.Session)
	e.POST("/v1/logout", authHandler.Logout)

	// --- Workflow routes ---
	v1 := e.Group("/v1", authMiddleware)
	v1.POST("/identity/resolve", identityHandler.Resolve)
	v1.GET("/consultants", directoryHandler.List)

	profile := v1.Group("/profile", anyRole)
	profile.GET("", profileHandler.Get)
	profile.PUT("", profileHandler.Save)
	v1.POST("/profile/picture", profileHandler.UploadPicture, consultantOnly)

	// --- Public object storage ---
	e.GET("/storage/v1/object/public/consultant-pictures/:key", mediaHandler.Serve)

	// --- Health probes, metrics, docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}
