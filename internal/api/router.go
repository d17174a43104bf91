package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	redislib "github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"
	"gorm.io/gorm"

	_ "github.com/persoshop/persoshop-api/docs"
	"github.com/persoshop/persoshop-api/internal/api/handler"
	"github.com/persoshop/persoshop-api/internal/api/middleware"
	"github.com/persoshop/persoshop-api/internal/core/ports"
	"github.com/persoshop/persoshop-api/internal/core/service"
	"github.com/persoshop/persoshop-api/internal/infrastructure/db/postgres"
	"github.com/persoshop/persoshop-api/internal/infrastructure/db/redis"
	"github.com/persoshop/persoshop-api/pkg/logger"
)

// sessionTTL is the session token lifetime. The revocation marker TTL
// must cover it: a marker that expires before the oldest live token
// would let a revoked session back in.
const sessionTTL = 30 * 24 * time.Hour

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *gorm.DB, rdb *redislib.Client, images ports.ImageStore, jwtSecret string) *echo.Echo {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("persoshop"))
	e.Use(middleware.RoleGate(jwtSecret))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(db)
	photoRepo := postgres.NewPhotoRepository(db)
	propositionRepo := postgres.NewPropositionRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)

	revoker := redis.NewSessionRevoker(rdb, sessionTTL)

	authService := service.NewAuthService(userRepo, images, jwtSecret, sessionTTL, log)
	notificationService := service.NewNotificationService(notificationRepo, log)
	photoService := service.NewPhotoService(photoRepo, userRepo, images, notificationService, log)
	propositionService := service.NewPropositionService(propositionRepo, userRepo, images, notificationService, log)
	userService := service.NewUserService(userRepo, photoRepo, propositionRepo, images, notificationService, log)

	authHandler := handler.NewAuthHandler(authService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	photoHandler := handler.NewPhotoHandler(photoService)
	propositionHandler := handler.NewPropositionHandler(propositionService)
	userHandler := handler.NewUserHandler(userService)

	authMiddleware := middleware.Auth(jwtSecret, authService, revoker)

	// --- Auth routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)
	e.GET("/api/auth/user", authHandler.CurrentUser, authMiddleware)

	// --- Notifications ---
	notifications := e.Group("/api/notifications", authMiddleware)
	notifications.GET("", notificationHandler.List)
	notifications.POST("", notificationHandler.Enqueue)
	notifications.GET("/stream", notificationHandler.Stream)
	notifications.PATCH("/:notificationId", notificationHandler.MarkRead)

	// --- Photos ---
	photos := e.Group("/api/photos", authMiddleware)
	photos.POST("/upload", photoHandler.Upload)
	photos.GET("/user/:userId", photoHandler.ListForUser)
	photos.DELETE("/:photoId", photoHandler.Delete)

	// --- Propositions ---
	propositions := e.Group("/api/propositions", authMiddleware)
	propositions.POST("", propositionHandler.Create)
	propositions.GET("/user/:userId", propositionHandler.ListForUser)
	propositions.PATCH("/:propositionId", propositionHandler.UpdateStatus)

	// --- Users ---
	users := e.Group("/api/users", authMiddleware)
	users.GET("", userHandler.ListClients)
	users.GET("/:userId", userHandler.Get)
	users.PUT("/:userId", userHandler.UpdateProfile)

	// --- Operational surface ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
