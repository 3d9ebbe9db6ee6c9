package router

import (
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/chyrp-social/backend/internal/handlers"
	"github.com/chyrp-social/backend/internal/middleware"
	"github.com/chyrp-social/backend/internal/models"
	"github.com/chyrp-social/backend/internal/query"
	"github.com/chyrp-social/backend/internal/repositories"
	"github.com/chyrp-social/backend/internal/storage"
	"github.com/chyrp-social/backend/pkg/config"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// SetupRoutes runs the schema migration and wires repositories, façade and
// handlers onto the echo instance
func SetupRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config, logger *zap.Logger) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Message{},
		&models.PostLike{},
		&models.PostSave{},
		&models.Follow{},
	)
	if err != nil {
		return err
	}
	logger.Info("Schema migration completed")

	store, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		return err
	}

	// Health check and uploaded media - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.Static("/uploads", store.Root())

	// --- Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	savedPostRepo := repositories.NewPostgresSavedPostRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	messageRepo := repositories.NewPostgresMessageRepository(db)

	facade := query.NewFacade(userRepo, postRepo, likeRepo, savedPostRepo, commentRepo, followRepo)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, facade, cfg.JWTSecret, cfg.TokenTTL)
	authHandler.RegisterAuthRoutes(authGroup)

	// --- Protected routes (require a bearer token) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuth(cfg.JWTSecret))

	userHandler := handlers.NewUserHandler(userRepo, followRepo, facade, store)
	userHandler.RegisterProfileRoutes(api)

	followHandler := handlers.NewFollowHandler(followRepo, userRepo)
	followHandler.RegisterFollowRoutes(api)

	postHandler := handlers.NewPostHandler(postRepo, facade, store)
	postHandler.RegisterPostRoutes(api)

	likeHandler := handlers.NewLikeHandler(likeRepo)
	likeHandler.RegisterLikeRoutes(api)

	savedPostHandler := handlers.NewSavedPostHandler(savedPostRepo)
	savedPostHandler.RegisterSavedPostRoutes(api)

	commentHandler := handlers.NewCommentHandler(commentRepo, facade)
	commentHandler.RegisterCommentRoutes(api)

	messageHandler := handlers.NewMessageHandler(messageRepo, facade)
	messageHandler.RegisterMessageRoutes(api)

	searchHandler := handlers.NewSearchHandler(facade)
	searchHandler.RegisterSearchRoutes(api)

	logger.Info("All routes configured")
	return nil
}
