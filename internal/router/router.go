package router

import (
	"time"

	"messaging-service/internal/auth"
	"messaging-service/internal/config"
	"messaging-service/internal/handler"
	"messaging-service/internal/middleware"
	"messaging-service/internal/repository"
	"messaging-service/internal/service"
	"messaging-service/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, registry *ws.Registry, logger *zap.Logger) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORSOrigins))
	r.Use(middleware.Metrics())

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	conversationRepo := repository.NewConversationRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	// Initialize services
	tokens := auth.NewTokenManager(cfg.Auth.SecretKey, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)
	authService := auth.NewService(userRepo, tokens)
	conversationService := service.NewConversationService(conversationRepo)
	dispatcher := ws.NewDispatcher(registry, logger)
	messageService := service.NewMessageService(messageRepo, conversationRepo, dispatcher, logger)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, logger)
	userHandler := handler.NewUserHandler(userRepo, logger)
	conversationHandler := handler.NewConversationHandler(conversationService, logger)
	messageHandler := handler.NewMessageHandler(messageService, logger)
	presenceHandler := handler.NewPresenceHandler(registry, userRepo, logger)
	healthHandler := handler.NewHealthHandler(db, redisClient)
	wsHandler := ws.NewHandler(registry, authService, logger)

	// Health endpoints (no auth)
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/metrics", middleware.MetricsHandler())

	api := r.Group("/api")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// The handshake authenticates via query token before upgrading
		api.GET("/ws", wsHandler.HandleWebSocket)

		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(authService))
		{
			authenticated.GET("/users", userHandler.List)

			authenticated.POST("/conversations", conversationHandler.Create)
			authenticated.GET("/conversations", conversationHandler.List)
			authenticated.GET("/conversations/:id", conversationHandler.Get)
			authenticated.POST("/conversations/:id/members", conversationHandler.AddMember)
			authenticated.GET("/conversations/:id/messages", messageHandler.List)
			authenticated.POST("/conversations/:id/messages", messageHandler.Send)

			authenticated.GET("/presence/online", presenceHandler.Online)
			authenticated.GET("/presence/:userId", presenceHandler.Status)
		}
	}

	return r
}
