package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campus-im/config"
	"campus-im/internal/handler"
	"campus-im/internal/model"
	"campus-im/internal/service"
	dbPkg "campus-im/pkg/db"
	"campus-im/pkg/jwt"
	"campus-im/pkg/logger"
	redisPkg "campus-im/pkg/redis"
	"campus-im/pkg/response"
	wsPkg "campus-im/pkg/websocket"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	log := logger.InitLogger(cfg.Log)
	defer log.Sync()

	logger.Info("campus-im starting",
		zap.String("port", cfg.Server.Port),
		zap.String("database_host", cfg.Database.Host),
		zap.Int("database_port", cfg.Database.Port),
		zap.String("database_name", cfg.Database.Database),
		zap.String("housekeeping_run_at", cfg.Housekeeping.RunAt),
		zap.String("log_level", cfg.Log.Level),
	)

	db, err := dbPkg.InitDB(cfg.Database)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer func() {
		if err := dbPkg.CloseDB(db); err != nil {
			logger.Error("close database failed", zap.Error(err))
		}
	}()
	logger.Info("database connected")

	if err := dbPkg.AutoMigrate(db,
		&model.User{},
		&model.Friendship{},
		&model.Group{},
		&model.GroupMember{},
		&model.Message{},
		&model.Reaction{},
		&model.Session{},
		&model.Notification{},
		&model.ErrorLog{},
	); err != nil {
		logger.Fatal("auto migration failed", zap.Error(err))
	}
	logger.Info("auto migration completed")

	// Presence is optional; the server runs without redis.
	if err := redisPkg.InitRedis(cfg.Redis); err != nil {
		logger.Warn("redis unavailable, presence disabled", zap.Error(err))
	} else {
		defer redisPkg.Close()
	}

	jwtSvc := jwt.NewJWTService(cfg.JWT)
	wsManager := wsPkg.NewManager()

	userSvc := service.NewUserService(db)
	sessionSvc := service.NewSessionService(db, jwtSvc)
	messageSvc := service.NewMessageService(db, wsManager)
	groupSvc := service.NewGroupService(db)
	notificationSvc := service.NewNotificationService(db)
	friendshipSvc := service.NewFriendshipService(db)

	userHandler := handler.NewUserHandler(userSvc, sessionSvc)
	sessionHandler := handler.NewSessionHandler(sessionSvc)
	messageHandler := handler.NewMessageHandler(messageSvc)
	groupHandler := handler.NewGroupHandler(groupSvc)
	notificationHandler := handler.NewNotificationHandler(notificationSvc)
	friendshipHandler := handler.NewFriendshipHandler(friendshipSvc)
	wsHandler := wsPkg.NewHandler(wsManager, jwtSvc, sessionSvc, cfg.WebSocket)

	// Housekeeping runs on its own timer, decoupled from request traffic.
	housekeeper := service.NewHousekeeper(db, cfg.Housekeeping.RunAt)
	hkCtx, hkCancel := context.WithCancel(context.Background())
	defer hkCancel()
	go housekeeper.Start(hkCtx)

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(logger.LoggerMiddleware())
	router.Use(logger.ErrorLoggerMiddleware())

	router.GET("/health", func(c *gin.Context) {
		status := "ok"
		if err := dbPkg.HealthCheck(db); err != nil {
			status = "db-down"
		}
		response.Success(c, gin.H{
			"status": status,
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	v1 := router.Group("/api/v1")
	{
		users := v1.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)

			authUsers := users.Group("")
			authUsers.Use(jwtSvc.AuthMiddleware(sessionSvc))
			{
				authUsers.GET("/profile", userHandler.GetProfile)
				authUsers.POST("/logout", userHandler.Logout)
				authUsers.DELETE("/me", userHandler.DeleteAccount)
				authUsers.GET("/online", userHandler.GetOnlineUsers)
			}
		}

		sessions := v1.Group("/sessions")
		sessions.Use(jwtSvc.AuthMiddleware(sessionSvc))
		{
			sessions.PUT("/:session_id/renew", sessionHandler.Renew)
		}

		messages := v1.Group("/messages")
		messages.Use(jwtSvc.AuthMiddleware(sessionSvc))
		{
			messages.POST("", messageHandler.Send)
			messages.POST("/:message_id/reactions", messageHandler.React)
			messages.DELETE("/:message_id", messageHandler.Delete)
		}

		conversations := v1.Group("/conversations")
		conversations.Use(jwtSvc.AuthMiddleware(sessionSvc))
		{
			conversations.GET("/:user_id/messages", messageHandler.ListDirect)
		}

		groups := v1.Group("/groups")
		groups.Use(jwtSvc.AuthMiddleware(sessionSvc))
		{
			groups.POST("", groupHandler.Create)
			groups.GET("/:group_id/messages", messageHandler.ListGroup)
			groups.GET("/:group_id/members", groupHandler.ListMembers)
			groups.POST("/:group_id/members", groupHandler.AddMember)
			groups.DELETE("/:group_id/members/:user_id", groupHandler.RemoveMember)
		}

		notifications := v1.Group("/notifications")
		notifications.Use(jwtSvc.AuthMiddleware(sessionSvc))
		{
			notifications.GET("", notificationHandler.List)
			notifications.PUT("/:notification_id/read", notificationHandler.MarkRead)
		}

		friendships := v1.Group("/friendships")
		friendships.Use(jwtSvc.AuthMiddleware(sessionSvc))
		{
			friendships.POST("", friendshipHandler.Request)
			friendships.PUT("/:user_id/accept", friendshipHandler.Accept)
			friendships.GET("", friendshipHandler.List)
		}
	}

	router.GET("/ws", wsHandler.Serve)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("http server listening", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	hkCancel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("http server shutdown failed", zap.Error(err))
	}

	logger.Info("server stopped")
}
