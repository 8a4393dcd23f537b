package internal

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"share-platform/pkg/config"
	"share-platform/pkg/database"
	"share-platform/pkg/idgen"
	"share-platform/pkg/jwt"
	"share-platform/pkg/logger"
	"share-platform/pkg/metrics"
	"share-platform/pkg/middleware"
	"share-platform/pkg/queue"
	"share-platform/pkg/s3"
	userHTTP "share-platform/services/user/internal/controller/http"
	"share-platform/services/user/internal/repo/persistent"
	"share-platform/services/user/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "share-platform/services/user/docs" // Swagger docs
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	s3Client    *s3.Client
	jwtService  *jwt.Service
	ids         *idgen.Generator
	queueClient *queue.Client
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.NewWithLevel(cfg.LogLevel, cfg.LogDev).Named("user")

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	ids, err := idgen.NewGenerator(cfg.SnowflakeNode)
	if err != nil {
		log.Error("Failed to create id generator: %v", err)
		return nil, err
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v (avatar upload disabled)", err)
		s3Client = nil
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v (continuing without bonus grants)", err)
		queueClient = nil
	}

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		s3Client:    s3Client,
		jwtService:  jwt.NewServiceWithExpiration(cfg.JWTSecret, cfg.JWTExpiration),
		ids:         ids,
		queueClient: queueClient,
	}, nil
}

func (a *App) Run() error {
	accountRepo := persistent.NewAccountRepository(a.db)

	var avatars usecase.AvatarStorage
	if a.s3Client != nil {
		avatars = a.s3Client
	}

	userUseCase := usecase.NewUserUseCase(
		accountRepo,
		a.jwtService,
		a.ids,
		avatars,
		a.log,
	)

	if a.queueClient != nil {
		if err := a.queueClient.ConsumeBonusGrants(userUseCase.HandleBonusGrant); err != nil {
			a.log.Error("Failed to start bonus grant consumer: %v", err)
		}
	}

	userHandler := userHTTP.NewUserHandler(userUseCase, a.log)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(metrics.GinMiddleware("user"))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	user := r.Group("/user")
	{
		user.POST("/register", userHandler.Register)
		user.POST("/login", userHandler.Login)
		user.GET("/count", userHandler.Count)
		user.POST("/updateBonus", userHandler.UpdateBonus)
		user.GET("/bonusEvent", userHandler.BonusEvent)

		protected := user.Group("")
		protected.Use(middleware.AuthMiddleware(a.jwtService))
		{
			protected.GET("/bonusLogs", userHandler.BonusLogs)
			protected.POST("/avatar", userHandler.UploadAvatar)
		}

		user.GET("/:id", userHandler.GetUser)
	}

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	go func() {
		a.log.Info("User service starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down user service...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	if a.queueClient != nil {
		if err := a.queueClient.Close(); err != nil {
			a.log.Error("Error closing RabbitMQ: %v", err)
		}
	}

	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	a.log.Info("User service exited")
	_ = a.log.Sync()
	return nil
}
