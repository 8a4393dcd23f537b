package internal

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"share-platform/pkg/cache"
	"share-platform/pkg/config"
	"share-platform/pkg/database"
	"share-platform/pkg/jwt"
	"share-platform/pkg/logger"
	"share-platform/pkg/metrics"
	"share-platform/pkg/middleware"
	"share-platform/pkg/queue"
	shareHTTP "share-platform/services/content/internal/controller/http"
	"share-platform/services/content/internal/repo/persistent"
	"share-platform/services/content/internal/usecase"
	"share-platform/services/user/client"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "share-platform/services/content/docs" // Swagger docs
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	queueClient *queue.Client
	userClient  *client.Client
	jwtService  *jwt.Service
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.NewWithLevel(cfg.LogLevel, cfg.LogDev).Named("content")

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v (rate limiting disabled)", err)
		redisClient = nil
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v (contribute rewards disabled)", err)
		queueClient = nil
	}

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		queueClient: queueClient,
		userClient: client.New(client.Config{
			BaseURL: cfg.UserServiceURL,
			Timeout: cfg.RemoteCallTimeout,
		}),
		jwtService: jwt.NewServiceWithExpiration(cfg.JWTSecret, cfg.JWTExpiration),
	}, nil
}

func (a *App) Run() error {
	shareRepo := persistent.NewShareRepository(a.db)
	noticeRepo := persistent.NewNoticeRepository(a.db)

	var publisher usecase.BonusPublisher
	if a.queueClient != nil {
		publisher = a.queueClient
	}

	shareUseCase := usecase.NewShareUseCase(
		shareRepo,
		noticeRepo,
		a.userClient,
		publisher,
		usecase.Options{
			MaxPageSize:      a.cfg.MaxPageSize,
			ContributeReward: a.cfg.ContributeReward,
		},
		a.log,
	)

	shareHandler := shareHTTP.NewShareHandler(shareUseCase, a.log)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(metrics.GinMiddleware("content"))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	share := r.Group("/share")
	{
		share.GET("/notice", shareHandler.Notice)

		protected := share.Group("")
		protected.Use(middleware.AuthMiddleware(a.jwtService))
		{
			protected.POST("/exchange",
				middleware.RateLimitMiddleware(a.redisClient, 30, time.Minute),
				shareHandler.Exchange)
			protected.POST("/contribute", shareHandler.Contribute)
			protected.GET("/myContribute", shareHandler.MyContribute)
			protected.GET("/admin/list", shareHandler.Pending)
			protected.POST("/admin/audit/:id", shareHandler.Audit)
		}

		public := share.Group("")
		public.Use(middleware.OptionalAuthMiddleware(a.jwtService))
		{
			public.GET("/list", shareHandler.List)
			public.GET("/:id", shareHandler.Get)
		}
	}

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	go func() {
		a.log.Info("Content service starting on port %s", a.cfg.ServerPort)
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
	a.log.Info("Shutting down content service...")
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

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing redis: %v", err)
		}
	}

	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	a.log.Info("Content service exited")
	_ = a.log.Sync()
	return nil
}
