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
	"share-platform/pkg/logger"
	"share-platform/pkg/metrics"
	"share-platform/pkg/middleware"
	"share-platform/services/gateway/internal/proxy"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	redisClient *redis.Client
	users       *proxy.Upstream
	content     *proxy.Upstream
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.NewWithLevel(cfg.LogLevel, cfg.LogDev).Named("gateway")

	users, err := proxy.NewUpstream("user", cfg.UserServiceURL, cfg.RemoteCallTimeout, log)
	if err != nil {
		log.Error("Invalid user service url: %v", err)
		return nil, err
	}

	content, err := proxy.NewUpstream("content", cfg.ContentServiceURL, cfg.RemoteCallTimeout, log)
	if err != nil {
		log.Error("Invalid content service url: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v (rate limiting disabled)", err)
		redisClient = nil
	}

	return &App{
		cfg:         cfg,
		log:         log,
		redisClient: redisClient,
		users:       users,
		content:     content,
	}, nil
}

func (a *App) Run() error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(metrics.GinMiddleware("gateway"))

	r.Use(middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("")
	api.Use(middleware.RateLimitMiddleware(a.redisClient, 200, time.Minute))
	{
		api.Any("/user/*path", a.users.Handle)
		api.Any("/share/*path", a.content.Handle)
	}

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	go func() {
		a.log.Info("Gateway starting on port %s (user=%s content=%s)",
			a.cfg.ServerPort, a.cfg.UserServiceURL, a.cfg.ContentServiceURL)
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
	a.log.Info("Shutting down gateway...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing redis: %v", err)
		}
	}

	a.log.Info("Gateway exited")
	_ = a.log.Sync()
	return nil
}
