package api

import (
	"net/http"
	"time"

	"dstclan/config"
	"dstclan/internal/api/admin"
	"dstclan/internal/api/apis"
	"dstclan/internal/api/handler"
	"dstclan/internal/middleware"
	"dstclan/internal/repository"
	"dstclan/internal/service"
	"dstclan/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// Services the application services shared by the API and startup code
type Services struct {
	Listings *service.ListingService
	Auth     *service.AuthService
	News     *service.NewsService
	Content  *service.ContentService
}

// NewServices wires the services onto the repositories
func NewServices(cfg *config.Config, logger *logger.Logger, repos repository.Repositories, redisClient redis.Cmdable) *Services {
	return &Services{
		Listings: service.NewListingService(repos.Listings, redisClient, cfg.CacheTTL, logger),
		Auth:     service.NewAuthService(repos.Admins, redisClient, logger),
		News:     service.NewNewsService(repos.News, redisClient, cfg.CacheTTL, logger),
		Content:  service.NewContentService(repos.VipTiers, repos.Clan, redisClient, cfg.CacheTTL, logger),
	}
}

// SetupRouter sets up the API routes
func SetupRouter(cfg *config.Config, logger *logger.Logger, services *Services, redisClient redis.Cmdable) *gin.Engine {
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	proxies := cfg.TrustedProxies
	if len(proxies) == 0 {
		proxies = config.DefaultTrustedProxies
	}
	if err := router.SetTrustedProxies(proxies); err != nil {
		logger.Fatal("invalid trusted proxies", "proxies", proxies, "error", err)
	}

	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())

	listingHandler := handler.NewListingHandler(services.Listings, logger)
	authHandler := handler.NewAuthHandler(services.Auth, logger)
	contentHandler := handler.NewContentHandler(services.News, services.Content, logger)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")

	publicRouter := v1.Group("")
	publicRouter.Use(middleware.IdentifyAdmin(services.Auth))
	submitLimit := middleware.RateLimit(redisClient, "submit", cfg.RateLimit.SubmitPerMinute, time.Minute, logger)
	apis.RegisterPublicRoutes(publicRouter, listingHandler, authHandler, contentHandler, submitLimit)

	adminRouter := v1.Group("")
	adminRouter.Use(middleware.AdminAuth(services.Auth))
	admin.RegisterAdminRoutes(adminRouter, listingHandler, contentHandler)

	return router
}
