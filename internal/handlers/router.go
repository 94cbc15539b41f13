package handlers

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"tcg-card-studio/internal/config"
	"tcg-card-studio/internal/middleware"
)

// Router bundles the handlers mounted by NewRouter.
type Router struct {
	Health   *HealthHandler
	Cards    *CardsHandler
	Generate *GenerateHandler
	Video    *VideoHandler
	Profile  *ProfileHandler
	Download *DownloadHandler
}

func NewRouter(cfg *config.Config, logger *slog.Logger, h Router) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(cors.New(corsConfig(cfg)))
	router.Use(middleware.BodyLimit(cfg.MaxRequestBodyBytes))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// No auth
	router.GET("/health", h.Health.Health)
	router.GET("/api/v1/download", h.Download.Download)

	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))

	// Generation
	api.POST("/generate-card", h.Generate.GenerateCard)
	api.POST("/generate-card-from-photo", h.Generate.GenerateCardFromPhoto)
	api.POST("/scan-card", h.Generate.ScanCard)
	api.POST("/grade-card", h.Generate.GradeCard)
	api.POST("/generate-video", h.Video.GenerateVideo)

	// Collection
	api.GET("/cards", h.Cards.ListCards)
	api.POST("/cards", h.Cards.SaveCard)
	api.GET("/cards/:card_id", h.Cards.GetCard)
	api.PATCH("/cards/:card_id", h.Cards.UpdateCard)
	api.DELETE("/cards/:card_id", h.Cards.DeleteCard)
	api.GET("/cards/:card_id/video-status", h.Video.VideoStatus)
	api.GET("/cards/:card_id/events", h.Video.Events)

	// Profile
	api.PUT("/profile", h.Profile.SignIn)
	api.GET("/profile", h.Profile.GetProfile)
	api.PUT("/profile/api-keys", h.Profile.UpdateAPIKeys)

	return router
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "Last-Event-ID"},
		ExposeHeaders: []string{"Content-Disposition", "Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.CORSAllowedOrigins
		c.AllowCredentials = true
	}
	return c
}
