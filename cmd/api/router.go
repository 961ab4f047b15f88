package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"portfolio-backend/internal/shared/authz"
	"portfolio-backend/internal/shared/middleware"
	"portfolio-backend/pkg/container"

	"github.com/gin-gonic/gin"
)

// SetupRouter đăng ký middleware và toàn bộ routes
func SetupRouter(c *container.Container) (*gin.Engine, error) {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.MaxMultipartMemory = 32 << 20

	// chỉ đọc X-Forwarded-For / X-Real-IP khi request đi qua proxy trong list,
	// list rỗng thì c.ClientIP() là IP của socket
	if err := router.SetTrustedProxies(c.Config.App.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid TRUSTED_PROXIES: %w", err)
	}

	// ========================================
	// GLOBAL MIDDLEWARES (thứ tự quan trọng)
	// ========================================
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(c.Config.App.CORSOrigins))
	// có token thì gắn principal, không có vẫn đi tiếp như public
	router.Use(c.Auth.Optional())

	// ========================================
	// HEALTH CHECK
	// ========================================
	router.GET("/api/health", healthHandler(c))

	api := router.Group("/api")

	requireAuth := c.Auth.Required()
	contentWrite := c.Auth.RequireCapability(authz.ContentWrite)

	// ========================================
	// PROFILES
	// ========================================
	profiles := api.Group("/profiles")
	{
		profiles.GET("/me", requireAuth, c.ProfileHandler.Me)
		profiles.GET("", c.Auth.RequireCapability(authz.ProfilesManage), c.ProfileHandler.List)
		profiles.GET("/:id", requireAuth, c.ProfileHandler.Get)
		profiles.PATCH("/:id", requireAuth, c.ProfileHandler.Update)
	}

	// ========================================
	// BOOKS (public đọc, editor ghi)
	// ========================================
	books := api.Group("/books")
	{
		books.GET("", c.BookHandler.List)
		books.GET("/:id", c.BookHandler.Get)
		books.POST("/:id/download", c.BookHandler.Download)
		books.GET("/:id/progress", c.ProgressHandler.Get)
		books.PUT("/:id/progress", c.ProgressHandler.Save)

		books.POST("", contentWrite, c.BookHandler.Create)
		books.PATCH("/:id", contentWrite, c.BookHandler.Update)
		books.DELETE("/:id", contentWrite, c.BookHandler.Delete)
	}

	// ========================================
	// BLOGS
	// ========================================
	blogs := api.Group("/blogs")
	{
		blogs.GET("", c.BlogHandler.List)
		blogs.GET("/slug/:slug", c.BlogHandler.GetBySlug)
		blogs.GET("/:id", c.BlogHandler.Get)

		blogs.POST("", contentWrite, c.BlogHandler.Create)
		blogs.PATCH("/:id", contentWrite, c.BlogHandler.Update)
		blogs.DELETE("/:id", contentWrite, c.BlogHandler.Delete)
	}

	// ========================================
	// MEDIA (chỉ editor/admin, không có PATCH)
	// ========================================
	media := api.Group("/media", contentWrite)
	{
		media.GET("", c.MediaHandler.List)
		media.GET("/:id", c.MediaHandler.Get)
		media.POST("", c.MediaHandler.Create)
		media.POST("/upload", c.MediaHandler.Upload)
		media.DELETE("/:id", c.MediaHandler.Delete)
	}

	// ========================================
	// SPONSORS
	// ========================================
	sponsors := api.Group("/sponsors")
	{
		sponsors.GET("", c.SponsorHandler.List)
		sponsors.GET("/:id", c.SponsorHandler.Get)
		sponsors.POST("/:id/click", c.SponsorHandler.Click)

		sponsors.POST("", contentWrite, c.SponsorHandler.Create)
		sponsors.PATCH("/:id", contentWrite, c.SponsorHandler.Update)
		sponsors.DELETE("/:id", contentWrite, c.SponsorHandler.Delete)
	}

	// ========================================
	// CONTACTS (public gửi, admin đọc)
	// ========================================
	contacts := api.Group("/contacts")
	{
		contacts.POST("", c.ContactHandler.Create)

		messagesRead := c.Auth.RequireCapability(authz.MessagesRead)
		contacts.GET("", messagesRead, c.ContactHandler.List)
		contacts.GET("/:id", messagesRead, c.ContactHandler.Get)
		contacts.PATCH("/:id", messagesRead, c.ContactHandler.Update)
		contacts.DELETE("/:id", messagesRead, c.ContactHandler.Delete)
	}

	// ========================================
	// ADMIN
	// ========================================
	admin := api.Group("/admin")
	{
		admin.GET("/stats", c.Auth.RequireCapability(authz.DashboardView), c.DashboardHandler.Stats)
		admin.GET("/books/export", contentWrite, c.BookHandler.Export)
	}

	return router, nil
}

// healthHandler: DB down → 503, Redis/MinIO down → degraded nhưng vẫn 200
func healthHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Unix(),
			"version":   c.Config.App.Version,
			"services":  gin.H{},
		}
		services := health["services"].(gin.H)

		dbCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()
		if err := c.DB.HealthCheck(dbCtx); err != nil {
			services["database"] = "unhealthy"
			health["status"] = "degraded"
		} else {
			services["database"] = "healthy"
		}

		redisCtx, cancelRedis := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancelRedis()
		if err := c.Redis.HealthCheck(redisCtx); err != nil {
			services["redis"] = "unhealthy"
			health["status"] = "degraded"
		} else {
			services["redis"] = "healthy"
		}

		storageCtx, cancelStorage := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancelStorage()
		if err := c.Storage.HealthCheck(storageCtx); err != nil {
			services["storage"] = "unhealthy"
			health["status"] = "degraded"
		} else {
			services["storage"] = "healthy"
		}

		statusCode := http.StatusOK
		if services["database"] == "unhealthy" {
			statusCode = http.StatusServiceUnavailable
		}

		ctx.JSON(statusCode, health)
	}
}
