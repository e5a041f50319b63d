package router

import (
	"time"

	"github.com/myutami16/camp-store/internal/auth"
	"github.com/myutami16/camp-store/internal/config"
	"github.com/myutami16/camp-store/internal/handler"
	"github.com/myutami16/camp-store/internal/middleware"
	"github.com/myutami16/camp-store/internal/models"
	"github.com/myutami16/camp-store/internal/ratelimit"
	"github.com/myutami16/camp-store/internal/revalidate"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps carries the shared components the routes are built from.
type Deps struct {
	DB      *gorm.DB
	Codec   *auth.TokenCodec
	Gate    *auth.Gate
	Store   *auth.RevocationStore
	Limiter *ratelimit.Limiter
	Media   handler.Uploader
}

// Setup configures the Gin engine, middleware stack and all routes.
func Setup(cfg *config.Config, d Deps) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  false,
		AllowOriginFunc:  func(string) bool { return true },
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"X-CSRF-Token", "X-Requested-With", "Accept", "Accept-Version",
			"Content-Length", "Content-MD5", "Content-Type", "Date",
			"X-Api-Version", "Authorization",
		},
	}))

	r.Use(middleware.Timeout(time.Duration(cfg.Server.RequestTimeout) * time.Second))

	reval := revalidate.New(cfg.Revalidate.BaseURL, cfg.Revalidate.Token)

	authHandler := handler.NewAuthHandler(d.DB, d.Codec, d.Store)
	adminHandler := handler.NewAdminHandler(d.DB)
	productHandler := handler.NewProductHandler(d.DB, d.Media, reval)
	contentHandler := handler.NewContentHandler(d.DB, d.Media)
	bannerHandler := handler.NewBannerHandler(d.DB, d.Media)
	statsHandler := handler.NewStatsHandler(d.DB)

	publicLimit := middleware.RateLimit(d.Limiter, cfg.RateLimit.Public)
	adminLimit := middleware.RateLimit(d.Limiter, cfg.RateLimit.Admin)
	loginLimit := middleware.RateLimit(d.Limiter, cfg.RateLimit.Login)

	api := r.Group("/api")

	// autentikasi
	api.POST("/auth/login", loginLimit, authHandler.Login)
	api.POST("/auth/logout", adminLimit, authHandler.Logout)
	api.GET("/auth/verify", adminLimit, middleware.Auth(d.Gate), authHandler.Verify)

	// storefront publik
	api.GET("/products", publicLimit, productHandler.List)
	api.GET("/products/:id", publicLimit, productHandler.Get)
	api.GET("/content", publicLimit, contentHandler.List)
	api.GET("/content/:slug", publicLimit, contentHandler.GetBySlug)
	api.GET("/banners", publicLimit, bannerHandler.List)

	// panel admin: semua route di bawah ini melewati gate
	panel := api.Group("/admin", adminLimit, middleware.Auth(d.Gate))

	// manajemen akun: hanya super-admin yang boleh mengubah
	akun := panel.Group("/akun")
	akun.GET("", middleware.RequireRoles(models.RoleSuperAdmin, models.RoleAdmin), adminHandler.List)
	akun.POST("", middleware.RequireRoles(models.RoleSuperAdmin), adminHandler.Create)
	akun.PUT("/:id", middleware.RequireRoles(models.RoleSuperAdmin), adminHandler.Update)
	akun.DELETE("/:id", middleware.RequireRoles(models.RoleSuperAdmin), adminHandler.Delete)

	panel.GET("/stats", middleware.RequireRoles(models.RoleSuperAdmin, models.RoleAdmin), statsHandler.Get)

	writeRoles := middleware.RequireRoles(models.RoleSuperAdmin, models.RoleAdmin)

	produk := panel.Group("/produk", writeRoles)
	produk.POST("", productHandler.Create)
	produk.PUT("/:id", productHandler.Update)
	produk.DELETE("/:id", productHandler.Delete)
	produk.GET("/export", productHandler.ExportXLSX)

	// editor boleh mengelola konten
	konten := panel.Group("/konten",
		middleware.RequireRoles(models.RoleSuperAdmin, models.RoleAdmin, models.RoleEditor))
	konten.GET("", contentHandler.ListAll)
	konten.POST("", contentHandler.Create)
	konten.PUT("/:id", contentHandler.Update)
	konten.DELETE("/:id", contentHandler.Delete)

	banner := panel.Group("/banner", writeRoles)
	banner.GET("", bannerHandler.ListAll)
	banner.POST("", bannerHandler.Create)
	banner.PUT("/:id", bannerHandler.Update)
	banner.DELETE("/:id", bannerHandler.Delete)

	return r
}
