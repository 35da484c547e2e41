package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AVN-Software/seascapes-admin/config"
	"github.com/AVN-Software/seascapes-admin/internal/api/handler"
	"github.com/AVN-Software/seascapes-admin/internal/api/middleware"
	"github.com/AVN-Software/seascapes-admin/pkg/jwt"
	"github.com/AVN-Software/seascapes-admin/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// 所有 /api/v1 路由需要登录；写操作额外要求管理角色并按用户限流
func Setup(cfg *config.Config, h *handler.Handler, verifier *jwt.Verifier, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(verifier))

	write := []gin.HandlerFunc{
		middleware.RoleAuth(cfg.Auth.AdminRoles...),
		middleware.RateLimit(rdb, cfg.RateLimit.Limit, cfg.RateLimit.Window, logger),
	}
	w := func(hf gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, write...), hf)
	}

	// 房源模块
	listings := v1.Group("/listings")
	{
		listings.GET("", h.Listing.ListListings)
		listings.GET("/:id", h.Listing.GetListing)
		listings.POST("", w(h.Listing.CreateListing)...)
		listings.PATCH("/:id", w(h.Listing.UpdateListing)...)
		listings.PUT("/:id/rates", w(h.Listing.UpdateListingRates)...)
		listings.DELETE("/:id", w(h.Listing.DeleteListing)...)

		// 价格方案
		listings.GET("/:id/rate-plans", h.RatePlan.ListRatePlans)
		listings.GET("/:id/rate-plans/available-seasons", h.RatePlan.AvailableSeasons)
		listings.GET("/:id/rate-plans/export", h.Export.ExportRateSheet)
		listings.POST("/:id/rate-plans", w(h.RatePlan.CreateRatePlan)...)

		// 房源设施
		listings.GET("/:id/amenities", h.ListingAmenity.ListListingAmenities)
		listings.PUT("/:id/amenities", w(h.ListingAmenity.ReplaceListingAmenities)...)
		listings.POST("/:id/amenities", w(h.ListingAmenity.AssignAmenity)...)
		listings.DELETE("/:id/amenities/:amenity_id", w(h.ListingAmenity.UnassignAmenity)...)

		// 报价
		listings.GET("/:id/quote", h.Quote.NightlyQuote)
		listings.GET("/:id/quote/stay", h.Quote.StayQuote)
	}

	ratePlans := v1.Group("/rate-plans")
	{
		ratePlans.PUT("/:id", w(h.RatePlan.UpdateRatePlan)...)
		ratePlans.DELETE("/:id", w(h.RatePlan.DeleteRatePlan)...)
	}

	// 季节模块
	seasons := v1.Group("/seasons")
	{
		seasons.GET("", h.Season.ListSeasons)
		seasons.GET("/export.ics", h.Export.ExportSeasonCalendar)
		seasons.GET("/:id", h.Season.GetSeason)
		seasons.POST("", w(h.Season.CreateSeason)...)
		seasons.PATCH("/:id", w(h.Season.UpdateSeason)...)
		seasons.PUT("/:id/active", w(h.Season.SetSeasonActive)...)
		seasons.DELETE("/:id", w(h.Season.DeleteSeason)...)
	}

	// 设施目录
	amenities := v1.Group("/amenities")
	{
		amenities.GET("", h.Amenity.ListAmenities)
		amenities.GET("/grouped", h.Amenity.GroupedAmenities)
		amenities.POST("", w(h.Amenity.CreateAmenity)...)
		amenities.POST("/bulk-delete", w(h.Amenity.BulkDeleteAmenities)...)
		amenities.PUT("/:id", w(h.Amenity.UpdateAmenity)...)
		amenities.DELETE("/:id", w(h.Amenity.DeleteAmenity)...)
	}

	return r
}
