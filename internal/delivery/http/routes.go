package http

import (
	"github.com/gin-gonic/gin"

	"github.com/liquiverde/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		products := v1.Group("/products")
		{
			products.POST("", handler.CreateProduct)
			products.GET("", handler.ListProducts)
			products.GET("/search", handler.SearchProducts)
			products.GET("/search/external", handler.SearchExternal)
			products.POST("/scan/:barcode", handler.ScanProduct)
			products.GET("/category/:category", handler.GetProductsByCategory)
			products.POST("/compare", handler.CompareProducts)
			products.GET("/:id", handler.GetProduct)
			products.POST("/:id/substitutes", handler.FindSubstitutes)
		}

		lists := v1.Group("/lists")
		{
			lists.POST("", handler.CreateList)
			lists.GET("", handler.ListLists)
			lists.POST("/analyze", handler.AnalyzeList)
			lists.POST("/quick-optimize", handler.QuickOptimize)
			lists.GET("/:id", handler.GetList)
			lists.POST("/:id/optimize", handler.OptimizeList)
		}

		stores := v1.Group("/stores")
		{
			stores.POST("", handler.CreateStore)
			stores.GET("", handler.ListStores)
			stores.GET("/nearby", handler.NearbyStores)
			stores.POST("/geocode", handler.GeocodeAddress)
			stores.POST("/optimize-route", handler.OptimizeRoute)
			stores.POST("/compare-routes", handler.CompareRoutes)
		}

		analysis := v1.Group("/analysis")
		{
			analysis.GET("/impact", handler.Impact)
		}

		v1.POST("/seed", handler.SeedData)
	}

	return router
}
