package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pharmapos-backend/internal/shared/middleware"
	"pharmapos-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	middleware.InitMetrics()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
		middleware.PrometheusMiddleware(),
	)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupCatalogRoutes(v1, c)
		setupCouponRoutes(v1, c)
		setupPOSRoutes(v1, c)
		setupSalesRoutes(v1, c)
	}

	return router
}

func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", c.AuthHandler.Login)
	}
}

func setupCatalogRoutes(v1 *gin.RouterGroup, c *container.Container) {
	items := v1.Group("/items")
	items.Use(middleware.AuthMiddleware(c.Config.JWT.Secret))
	{
		items.GET("", c.CatalogHandler.ListItems)
		items.GET("/:id", c.CatalogHandler.GetItem)

		admin := items.Group("")
		admin.Use(middleware.AdminOnly())
		{
			admin.POST("", c.CatalogHandler.CreateItem)
			admin.PUT("/:id", c.CatalogHandler.UpdateItem)
			admin.DELETE("/:id", c.CatalogHandler.DeleteItem)
		}
	}
}

func setupCouponRoutes(v1 *gin.RouterGroup, c *container.Container) {
	coupons := v1.Group("/coupons")
	coupons.Use(middleware.AuthMiddleware(c.Config.JWT.Secret), middleware.AdminOnly())
	{
		coupons.GET("", c.CouponHandler.ListCoupons)
		coupons.GET("/:id", c.CouponHandler.GetCoupon)
		coupons.POST("", c.CouponHandler.CreateCoupon)
		coupons.PUT("/:id", c.CouponHandler.UpdateCoupon)
		coupons.PATCH("/:id/status", c.CouponHandler.UpdateStatus)
		coupons.POST("/:id/reset", c.CouponHandler.ResetRedemption)
		coupons.DELETE("/:id", c.CouponHandler.DeleteCoupon)
	}
}

// setupPOSRoutes wires the register flow: session, cart, coupon, checkout.
func setupPOSRoutes(v1 *gin.RouterGroup, c *container.Container) {
	pos := v1.Group("/pos")
	pos.Use(middleware.AuthMiddleware(c.Config.JWT.Secret))
	{
		pos.POST("/session", c.CartHandler.StartSession)

		cart := pos.Group("/cart")
		{
			cart.GET("", c.CartHandler.GetCart)
			cart.DELETE("", c.CartHandler.ClearCart)
			cart.POST("/items", c.CartHandler.AddItem)
			cart.PUT("/items/:itemId", c.CartHandler.UpdateQuantity)
			cart.DELETE("/items/:itemId", c.CartHandler.RemoveItem)
			cart.POST("/coupon", c.CartHandler.ApplyCoupon)
			cart.DELETE("/coupon", c.CartHandler.RemoveCoupon)
		}

		pos.POST("/checkout", c.SaleHandler.Checkout)
	}
}

func setupSalesRoutes(v1 *gin.RouterGroup, c *container.Container) {
	sales := v1.Group("/sales")
	sales.Use(middleware.AuthMiddleware(c.Config.JWT.Secret))
	{
		sales.GET("", c.SaleHandler.ListSales)
		sales.GET("/summary", c.SaleHandler.Summary)
		sales.GET("/:id", c.SaleHandler.GetSale)

		reports := sales.Group("/reports")
		reports.Use(middleware.AdminOnly())
		{
			reports.GET("/vendor-compensation", c.SaleHandler.VendorCompensationReport)
			reports.GET("/items", c.SaleHandler.ItemSalesReport)
		}
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx := ctx.Request.Context()

		status := http.StatusOK
		overall := "healthy"

		dbStatus := "up"
		if err := c.DB.HealthCheck(checkCtx); err != nil {
			dbStatus = "down"
			status = http.StatusServiceUnavailable
			overall = "degraded"
		}

		redisStatus := "up"
		if err := c.Cache.Ping(checkCtx); err != nil {
			redisStatus = "down"
			status = http.StatusServiceUnavailable
			overall = "degraded"
		}

		ctx.JSON(status, gin.H{
			"status":   overall,
			"database": dbStatus,
			"redis":    redisStatus,
			"version":  c.Config.App.Version,
			"time":     time.Now().UTC().Format(time.RFC3339),
		})
	}
}
