package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/oubata/HealThea/internal/api/handlers"
	"github.com/oubata/HealThea/internal/api/middleware"
	"github.com/oubata/HealThea/internal/catalog"
	"github.com/oubata/HealThea/internal/config"
	"github.com/oubata/HealThea/internal/registry"
	"github.com/oubata/HealThea/internal/session"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, reg *registry.Registry, catalogSvc *catalog.Service, idempotency session.IdempotencyRepository, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(loggingMiddleware(logger))

	// Root: friendly response so GET / returns 200 instead of 404
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "HealThea Storefront API",
			"endpoints": []string{
				"GET /health",
				"GET /v1/catalog/products",
				"GET /v1/catalog/products/:handle",
				"GET /v1/catalog/categories",
				"GET /v1/cart",
				"POST /v1/cart/items",
				"GET /v1/checkout",
				"POST /v1/checkout/complete",
				"POST /v1/auth/login",
				"GET /v1/customers/me",
			},
		})
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes; every route is session-scoped
	v1 := router.Group("/v1")
	v1.Use(middleware.SessionMiddleware(cfg, logger))
	{
		catalogRoutes := v1.Group("/catalog")
		{
			catalogRoutes.GET("/products", handlers.HandleListProducts(catalogSvc, logger))
			catalogRoutes.GET("/products/:handle", handlers.HandleGetProduct(catalogSvc, logger))
			catalogRoutes.GET("/categories", handlers.HandleListCategories(catalogSvc, logger))
			catalogRoutes.GET("/categories/:id/products", handlers.HandleCategoryProducts(catalogSvc, logger))
		}

		cartRoutes := v1.Group("/cart")
		{
			cartRoutes.GET("", handlers.HandleGetCart(reg, logger))
			cartRoutes.DELETE("", handlers.HandleClearCart(reg, logger))
			cartRoutes.POST("/items", handlers.HandleAddCartItem(reg, catalogSvc, logger))
			cartRoutes.PATCH("/items/:variant_id", handlers.HandleUpdateCartItem(reg, logger))
			cartRoutes.DELETE("/items/:variant_id", handlers.HandleRemoveCartItem(reg, logger))
			cartRoutes.POST("/drawer/close", handlers.HandleCloseCartDrawer(reg, logger))
		}

		checkoutRoutes := v1.Group("/checkout")
		{
			checkoutRoutes.GET("", handlers.HandleGetCheckout(reg, logger))
			checkoutRoutes.POST("/shipping-info", handlers.HandleSubmitShippingInfo(reg, logger))
			checkoutRoutes.POST("/shipping-method", handlers.HandleSelectShippingMethod(reg, logger))
			checkoutRoutes.POST("/payment/ready", handlers.HandleConfirmPaymentReady(reg, logger))
			checkoutRoutes.POST("/advance", handlers.HandleAdvanceCheckout(reg, logger))
			checkoutRoutes.POST("/back", handlers.HandleCheckoutBack(reg, logger))
			checkoutRoutes.POST("/complete",
				middleware.IdempotencyMiddleware(idempotency, logger),
				handlers.HandlePlaceOrder(reg, idempotency, logger))
		}

		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/login", handlers.HandleLogin(reg, logger))
			authRoutes.POST("/register", handlers.HandleRegister(reg, logger))
			authRoutes.POST("/logout", handlers.HandleLogout(reg, logger))
		}

		v1.GET("/customers/me", handlers.HandleGetProfile(reg, logger))
		v1.PATCH("/customers/me", handlers.HandleUpdateProfile(reg, logger))
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
