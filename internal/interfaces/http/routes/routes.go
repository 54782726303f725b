// internal/interfaces/http/routes/routes.go
package routes

import (
	"time"

	"github.com/aditya-prabhakar-13/Alcher-Store-26/internal/config"
	"github.com/aditya-prabhakar-13/Alcher-Store-26/internal/interfaces/http/handlers"
	"github.com/aditya-prabhakar-13/Alcher-Store-26/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SetupRoutes wires every API route group
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	logger := newLogger(cfg)

	setupAuthRoutes(rg, db, cfg)
	setupCatalogRoutes(rg, db, cfg, logger)
	setupCartRoutes(rg, db, redisClient, cfg, logger)
	setupOrderRoutes(rg, db, redisClient, cfg, logger)
	setupPaymentRoutes(rg, db, redisClient, cfg, logger)
	setupAdminRoutes(rg, db, redisClient, cfg, logger)
}

// newLogger builds the shared application logger
func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()

	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	}

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}

func setupAuthRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, cfg)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/profile", authHandler.GetProfile)
			protected.PUT("/profile", authHandler.UpdateProfile)
		}
	}
}

func setupCatalogRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config, logger *logrus.Logger) {
	productHandler := handlers.NewProductHandler(db, cfg, logger)
	categoryHandler := handlers.NewCategoryHandler(db)
	reviewHandler := handlers.NewReviewHandler(db, cfg)

	products := rg.Group("/products")
	{
		products.GET("", productHandler.ListProducts)
		products.GET("/:sku", productHandler.GetProduct)
		products.GET("/:sku/stock", productHandler.CheckStock)
		products.GET("/:sku/reviews", reviewHandler.ListReviews)

		authed := products.Group("")
		authed.Use(middleware.AuthMiddleware(cfg))
		{
			authed.POST("/:sku/reviews", reviewHandler.CreateReview)
		}
	}

	rg.GET("/categories", categoryHandler.ListCategories)

	reviews := rg.Group("/reviews")
	reviews.Use(middleware.AuthMiddleware(cfg))
	{
		reviews.DELETE("/:id", reviewHandler.DeleteReview)
	}
}

func setupCartRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, logger *logrus.Logger) {
	cartHandler := handlers.NewCartHandler(db, redisClient, cfg, logger)

	cart := rg.Group("/cart")
	cart.Use(middleware.AuthMiddleware(cfg))
	{
		cart.GET("", cartHandler.GetCart)
		cart.DELETE("", cartHandler.ClearCart)
		cart.POST("/items", cartHandler.AddToCart)
		cart.PUT("/items/:id", cartHandler.UpdateCartItem)
		cart.DELETE("/items/:id", cartHandler.RemoveCartItem)

		cart.POST("/buy-now", cartHandler.BuyNow)
		cart.GET("/buy-now", cartHandler.GetBuyNow)
	}
}

func setupOrderRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, logger *logrus.Logger) {
	orderHandler := handlers.NewOrderHandler(db, redisClient, cfg, logger)

	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(cfg))
	{
		orders.POST("", orderHandler.CreateOrder)
		orders.GET("", orderHandler.ListOrders)
		orders.GET("/:orderNumber", orderHandler.GetOrder)
		orders.GET("/:orderNumber/invoice", orderHandler.DownloadInvoice)
	}
}

func setupPaymentRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, logger *logrus.Logger) {
	paymentHandler := handlers.NewPaymentHandler(db, redisClient, cfg, logger)

	payment := rg.Group("/payment")
	payment.Use(middleware.AuthMiddleware(cfg))
	{
		payment.POST("/intent", paymentHandler.CreateIntent)
		payment.POST("/verify", paymentHandler.VerifyPayment)
		payment.GET("/:orderNumber/status", paymentHandler.GetPaymentStatus)
	}
}

func setupAdminRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, logger *logrus.Logger) {
	productHandler := handlers.NewProductHandler(db, cfg, logger)
	categoryHandler := handlers.NewCategoryHandler(db)
	orderHandler := handlers.NewOrderHandler(db, redisClient, cfg, logger)

	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	admin.Use(middleware.AdminMiddleware())
	{
		admin.POST("/products", productHandler.CreateProduct)
		admin.PUT("/products/:id", productHandler.UpdateProduct)
		admin.DELETE("/products/:id", productHandler.DeleteProduct)
		admin.PUT("/products/:id/stock", productHandler.RestockProduct)
		admin.GET("/products/:id/movements", productHandler.ListStockMovements)

		admin.POST("/categories", categoryHandler.CreateCategory)
		admin.PUT("/categories/:id", categoryHandler.UpdateCategory)
		admin.DELETE("/categories/:id", categoryHandler.DeleteCategory)

		admin.GET("/orders", orderHandler.AdminListOrders)
		admin.GET("/orders/:orderNumber", orderHandler.AdminGetOrder)
		admin.PUT("/orders/:orderNumber/status", orderHandler.AdminUpdateOrderStatus)
	}
}
