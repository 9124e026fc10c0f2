package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"invoice-manager-backend/internal/cache"
	"invoice-manager-backend/internal/config"
	handler "invoice-manager-backend/internal/handlers"
	"invoice-manager-backend/internal/middleware"
	"invoice-manager-backend/internal/repository"
	"invoice-manager-backend/internal/services/auth"
	"invoice-manager-backend/internal/services/invoices"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) {
	invoiceRepo := repository.NewInvoiceRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	userRepo := repository.NewUserRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	routeCache := cache.NewRouteCache(rdb, cfg.Redis.ListingTTL)

	invoiceService := invoices.NewService(invoiceRepo, auditRepo, routeCache, log)
	provider := auth.NewDatabaseProvider(userRepo, cfg.JWT)
	authService := auth.NewService(provider, log)

	invoiceHandler := handler.NewInvoiceHandler(invoiceService, routeCache, cfg.Limits.MaxFormPayload)
	customerHandler := handler.NewCustomerHandler(customerRepo)
	authHandler := handler.NewAuthHandler(authService, cfg.Limits.MaxFormPayload)

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api.POST("/auth/login", authHandler.Login)
	api.GET("/customers", middleware.AuthRequired(&cfg.JWT), customerHandler.List)

	// Invoice routes
	dashboard := r.Group("/dashboard", middleware.AuthRequired(&cfg.JWT))
	inv := dashboard.Group("/invoices")
	{
		inv.GET("", invoiceHandler.List)
		inv.GET("/:id", invoiceHandler.Get)
		inv.POST("", invoiceHandler.Create)
		inv.PUT("/:id", invoiceHandler.Update)
		inv.DELETE("/:id", invoiceHandler.Delete)
	}
}
