package main

import (
	"os"
	"time"

	"invoice-manager-backend/internal/config"
	"invoice-manager-backend/internal/middleware"
	"invoice-manager-backend/internal/models"
	"invoice-manager-backend/internal/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "invoice-manager").Logger()

	// Load .env
	if err := godotenv.Load(); err != nil {
		logger.Info().Msg("no .env file found, relying on system env")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connection failed")
	}

	db.AutoMigrate(
		&models.Customer{},
		&models.Invoice{},
		&models.User{},
		&models.InvoiceAuditLog{},
	)

	rdb := config.InitRedis(cfg)

	r := gin.Default()
	// CORS config
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodySizeLimit(cfg.Limits.MaxBodySize))

	routes.RegisterRoutes(r, db, rdb, cfg, logger)

	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
