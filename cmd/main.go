package main

import (
	"log"
	"os"
	"time"

	"category_service/config"
	"category_service/internal/clients"
	"category_service/internal/delivery"
	"category_service/internal/middleware"
	"category_service/internal/repository"
	"category_service/internal/usecase"
	"category_service/pkg/db"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// Configuration and Logging Setup
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.LoadConfig(logger)
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	logger.Info("Starting Category Service...")

	// --- Database Connection ---
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("FATAL: Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connection established.")

	// --- Dependency Injection ---
	categoryRepo := repository.NewPostgresCategoryRepository(database, logger)
	authClient := clients.NewAuthHTTPClient(cfg.AuthServiceURL, time.Duration(cfg.AuthTimeoutSeconds)*time.Second, logger)
	logger.Info("Repository and auth client initialized.")

	categoryUseCase := usecase.NewCategoryUseCase(categoryRepo, authClient, logger)
	categoryHandler := delivery.NewCategoryHandler(categoryUseCase, logger)
	logger.Info("Use case and handler initialized.")

	// --- Router Setup ---
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.ExtractBearerToken(logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	categoryHandler.RegisterRoutes(router)

	logger.Infof("Category Service listening on %s", cfg.HTTPPort)
	if err := router.Run(cfg.HTTPPort); err != nil {
		log.Fatalf("FATAL: Failed to start HTTP server: %v", err)
	}
}
