package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skyVoyage/app/echo-server/router"
	"skyVoyage/business/checkin"
	"skyVoyage/business/widget"
	"skyVoyage/internal/middleware"
	"skyVoyage/internal/repository/bookingcore"
	"skyVoyage/internal/repository/decision"
	psqlRepo "skyVoyage/internal/repository/postgres"
	redisRepo "skyVoyage/internal/repository/redis"
	"skyVoyage/internal/rest"
	"skyVoyage/pkg/config"
	"skyVoyage/pkg/database"
	redisdb "skyVoyage/pkg/database/redis"
	"skyVoyage/pkg/logger"
	"skyVoyage/pkg/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting SkyVoyage personalization gateway", "version", cfg.App.Version)

	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to credential store", "error", err)
	}
	defer func() {
		_ = redisdb.CloseRedisClient(redisClient)
	}()

	// Init upstream clients
	decisionRepo := decision.NewDecisionRepository(decision.DecisionConfig{
		BaseURL:           cfg.Upstream.BaseURL,
		BasicAuthUsername: cfg.Upstream.BasicAuthUsername,
		BasicAuthPassword: cfg.Upstream.BasicAuthPassword,
	})
	bookingRepo := bookingcore.NewBookingCoreRepository(bookingcore.BookingCoreConfig{
		BaseURL: cfg.Upstream.BaseURL,
	})

	// Init repo
	engagementRepo := psqlRepo.NewEngagementRepository(db)
	credentialRepo := redisRepo.NewCredentialRepository(redisClient)

	// Init service
	widgetService := widget.NewService(decisionRepo, credentialRepo, engagementRepo, widget.NewActionRouter())
	checkinService := checkin.NewService(bookingRepo)

	// Init handler
	widgetHandler := rest.NewWidgetHandler(widgetService)
	checkinHandler := rest.NewCheckinHandler(checkinService)
	engagementHandler := rest.NewEngagementHandler(engagementRepo)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, rest.HeaderSessionID},
	}))

	// Auth middleware for transactional routes
	authRequired := middleware.AuthRequired(credentialRepo)

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupWidgetRoutes(api, widgetHandler)
	router.SetupCheckinRoutes(api, checkinHandler, authRequired)
	router.SetupEngagementRoutes(api, engagementHandler, authRequired)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
