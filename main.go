package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/itsrohitnegi1/indian-railways-booking-app/config"
	"github.com/itsrohitnegi1/indian-railways-booking-app/handlers"
	"github.com/itsrohitnegi1/indian-railways-booking-app/middleware"
	"github.com/itsrohitnegi1/indian-railways-booking-app/services"
)

var CLI struct {
	Stations string `help:"Path to stations YAML file (overrides STATIONS_FILE)" type:"path"`
	Port     string `help:"Listen port (overrides SERVER_PORT)"`
}

func main() {
	kong.Parse(&CLI)

	// Structured logging with logfmt
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})

	// Load configuration
	cfg := config.Load()
	if CLI.Stations != "" {
		cfg.StationsFile = CLI.Stations
	}
	if CLI.Port != "" {
		cfg.ServerPort = CLI.Port
	}

	registry, err := services.LoadStationRegistry(cfg.StationsFile)
	if err != nil {
		logger.WithError(err).Fatal("failed to load station registry")
	}

	// Wire services
	generator := services.NewAvailabilityGenerator(registry, logger)
	bookings := services.NewBookingService(logger)
	assistant := services.NewAssistantService(cfg, logger)
	sessions := services.NewSessionService(generator, bookings, assistant, cfg.SearchLatency, logger)
	store := services.NewSessionStore()

	handler := handlers.New(registry, sessions, bookings, cfg.JWTSecret, logger)
	router := setupRouter(handler, store, sessions, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		logger.WithField("port", cfg.ServerPort).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("server forced to shutdown")
	}

	logger.Info("server exited")
}

func setupRouter(h *handlers.Handler, store *services.SessionStore, sessions *services.SessionService, cfg *config.Config) *gin.Engine {
	// Set Gin to release mode in production
	if os.Getenv("GIN_MODE") != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// CORS configuration
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.SessionHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.SessionHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// API routes
	api := router.Group("/api")
	api.Use(middleware.EnsureSession(store))
	api.Use(middleware.OptionalAuth(cfg.JWTSecret, sessions))
	{
		// Registry
		api.GET("/stations", h.GetStations)
		api.GET("/classes", h.GetClasses)

		// Session and auth
		api.POST("/login", h.Login)
		api.POST("/logout", h.Logout)
		api.GET("/session", h.GetSession)

		// Search
		api.POST("/search", h.SearchTrains)
		api.GET("/search", h.GetSearchResults)

		// Booking draft
		api.POST("/draft", h.CreateDraft)
		api.GET("/draft", h.GetDraft)
		api.DELETE("/draft", h.CancelDraft)
		api.POST("/draft/passengers", h.AddPassenger)
		api.PATCH("/draft/passengers/:index", h.UpdatePassenger)
		api.DELETE("/draft/passengers/:index", h.RemovePassenger)

		// Bookings
		api.POST("/bookings", h.ConfirmBooking)
		api.GET("/bookings", h.Dashboard)

		// Assistant chat
		api.POST("/chat", h.SendChat)
		api.GET("/chat", h.GetChat)
	}

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	return router
}
