package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"custopro-api/internal/config"
	"custopro-api/internal/database"
	"custopro-api/internal/handlers"
	"custopro-api/internal/middleware"
	"custopro-api/internal/notify"
	"custopro-api/internal/repositories"
	"custopro-api/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	customerRepo := repositories.NewCustomerRepository(db)

	logger := services.NewCustomerLogger(slog.Default())
	metrics := services.NewPrometheusMetrics()

	viewService := services.NewCustomerViewService(customerRepo, logger, metrics, nil)
	generator := services.NewCustomerGenerator(customerRepo, logger, metrics)

	emailDispatcher := notify.NewEmailDispatcher(cfg.Notify.Email)
	smsDispatcher := notify.NewSMSDispatcher(cfg.Notify.SMS)

	if cfg.Seed.Customers > 0 {
		seeded, err := generator.SeedCustomers(context.Background(), cfg.Seed.Customers)
		if err != nil {
			log.Printf("Warning: seeding stopped after %d customers: %v", seeded, err)
		} else {
			log.Printf("Seeded %d customer documents", seeded)
		}
	}

	customerHandler := handlers.NewCustomerHandler(viewService, logger)
	messageHandler := handlers.NewMessageHandler(emailDispatcher, smsDispatcher, logger, metrics)
	healthHandler := handlers.NewHealthCheckHandler(db)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	}))

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	api.GET("/customers", customerHandler.ListCustomers)
	api.GET("/customers/:id", customerHandler.GetCustomer)
	api.POST("/messages/email", messageHandler.SendEmail)
	api.POST("/messages/sms", messageHandler.SendSMS)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := e.StartServer(server); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()
	log.Printf("Server started on port %s (%s)", cfg.Server.Port, cfg.Server.Environment)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
