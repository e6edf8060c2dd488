package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/intelligensi-ai/intelligensi-bridge/config"
	"github.com/intelligensi-ai/intelligensi-bridge/domain/content"
	"github.com/intelligensi-ai/intelligensi-bridge/migrations"
	"github.com/intelligensi-ai/intelligensi-bridge/pkg/apperrors"
	"github.com/intelligensi-ai/intelligensi-bridge/pkg/logger"
	"github.com/intelligensi-ai/intelligensi-bridge/routes"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pressly/goose/v3"
	"github.com/spf13/viper"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/main.go [server|migrate]")
		os.Exit(1)
	}

	config.InitConfig()

	logger.Init(logger.Config{
		Level:       logger.Level(viper.GetString("LOG_LEVEL")),
		Environment: viper.GetString("ENVIRONMENT"),
		ServiceName: "intelligensi-bridge",
		Version:     viper.GetString("VERSION"),
	})

	switch os.Args[1] {
	case "server":
		startServer()
	case "migrate":
		runMigrations()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}
}

func startServer() {
	log := logger.Get().WithComponent("server")

	// Select the content store driver
	switch viper.GetString("STORE_DRIVER") {
	case "memory":
		content.UseStore(content.NewMemoryStore())
		log.Info("Using in-memory content store")
	default:
		config.InitDB()
		content.UseStore(content.NewSQLStore(config.DB))
	}
	config.InitRedis()

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = apperrors.HTTPErrorHandler(logger.Get())

	e.Use(logger.RequestLoggerMiddleware(logger.Get()))
	e.Use(logger.RecoveryMiddleware(logger.Get()))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{echo.GET, echo.POST, echo.OPTIONS},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders: []string{echo.HeaderContentLength, "X-Total-Count", logger.RequestIDHeader},
		MaxAge:        86400,
	}))

	routes.RegisterRoutes(e)

	// Graceful shutdown on SIGINT/SIGTERM
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Info("Shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(ctx); err != nil {
			log.Error("Forced shutdown", err)
		}
		config.CloseDB()
	}()

	addr := viper.GetString("SERVER_ADDR")
	log.Info("Starting server", logger.String("addr", addr))
	if err := e.Start(addr); err != nil {
		log.Info("Server stopped", logger.Err(err))
	}
}

func runMigrations() {
	log := logger.Get().WithComponent("migrate")

	config.InitDB()
	defer config.CloseDB()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("mysql"); err != nil {
		log.Fatal("Failed to set migration dialect", err)
	}

	if err := goose.Up(config.DB.DB, "."); err != nil {
		log.Fatal("Failed to run migrations", err)
	}

	log.Info("Migrations applied")
}
