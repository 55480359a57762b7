package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nemopss/spendwise/api"
	"github.com/nemopss/spendwise/config"
	"github.com/nemopss/spendwise/db"
	_ "github.com/nemopss/spendwise/docs"
	"github.com/nemopss/spendwise/logger"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/sync/errgroup"
)

// @title Spendwise API
// @version 1.0
// @description Personal finance tracker: transactions, budgets and categories per user.
// @BasePath /
// @SecurityDefinitions.apikey ApiKeyAuth
// @In header
// @Name Authorization
func main() {
	configPath := flag.String("config", "", "optional config file (yaml, toml or json)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.New(logger.Config{}).Error("Failed to load config", logger.FieldError, err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("Invalid config", logger.FieldError, err)
		os.Exit(1)
	}

	if err := run(cfg, log); err != nil {
		log.Error("Server error", logger.FieldError, err)
		os.Exit(1)
	}
	log.Info("Server stopped gracefully", logger.FieldOperation, logger.OpShutdown)
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Подключение к базе данных
	storage, err := db.New(db.Driver(cfg.DBDriver), cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer storage.Close()
	if err := storage.Connect(ctx); err != nil {
		return err
	}
	log.WithComponent(logger.ComponentStorage).Info("Database ready", "driver", storage.Driver())

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Recovery(), logger.Middleware(log))

	handler := api.NewHandler(storage, cfg, log)
	handler.Register(r)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Starting server", "port", cfg.Port, logger.FieldOperation, logger.OpStartup)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutdown signal received", logger.FieldOperation, logger.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
