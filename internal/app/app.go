package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"depositshield_backend/database"
	"depositshield_backend/internal/auth"
	"depositshield_backend/internal/config"
	"depositshield_backend/internal/email"
	"depositshield_backend/internal/handlers"
	"depositshield_backend/internal/logger"
	"depositshield_backend/internal/middleware"
	"depositshield_backend/internal/routes"
	"depositshield_backend/internal/services"
	"depositshield_backend/internal/storage"
	"depositshield_backend/internal/validator"
	"depositshield_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// Run connects to the database and storage, migrates, and serves HTTP
// until SIGINT or SIGTERM.
func Run(cfg *config.Config) error {
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		return err
	}

	store, err := newStorage(ctx, cfg)
	if err != nil {
		return err
	}

	provider := newEmailProvider(cfg)
	defer provider.Close()

	renderer := email.NewTemplateManager()
	if cfg.Email.TemplatesDir != "" {
		if err := renderer.LoadTemplates(cfg.Email.TemplatesDir); err != nil {
			return fmt.Errorf("failed to load email templates: %w", err)
		}
	}

	srv := &http.Server{
		Addr:              cfg.Address(),
		Handler:           SetupRouter(cfg, gormDB, store, provider, renderer),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server startup error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// SetupRouter builds the complete HTTP stack. Tests call it with an
// in-memory database and a temp-dir storage.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, store storage.Storage, provider email.Provider, renderer email.TemplateRenderer) *gin.Engine {
	serviceContainer := services.NewServiceContainer(cfg, store, provider, renderer)
	appHandlers := handlers.NewAppHandlers(serviceContainer, validator.New(), cfg.Server.PublicBaseURL, cfg.Upload.MaxSize)

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.TokenTTL())
	limiter := middleware.NewIPRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	guards := handlers.RouteGuards{
		Auth:         middleware.AuthMiddleware(tokens),
		OptionalAuth: middleware.OptionalAuthMiddleware(tokens),
		RateLimit:    middleware.RateLimitMiddleware(limiter),
	}

	ginRouter := initializeGinRouter(cfg, gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers, guards)
	return ginRouter
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = 8 << 20
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.CORSOrigins))
	router.Use(apperrors.ErrorHandlerMiddleware(cfg.IsDevelopment()))
	router.Use(middleware.DBMiddleware(db))
	return router
}

func newStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	store, err := storage.NewStorage(ctx, storage.Config{
		Type:         cfg.Storage.Type,
		BasePath:     cfg.Storage.BasePath,
		Bucket:       cfg.Storage.Bucket,
		Region:       cfg.Storage.Region,
		AccessKey:    cfg.Storage.AccessKey,
		SecretKey:    cfg.Storage.SecretKey,
		Endpoint:     cfg.Storage.Endpoint,
		UsePathStyle: cfg.Storage.UsePathStyle,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)
	return store, nil
}

func newEmailProvider(cfg *config.Config) email.Provider {
	if !cfg.Email.Enabled {
		logger.Warn("Email delivery disabled, messages are only logged")
		return &LogEmailProvider{}
	}

	smtpCfg := email.DefaultConfig()
	smtpCfg.Host = cfg.Email.SMTPHost
	smtpCfg.Port = cfg.Email.SMTPPort
	smtpCfg.Username = cfg.Email.SMTPUsername
	smtpCfg.Password = cfg.Email.SMTPPassword
	smtpCfg.FromEmail = cfg.Email.FromEmail
	smtpCfg.FromName = cfg.Email.FromName
	smtpCfg.UseTLS = cfg.Email.UseTLS
	return email.NewSMTPProvider(smtpCfg)
}
