package services

import (
	"depositshield_backend/internal/auth"
	"depositshield_backend/internal/config"
	"depositshield_backend/internal/email"
	"depositshield_backend/internal/repositories"
	"depositshield_backend/internal/services/dto"
	"depositshield_backend/internal/storage"
)

// ServiceContainer holds every service the handlers depend on.
type ServiceContainer struct {
	AuthService         AuthService
	PropertyService     PropertyService
	ReportService       ReportService
	PhotoService        PhotoService
	ShareService        ShareService
	NotificationService NotificationService
	Storage             storage.Storage
}

// NewServiceContainer wires repositories, storage and mail into services.
func NewServiceContainer(cfg *config.Config, store storage.Storage, provider email.Provider, renderer email.TemplateRenderer) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	propertyRepo := repositories.NewPropertyRepository()
	reportRepo := repositories.NewReportRepository()
	photoRepo := repositories.NewPhotoRepository()
	viewRepo := repositories.NewReportViewRepository()

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.TokenTTL())
	notifications := NewNotificationService(provider, renderer, dto.Recipient{
		Email: cfg.Email.FromEmail,
		Name:  cfg.Email.FromName,
	})
	aggregator := NewReportAggregator(propertyRepo, photoRepo)

	return &ServiceContainer{
		AuthService:     NewAuthService(userRepo, tokens, notifications),
		PropertyService: NewPropertyService(propertyRepo, reportRepo, store),
		ReportService: NewReportService(
			reportRepo, propertyRepo, userRepo, viewRepo,
			aggregator, notifications, store, cfg.Server.FrontendURL,
		),
		PhotoService: NewPhotoService(photoRepo, reportRepo, propertyRepo, store, UploadConfig{
			MaxFileSize:  cfg.Upload.MaxSize,
			AllowedTypes: cfg.Upload.AllowedTypes,
		}),
		ShareService:        NewShareService(reportRepo, viewRepo, aggregator),
		NotificationService: notifications,
		Storage:             store,
	}
}
