package handlers

import (
	"depositshield_backend/internal/services"
	"depositshield_backend/internal/validator"
)

// AppHandlers holds every HTTP handler of the application.
type AppHandlers struct {
	AuthHandler     *AuthHandler
	PropertyHandler *PropertyHandler
	ReportHandler   *ReportHandler
	PhotoHandler    *PhotoHandler
	FileHandler     *FileHandler
	HealthHandler   *HealthHandler
}

func NewAppHandlers(svc *services.ServiceContainer, v *validator.Validator, publicBaseURL string, maxUploadSize int64) *AppHandlers {
	base := NewBaseHandler(v, publicBaseURL)
	return &AppHandlers{
		AuthHandler:     NewAuthHandler(base, svc.AuthService),
		PropertyHandler: NewPropertyHandler(base, svc.PropertyService),
		ReportHandler:   NewReportHandler(base, svc.ReportService, svc.ShareService),
		PhotoHandler:    NewPhotoHandler(base, svc.PhotoService, maxUploadSize),
		FileHandler:     NewFileHandler(base, svc.Storage),
		HealthHandler:   NewHealthHandler(base),
	}
}
