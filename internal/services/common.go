package services

import (
	"errors"

	"depositshield_backend/internal/models"
	"depositshield_backend/internal/repositories"
	"depositshield_backend/internal/validator"
	"depositshield_backend/pkg/apperrors"

	"gorm.io/gorm"
)

var (
	errPropertyNotFound = apperrors.ErrNotFound(repositories.ErrPropertyNotFound, "property", "Property not found")
	errReportNotFound   = apperrors.ErrNotFound(repositories.ErrReportNotFound, "report", "Report not found")
	errPhotoNotFound    = apperrors.ErrNotFound(repositories.ErrPhotoNotFound, "photo", "Photo not found")
)

// notFoundOr maps a repository sentinel to the matching 404 and anything else to a database error.
func notFoundOr(err error, sentinel error, notFound *apperrors.AppError, domain string) error {
	if errors.Is(err, sentinel) {
		return notFound
	}
	return apperrors.DatabaseError(err, domain)
}

func fieldError(field, message string) error {
	return apperrors.ValidationError(validator.NewFieldError(field, message).Errors)
}

// reportWithProperty loads a report and its property. A property that
// vanished concurrently yields nil rather than an error.
func reportWithProperty(db *gorm.DB, reports repositories.ReportRepository, properties repositories.PropertyRepository, reportID uint) (*models.Report, *models.Property, error) {
	report, err := reports.FindByID(db, reportID)
	if err != nil {
		return nil, nil, notFoundOr(err, repositories.ErrReportNotFound, errReportNotFound, "report")
	}

	property, err := optionalProperty(db, properties, report.PropertyID)
	if err != nil {
		return nil, nil, err
	}
	return report, property, nil
}

func optionalProperty(db *gorm.DB, properties repositories.PropertyRepository, id uint) (*models.Property, error) {
	property, err := properties.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPropertyNotFound) {
			return nil, nil
		}
		return nil, apperrors.DatabaseError(err, "property")
	}
	return property, nil
}
