package services

import (
	"context"
	"encoding/json"

	"depositshield_backend/internal/auth"
	"depositshield_backend/internal/logger"
	"depositshield_backend/internal/models"
	"depositshield_backend/internal/repositories"
	"depositshield_backend/internal/services/dto"
	"depositshield_backend/internal/storage"
	"depositshield_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var errNotPropertyOwner = apperrors.NewForbiddenError("You do not have access to this property")

type PropertyService interface {
	CreateProperty(db *gorm.DB, userID uint, req *dto.CreatePropertyRequest) (*models.Property, error)
	ListProperties(db *gorm.DB, userID uint) ([]models.Property, error)
	GetProperty(db *gorm.DB, userID, propertyID uint) (*models.Property, error)
	UpdateProperty(db *gorm.DB, userID, propertyID uint, req *dto.UpdatePropertyRequest) (*models.Property, error)
	DeleteProperty(ctx context.Context, db *gorm.DB, userID, propertyID uint) error
	ListPropertyReports(db *gorm.DB, userID, propertyID uint) ([]models.Report, error)
}

type PropertyServiceImpl struct {
	propertyRepo repositories.PropertyRepository
	reportRepo   repositories.ReportRepository
	storage      storage.Storage
}

func NewPropertyService(propertyRepo repositories.PropertyRepository, reportRepo repositories.ReportRepository, storage storage.Storage) PropertyService {
	return &PropertyServiceImpl{propertyRepo: propertyRepo, reportRepo: reportRepo, storage: storage}
}

func (s *PropertyServiceImpl) CreateProperty(db *gorm.DB, userID uint, req *dto.CreatePropertyRequest) (*models.Property, error) {
	spaces, err := jsonColumn(req.AdditionalSpaces, "additional_spaces")
	if err != nil {
		return nil, err
	}

	property := &models.Property{
		UserID:             userID,
		Address:            req.Address,
		Description:        req.Description,
		RoleAtThisProperty: req.PropertyRole(),
		DepositAmount:      req.DepositAmount,
		ContractStartDate:  req.ContractStartDate,
		ContractEndDate:    req.ContractEndDate,
		MoveOutDate:        req.MoveOutDate,
		LeaseDuration:      req.LeaseDuration,
		LeaseDurationType:  req.LeaseDurationType,
		KitchenCount:       req.KitchenCount,
		AdditionalSpaces:   spaces,
	}
	if err := s.propertyRepo.Create(db, property); err != nil {
		return nil, apperrors.DatabaseError(err, "property")
	}
	return property, nil
}

func (s *PropertyServiceImpl) ListProperties(db *gorm.DB, userID uint) ([]models.Property, error) {
	properties, err := s.propertyRepo.FindByOwner(db, userID)
	if err != nil {
		return nil, apperrors.DatabaseError(err, "property")
	}
	return properties, nil
}

func (s *PropertyServiceImpl) GetProperty(db *gorm.DB, userID, propertyID uint) (*models.Property, error) {
	return s.ownedProperty(db, userID, propertyID)
}

func (s *PropertyServiceImpl) UpdateProperty(db *gorm.DB, userID, propertyID uint, req *dto.UpdatePropertyRequest) (*models.Property, error) {
	property, err := s.ownedProperty(db, userID, propertyID)
	if err != nil {
		return nil, err
	}

	if req.Address != nil {
		property.Address = *req.Address
	}
	if req.Description != nil {
		property.Description = *req.Description
	}
	if req.RoleAtThisProperty != nil {
		property.RoleAtThisProperty = models.PropertyRole(*req.RoleAtThisProperty)
	} else if req.Role != nil {
		property.RoleAtThisProperty = models.PropertyRole(*req.Role)
	}
	if req.DepositAmount != nil {
		property.DepositAmount = req.DepositAmount
	}
	if req.ContractStartDate != nil {
		property.ContractStartDate = req.ContractStartDate
	}
	if req.ContractEndDate != nil {
		property.ContractEndDate = req.ContractEndDate
	}
	if req.MoveOutDate != nil {
		property.MoveOutDate = req.MoveOutDate
	}
	if req.LeaseDuration != nil {
		property.LeaseDuration = req.LeaseDuration
	}
	if req.LeaseDurationType != nil {
		property.LeaseDurationType = req.LeaseDurationType
	}
	if req.KitchenCount != nil {
		property.KitchenCount = req.KitchenCount
	}
	if req.AdditionalSpaces != nil {
		spaces, err := jsonColumn(req.AdditionalSpaces, "additional_spaces")
		if err != nil {
			return nil, err
		}
		property.AdditionalSpaces = spaces
	}

	if err := s.propertyRepo.Update(db, property); err != nil {
		return nil, apperrors.DatabaseError(err, "property")
	}
	return property, nil
}

// DeleteProperty cascades to reports and photos, then removes the photo files.
func (s *PropertyServiceImpl) DeleteProperty(ctx context.Context, db *gorm.DB, userID, propertyID uint) error {
	if _, err := s.ownedProperty(db, userID, propertyID); err != nil {
		return err
	}

	files, err := s.propertyRepo.Delete(db, propertyID)
	if err != nil {
		return notFoundOr(err, repositories.ErrPropertyNotFound, errPropertyNotFound, "property")
	}

	removeFiles(ctx, s.storage, files)
	return nil
}

func (s *PropertyServiceImpl) ListPropertyReports(db *gorm.DB, userID, propertyID uint) ([]models.Report, error) {
	if _, err := s.ownedProperty(db, userID, propertyID); err != nil {
		return nil, err
	}

	reports, err := s.reportRepo.FindByProperty(db, propertyID)
	if err != nil {
		return nil, apperrors.DatabaseError(err, "report")
	}
	return reports, nil
}

func (s *PropertyServiceImpl) ownedProperty(db *gorm.DB, userID, propertyID uint) (*models.Property, error) {
	property, err := s.propertyRepo.FindByID(db, propertyID)
	if err != nil {
		return nil, notFoundOr(err, repositories.ErrPropertyNotFound, errPropertyNotFound, "property")
	}
	if !auth.IsPropertyOwner(property, userID) {
		return nil, errNotPropertyOwner
	}
	return property, nil
}

func jsonColumn(raw json.RawMessage, field string) (datatypes.JSON, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	if !json.Valid(raw) {
		return nil, fieldError(field, "Must be valid JSON")
	}
	return datatypes.JSON(raw), nil
}

// removeFiles deletes blobs after their rows are gone. Failures only leave
// unreferenced files behind, so they are logged.
func removeFiles(ctx context.Context, store storage.Storage, keys []string) {
	for _, key := range keys {
		if err := store.Delete(ctx, key); err != nil {
			logger.CtxWarn(ctx, "failed to delete photo file", "file", key, "error", err)
		}
	}
}
