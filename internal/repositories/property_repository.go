package repositories

import (
	"errors"

	"depositshield_backend/internal/models"

	"gorm.io/gorm"
)

var ErrPropertyNotFound = errors.New("property not found")

type PropertyRepository interface {
	Create(db *gorm.DB, property *models.Property) error
	FindByID(db *gorm.DB, id uint) (*models.Property, error)
	FindByOwner(db *gorm.DB, userID uint) ([]models.Property, error)
	Update(db *gorm.DB, property *models.Property) error
	// Delete removes the property and everything under it, returning the
	// storage keys of the deleted photos.
	Delete(db *gorm.DB, id uint) ([]string, error)
}

type PropertyRepositoryImpl struct{}

func NewPropertyRepository() PropertyRepository {
	return &PropertyRepositoryImpl{}
}

func (r *PropertyRepositoryImpl) Create(db *gorm.DB, property *models.Property) error {
	return db.Create(property).Error
}

func (r *PropertyRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Property, error) {
	var property models.Property
	if err := db.First(&property, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return &property, nil
}

func (r *PropertyRepositoryImpl) FindByOwner(db *gorm.DB, userID uint) ([]models.Property, error) {
	properties := []models.Property{}
	err := db.Where("user_id = ?", userID).Order("created_at DESC").Order("id DESC").Find(&properties).Error
	return properties, err
}

func (r *PropertyRepositoryImpl) Update(db *gorm.DB, property *models.Property) error {
	return db.Save(property).Error
}

// Delete cascades explicitly: tags, photos, views, reports, then the property.
func (r *PropertyRepositoryImpl) Delete(db *gorm.DB, id uint) ([]string, error) {
	var files []string
	err := db.Transaction(func(tx *gorm.DB) error {
		var reportIDs []uint
		if err := tx.Model(&models.Report{}).Where("property_id = ?", id).Pluck("id", &reportIDs).Error; err != nil {
			return err
		}

		deleted, err := deleteReportTree(tx, reportIDs)
		if err != nil {
			return err
		}
		files = deleted

		result := tx.Delete(&models.Property{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPropertyNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
