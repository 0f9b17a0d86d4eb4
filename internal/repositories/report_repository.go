package repositories

import (
	"errors"
	"time"

	"depositshield_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrReportNotFound = errors.New("report not found")
	// ErrReportAlreadyDecided is returned when an approval decision targets a
	// report whose approval_status is no longer null.
	ErrReportAlreadyDecided = errors.New("report already approved or rejected")
)

type ReportRepository interface {
	Create(db *gorm.DB, report *models.Report) error
	FindByID(db *gorm.DB, id uint) (*models.Report, error)
	FindByUUID(db *gorm.DB, uuid string) (*models.Report, error)
	FindByProperty(db *gorm.DB, propertyID uint) ([]models.Report, error)
	FindAccessibleByUser(db *gorm.DB, userID uint, includeArchived bool) ([]models.Report, error)
	Update(db *gorm.DB, report *models.Report) error
	SetDecision(db *gorm.DB, id uint, status models.ApprovalStatus, at time.Time, message string) error
	Archive(db *gorm.DB, id, userID uint, at time.Time) error
	Delete(db *gorm.DB, id uint) ([]string, error)
}

type ReportRepositoryImpl struct{}

func NewReportRepository() ReportRepository {
	return &ReportRepositoryImpl{}
}

func (r *ReportRepositoryImpl) Create(db *gorm.DB, report *models.Report) error {
	return db.Create(report).Error
}

func (r *ReportRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Report, error) {
	var report models.Report
	if err := db.First(&report, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *ReportRepositoryImpl) FindByUUID(db *gorm.DB, uuid string) (*models.Report, error) {
	var report models.Report
	if err := db.Where("uuid = ?", uuid).First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *ReportRepositoryImpl) FindByProperty(db *gorm.DB, propertyID uint) ([]models.Report, error) {
	reports := []models.Report{}
	err := db.Where("property_id = ?", propertyID).
		Order("created_at DESC").Order("id DESC").
		Find(&reports).Error
	return reports, err
}

// FindAccessibleByUser returns reports the user created or that belong to one of their properties.
func (r *ReportRepositoryImpl) FindAccessibleByUser(db *gorm.DB, userID uint, includeArchived bool) ([]models.Report, error) {
	reports := []models.Report{}

	owned := db.Session(&gorm.Session{NewDB: true}).
		Model(&models.Property{}).Select("id").Where("user_id = ?", userID)

	query := db.Where("(created_by = ? OR property_id IN (?))", userID, owned)
	if !includeArchived {
		query = query.Where("is_archived = ?", false)
	}

	err := query.Order("created_at DESC").Order("id DESC").Find(&reports).Error
	return reports, err
}

func (r *ReportRepositoryImpl) Update(db *gorm.DB, report *models.Report) error {
	return db.Save(report).Error
}

// SetDecision moves approval_status from null to status. The update is
// conditional so two concurrent decisions cannot both succeed.
func (r *ReportRepositoryImpl) SetDecision(db *gorm.DB, id uint, status models.ApprovalStatus, at time.Time, message string) error {
	updates := map[string]interface{}{
		"approval_status": status,
		"updated_at":      at,
	}
	switch status {
	case models.ApprovalStatusApproved:
		updates["approved_at"] = at
		updates["approved_message"] = message
	case models.ApprovalStatusRejected:
		updates["rejected_at"] = at
		updates["rejection_message"] = message
	default:
		return errors.New("unknown approval status")
	}

	result := db.Model(&models.Report{}).
		Where("id = ? AND approval_status IS NULL", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReportAlreadyDecided
	}
	return nil
}

func (r *ReportRepositoryImpl) Archive(db *gorm.DB, id, userID uint, at time.Time) error {
	result := db.Model(&models.Report{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_archived": true,
		"archived_at": at,
		"archived_by": userID,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReportNotFound
	}
	return nil
}

func (r *ReportRepositoryImpl) Delete(db *gorm.DB, id uint) ([]string, error) {
	var files []string
	err := db.Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&models.Report{}).Where("id = ?", id).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return ErrReportNotFound
		}

		deleted, err := deleteReportTree(tx, []uint{id})
		if err != nil {
			return err
		}
		files = deleted
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// deleteReportTree deletes tags, photos, views and finally the reports
// themselves. Must run inside a transaction.
func deleteReportTree(tx *gorm.DB, reportIDs []uint) ([]string, error) {
	if len(reportIDs) == 0 {
		return nil, nil
	}

	var photos []models.Photo
	if err := tx.Select("id", "file_path").Where("report_id IN ?", reportIDs).Find(&photos).Error; err != nil {
		return nil, err
	}

	photoIDs := make([]uint, 0, len(photos))
	files := make([]string, 0, len(photos))
	for _, p := range photos {
		photoIDs = append(photoIDs, p.ID)
		files = append(files, p.FilePath)
	}

	if len(photoIDs) > 0 {
		if err := tx.Where("photo_id IN ?", photoIDs).Delete(&models.PhotoTag{}).Error; err != nil {
			return nil, err
		}
		if err := tx.Where("id IN ?", photoIDs).Delete(&models.Photo{}).Error; err != nil {
			return nil, err
		}
	}
	if err := tx.Where("report_id IN ?", reportIDs).Delete(&models.ReportView{}).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("id IN ?", reportIDs).Delete(&models.Report{}).Error; err != nil {
		return nil, err
	}
	return files, nil
}
