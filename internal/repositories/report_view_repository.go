package repositories

import (
	"depositshield_backend/internal/models"

	"gorm.io/gorm"
)

// ReportViewRepository is append-only.
type ReportViewRepository interface {
	Create(db *gorm.DB, view *models.ReportView) error
	CountByReport(db *gorm.DB, reportID uint) (int64, error)
}

type ReportViewRepositoryImpl struct{}

func NewReportViewRepository() ReportViewRepository {
	return &ReportViewRepositoryImpl{}
}

func (r *ReportViewRepositoryImpl) Create(db *gorm.DB, view *models.ReportView) error {
	return db.Create(view).Error
}

func (r *ReportViewRepositoryImpl) CountByReport(db *gorm.DB, reportID uint) (int64, error) {
	var count int64
	err := db.Model(&models.ReportView{}).Where("report_id = ?", reportID).Count(&count).Error
	return count, err
}
