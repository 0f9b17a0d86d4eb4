package services

import (
	"errors"
	"time"

	"depositshield_backend/internal/logger"
	"depositshield_backend/internal/models"
	"depositshield_backend/internal/repositories"
	"depositshield_backend/internal/services/dto"
	"depositshield_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShareService resolves public share links. Only the report uuid is accepted.
type ShareService interface {
	Resolve(db *gorm.DB, shareUUID string, viewerID uint, baseURL string) (*dto.SharedReport, error)
}

type ShareServiceImpl struct {
	reportRepo repositories.ReportRepository
	viewRepo   repositories.ReportViewRepository
	aggregator ReportAggregator
}

func NewShareService(reportRepo repositories.ReportRepository, viewRepo repositories.ReportViewRepository, aggregator ReportAggregator) ShareService {
	return &ShareServiceImpl{reportRepo: reportRepo, viewRepo: viewRepo, aggregator: aggregator}
}

func (s *ShareServiceImpl) Resolve(db *gorm.DB, shareUUID string, viewerID uint, baseURL string) (*dto.SharedReport, error) {
	ctx := db.Statement.Context

	if _, err := uuid.Parse(shareUUID); err != nil {
		return nil, errReportNotFound
	}

	report, err := s.reportRepo.FindByUUID(db, shareUUID)
	if err != nil {
		return nil, notFoundOr(err, repositories.ErrReportNotFound, errReportNotFound, "report")
	}

	view := &models.ReportView{ReportID: report.ID, ViewedAt: time.Now()}
	if viewerID != 0 {
		view.ViewerID = &viewerID
	}
	if err := s.viewRepo.Create(db, view); err != nil {
		logger.CtxWarn(ctx, "failed to record report view", "report_id", report.ID, "error", err)
	}

	shared, err := s.aggregator.Aggregate(db, report, baseURL)
	if err != nil {
		if errors.Is(err, ErrPhotosUnavailable) {
			logger.CtxWarn(ctx, "serving shared report without photos", "report_id", report.ID, "error", err)
			return s.aggregator.BareView(db, report), nil
		}
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.DatabaseError(err, "report")
	}
	return shared, nil
}
