package services

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"depositshield_backend/internal/auth"
	"depositshield_backend/internal/logger"
	"depositshield_backend/internal/models"
	"depositshield_backend/internal/repositories"
	"depositshield_backend/internal/services/dto"
	"depositshield_backend/internal/storage"
	"depositshield_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultRejectionMessage is stored when a report is rejected without a reason.
const DefaultRejectionMessage = "Report rejected"

var (
	errReportForbidden   = apperrors.NewForbiddenError("You do not have access to this report")
	errDecisionForbidden = apperrors.NewForbiddenError("You are not allowed to approve or reject this report")
	errAlreadyDecided    = apperrors.ErrInvalidStatus("report", "Report has already been approved or rejected")
	errApprovedImmutable = apperrors.ErrInvalidStatus("report", "Approved reports cannot be modified")
)

type ReportService interface {
	CreateReport(db *gorm.DB, userID uint, req *dto.CreateReportRequest) (*models.Report, error)
	ListReports(db *gorm.DB, userID uint, includeArchived bool) ([]models.Report, error)
	ListReportsByProperty(db *gorm.DB, userID, propertyID uint) ([]models.Report, error)
	GetReport(db *gorm.DB, userID, reportID uint, baseURL string) (*dto.SharedReport, error)
	UpdateReport(db *gorm.DB, userID, reportID uint, req *dto.UpdateReportRequest) (*models.Report, error)
	DeleteReport(ctx context.Context, db *gorm.DB, userID, reportID uint) error
	ArchiveReport(db *gorm.DB, userID, reportID uint) (*models.Report, error)
	ApproveReport(ctx context.Context, db *gorm.DB, userID, reportID uint, req *dto.ApproveReportRequest) (*dto.DecisionResponse, error)
	RejectReport(ctx context.Context, db *gorm.DB, userID, reportID uint, req *dto.RejectReportRequest) (*dto.DecisionResponse, error)
	NotifyReport(ctx context.Context, db *gorm.DB, userID, reportID uint, req *dto.NotifyReportRequest) (*dto.NotifyResponse, error)
}

type ReportServiceImpl struct {
	reportRepo    repositories.ReportRepository
	propertyRepo  repositories.PropertyRepository
	userRepo      repositories.UserRepository
	viewRepo      repositories.ReportViewRepository
	aggregator    ReportAggregator
	notifications NotificationService
	storage       storage.Storage
	frontendURL   string
}

func NewReportService(
	reportRepo repositories.ReportRepository,
	propertyRepo repositories.PropertyRepository,
	userRepo repositories.UserRepository,
	viewRepo repositories.ReportViewRepository,
	aggregator ReportAggregator,
	notifications NotificationService,
	storage storage.Storage,
	frontendURL string,
) ReportService {
	return &ReportServiceImpl{
		reportRepo:    reportRepo,
		propertyRepo:  propertyRepo,
		userRepo:      userRepo,
		viewRepo:      viewRepo,
		aggregator:    aggregator,
		notifications: notifications,
		storage:       storage,
		frontendURL:   strings.TrimRight(frontendURL, "/"),
	}
}

// CreateReport requires the caller to own the property. The share uuid is
// generated unless the client supplied one.
func (s *ReportServiceImpl) CreateReport(db *gorm.DB, userID uint, req *dto.CreateReportRequest) (*models.Report, error) {
	property, err := s.propertyRepo.FindByID(db, req.PropertyID)
	if err != nil {
		return nil, notFoundOr(err, repositories.ErrPropertyNotFound, errPropertyNotFound, "property")
	}
	if !auth.IsPropertyOwner(property, userID) {
		return nil, errNotPropertyOwner
	}

	rooms, err := models.EncodeRooms(dto.ToRooms(req.Rooms))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	shareUUID := req.UUID
	if shareUUID == "" {
		shareUUID = uuid.NewString()
	} else if _, err := s.reportRepo.FindByUUID(db, shareUUID); err == nil {
		return nil, apperrors.ErrAlreadyExists(nil, "report", "A report with this uuid already exists")
	} else if !errors.Is(err, repositories.ErrReportNotFound) {
		return nil, apperrors.DatabaseError(err, "report")
	}

	report := &models.Report{
		PropertyID:  property.ID,
		CreatedBy:   userID,
		Type:        models.ReportType(req.Type),
		UUID:        shareUUID,
		Title:       req.Title,
		Description: req.Description,
		RoomsJSON:   rooms,
		TenantEmail: req.TenantEmail,
		TenantName:  req.TenantName,
	}
	if err := s.reportRepo.Create(db, report); err != nil {
		return nil, apperrors.DatabaseError(err, "report")
	}
	return report, nil
}

func (s *ReportServiceImpl) ListReports(db *gorm.DB, userID uint, includeArchived bool) ([]models.Report, error) {
	reports, err := s.reportRepo.FindAccessibleByUser(db, userID, includeArchived)
	if err != nil {
		return nil, apperrors.DatabaseError(err, "report")
	}
	return reports, nil
}

// ListReportsByProperty returns every report to the property owner and only
// their own reports to anyone else.
func (s *ReportServiceImpl) ListReportsByProperty(db *gorm.DB, userID, propertyID uint) ([]models.Report, error) {
	property, err := s.propertyRepo.FindByID(db, propertyID)
	if err != nil {
		return nil, notFoundOr(err, repositories.ErrPropertyNotFound, errPropertyNotFound, "property")
	}

	reports, err := s.reportRepo.FindByProperty(db, propertyID)
	if err != nil {
		return nil, apperrors.DatabaseError(err, "report")
	}
	if auth.IsPropertyOwner(property, userID) {
		return reports, nil
	}

	visible := make([]models.Report, 0, len(reports))
	for i := range reports {
		if auth.CanAccessReport(&reports[i], property, userID) {
			visible = append(visible, reports[i])
		}
	}
	if len(visible) == 0 {
		return nil, errNotPropertyOwner
	}
	return visible, nil
}

func (s *ReportServiceImpl) GetReport(db *gorm.DB, userID, reportID uint, baseURL string) (*dto.SharedReport, error) {
	report, property, err := reportWithProperty(db, s.reportRepo, s.propertyRepo, reportID)
	if err != nil {
		return nil, err
	}
	if !auth.CanAccessReport(report, property, userID) {
		return nil, errReportForbidden
	}

	shared, err := s.aggregator.Aggregate(db, report, baseURL)
	if errors.Is(err, ErrPhotosUnavailable) {
		logger.CtxWarn(db.Statement.Context, "serving report without photos", "report_id", report.ID, "error", err)
		shared = s.aggregator.BareView(db, report)
	} else if err != nil {
		return nil, err
	}

	views, err := s.viewRepo.CountByReport(db, report.ID)
	if err != nil {
		logger.CtxWarn(db.Statement.Context, "failed to count report views", "report_id", report.ID, "error", err)
	} else {
		shared.ViewCount = &views
	}
	return shared, nil
}

// UpdateReport refuses approved reports. A content change to a rejected
// report clears the rejection and, when asked, rotates the share uuid so old
// links die. A rejected report whose content is unchanged stays rejected.
func (s *ReportServiceImpl) UpdateReport(db *gorm.DB, userID, reportID uint, req *dto.UpdateReportRequest) (*models.Report, error) {
	report, err := s.reportRepo.FindByID(db, reportID)
	if err != nil {
		return nil, notFoundOr(err, repositories.ErrReportNotFound, errReportNotFound, "report")
	}
	if !auth.CanMutateReport(report, userID) {
		return nil, errReportForbidden
	}
	if report.IsApproved() {
		return nil, errApprovedImmutable
	}

	changed := false
	if req.Title != nil && *req.Title != report.Title {
		report.Title = *req.Title
		changed = true
	}
	if req.Description != nil && *req.Description != report.Description {
		report.Description = *req.Description
		changed = true
	}
	if req.Type != nil && models.ReportType(*req.Type) != report.Type {
		report.Type = models.ReportType(*req.Type)
		changed = true
	}
	if req.Rooms != nil {
		rooms := dto.ToRooms(req.Rooms)
		// Unreadable stored rooms count as a change.
		current, parseErr := models.ParseRooms(report.RoomsJSON)
		if parseErr != nil || !slices.Equal(rooms, current) {
			encoded, err := models.EncodeRooms(rooms)
			if err != nil {
				return nil, apperrors.InternalError(err)
			}
			report.RoomsJSON = encoded
			changed = true
		}
	}
	if req.TenantEmail != nil && !equalOptional(req.TenantEmail, report.TenantEmail) {
		report.TenantEmail = req.TenantEmail
		changed = true
	}
	if req.TenantName != nil && !equalOptional(req.TenantName, report.TenantName) {
		report.TenantName = req.TenantName
		changed = true
	}

	if !changed {
		return report, nil
	}

	if report.IsRejected() {
		report.ApprovalStatus = nil
		report.RejectedAt = nil
		report.RejectionMessage = nil
		if req.GenerateNewUUID {
			report.UUID = uuid.NewString()
		}
	}

	if err := s.reportRepo.Update(db, report); err != nil {
		return nil, apperrors.DatabaseError(err, "report")
	}
	return report, nil
}

func (s *ReportServiceImpl) DeleteReport(ctx context.Context, db *gorm.DB, userID, reportID uint) error {
	report, err := s.reportRepo.FindByID(db, reportID)
	if err != nil {
		return notFoundOr(err, repositories.ErrReportNotFound, errReportNotFound, "report")
	}
	if !auth.CanMutateReport(report, userID) {
		return errReportForbidden
	}

	files, err := s.reportRepo.Delete(db, reportID)
	if err != nil {
		return notFoundOr(err, repositories.ErrReportNotFound, errReportNotFound, "report")
	}

	removeFiles(ctx, s.storage, files)
	return nil
}

func (s *ReportServiceImpl) ArchiveReport(db *gorm.DB, userID, reportID uint) (*models.Report, error) {
	report, err := s.reportRepo.FindByID(db, reportID)
	if err != nil {
		return nil, notFoundOr(err, repositories.ErrReportNotFound, errReportNotFound, "report")
	}
	if !auth.CanMutateReport(report, userID) {
		return nil, errReportForbidden
	}

	if err := s.reportRepo.Archive(db, reportID, userID, time.Now()); err != nil {
		return nil, notFoundOr(err, repositories.ErrReportNotFound, errReportNotFound, "report")
	}
	return s.reload(db, reportID)
}

func (s *ReportServiceImpl) ApproveReport(ctx context.Context, db *gorm.DB, userID, reportID uint, req *dto.ApproveReportRequest) (*dto.DecisionResponse, error) {
	report, err := s.decide(db, userID, reportID, req.UUID, models.ApprovalStatusApproved, req.Message)
	if err != nil {
		return nil, err
	}

	recipient, details := s.notificationTarget(db, report, dto.Recipient{Email: req.Email, Name: req.Name})
	result := s.notifications.SendApproval(ctx, recipient, details, req.Message)

	return &dto.DecisionResponse{
		Message:     "Report approved successfully",
		Report:      report,
		EmailStatus: result.Status(),
		EmailResult: &result,
	}, nil
}

// RejectReport requires a reason unless the caller asked for a quick rejection.
func (s *ReportServiceImpl) RejectReport(ctx context.Context, db *gorm.DB, userID, reportID uint, req *dto.RejectReportRequest) (*dto.DecisionResponse, error) {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		if !req.Quick {
			return nil, fieldError("reason", "A rejection reason is required")
		}
		reason = DefaultRejectionMessage
	}

	report, err := s.decide(db, userID, reportID, req.UUID, models.ApprovalStatusRejected, reason)
	if err != nil {
		return nil, err
	}

	recipient, details := s.notificationTarget(db, report, dto.Recipient{Email: req.Email, Name: req.Name})
	result := s.notifications.SendRejection(ctx, recipient, details, reason)

	return &dto.DecisionResponse{
		Message:     "Report rejected successfully",
		Report:      report,
		EmailStatus: result.Status(),
		EmailResult: &result,
	}, nil
}

func (s *ReportServiceImpl) NotifyReport(ctx context.Context, db *gorm.DB, userID, reportID uint, req *dto.NotifyReportRequest) (*dto.NotifyResponse, error) {
	report, property, err := reportWithProperty(db, s.reportRepo, s.propertyRepo, reportID)
	if err != nil {
		return nil, err
	}
	if !auth.CanAccessReport(report, property, userID) {
		return nil, errReportForbidden
	}

	recipient, details := s.notificationTarget(db, report, dto.Recipient{Email: req.Email, Name: req.Name})
	result := s.notifications.SendCustom(ctx, recipient, details, req.Subject, req.Message)

	message := "Notification sent"
	if !result.Success {
		message = "Notification could not be delivered"
	}
	return &dto.NotifyResponse{Message: message, EmailStatus: result.Status(), EmailResult: &result}, nil
}

// decide applies an approval decision after the access and state checks and
// returns the fresh row. Nothing after this point can undo the decision.
func (s *ReportServiceImpl) decide(db *gorm.DB, userID, reportID uint, suppliedUUID string, status models.ApprovalStatus, message string) (*models.Report, error) {
	report, err := s.reportRepo.FindByID(db, reportID)
	if err != nil {
		return nil, notFoundOr(err, repositories.ErrReportNotFound, errReportNotFound, "report")
	}
	if !auth.CanApproveOrReject(report, userID, suppliedUUID) {
		return nil, errDecisionForbidden
	}
	if report.IsDecided() {
		return nil, errAlreadyDecided
	}

	if err := s.reportRepo.SetDecision(db, reportID, status, time.Now(), message); err != nil {
		if errors.Is(err, repositories.ErrReportAlreadyDecided) {
			return nil, errAlreadyDecided
		}
		return nil, apperrors.DatabaseError(err, "report")
	}

	logger.CtxInfo(db.Statement.Context, "report decision recorded", "report_id", reportID, "status", status)
	return s.reload(db, reportID)
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// notificationTarget gathers the recipient and report summary. Lookup
// failures only narrow the recipient fallbacks.
func (s *ReportServiceImpl) notificationTarget(db *gorm.DB, report *models.Report, explicit dto.Recipient) (dto.Recipient, dto.ReportDetails) {
	ctx := db.Statement.Context

	var creator *models.User
	if u, err := s.userRepo.FindByID(db, report.CreatedBy); err == nil {
		creator = u
	} else {
		logger.CtxWarn(ctx, "report creator lookup failed", "report_id", report.ID, "error", err)
	}

	details := dto.ReportDetails{
		ID:          report.ID,
		Title:       report.Title,
		Description: report.Description,
		Type:        string(report.Type),
		CreatedAt:   report.CreatedAt,
		ViewURL:     s.frontendURL + "/reports/shared/" + report.UUID,
	}
	if property, err := optionalProperty(db, s.propertyRepo, report.PropertyID); err == nil && property != nil {
		details.Address = property.Address
	}

	return s.notifications.ResolveRecipient(explicit, report, creator), details
}

func (s *ReportServiceImpl) reload(db *gorm.DB, reportID uint) (*models.Report, error) {
	report, err := s.reportRepo.FindByID(db, reportID)
	if err != nil {
		return nil, notFoundOr(err, repositories.ErrReportNotFound, errReportNotFound, "report")
	}
	return report, nil
}
