package services

import (
	"errors"
	"fmt"

	"depositshield_backend/internal/logger"
	"depositshield_backend/internal/models"
	"depositshield_backend/internal/repositories"
	"depositshield_backend/internal/services/dto"

	"gorm.io/gorm"
)

// ErrPhotosUnavailable wraps a failed photo read during aggregation.
var ErrPhotosUnavailable = errors.New("report photos unavailable")

// ReportAggregator assembles the shared report view from normalized rows.
type ReportAggregator interface {
	Aggregate(db *gorm.DB, report *models.Report, baseURL string) (*dto.SharedReport, error)
	// BareView is the report and property without rooms or photos.
	BareView(db *gorm.DB, report *models.Report) *dto.SharedReport
}

type ReportAggregatorImpl struct {
	propertyRepo repositories.PropertyRepository
	photoRepo    repositories.PhotoRepository
}

func NewReportAggregator(propertyRepo repositories.PropertyRepository, photoRepo repositories.PhotoRepository) ReportAggregator {
	return &ReportAggregatorImpl{propertyRepo: propertyRepo, photoRepo: photoRepo}
}

func (a *ReportAggregatorImpl) Aggregate(db *gorm.DB, report *models.Report, baseURL string) (*dto.SharedReport, error) {
	property, err := optionalProperty(db, a.propertyRepo, report.PropertyID)
	if err != nil {
		return nil, err
	}

	rooms, err := models.ParseRooms(report.RoomsJSON)
	if err != nil {
		logger.CtxWarn(db.Statement.Context, "malformed rooms_json, continuing without rooms",
			"report_id", report.ID, "error", err)
	}

	photos, err := a.photoRepo.FindByReport(db, report.ID, repositories.PhotoOrderTimestamp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPhotosUnavailable, err)
	}

	return BuildSharedReport(report, property, rooms, photos, baseURL), nil
}

func (a *ReportAggregatorImpl) BareView(db *gorm.DB, report *models.Report) *dto.SharedReport {
	property, err := optionalProperty(db, a.propertyRepo, report.PropertyID)
	if err != nil {
		logger.CtxWarn(db.Statement.Context, "property lookup failed for bare report view",
			"report_id", report.ID, "error", err)
		property = nil
	}
	return BuildSharedReport(report, property, nil, nil, "")
}

// BuildSharedReport partitions photos into rooms. A photo lands in a room
// only when both its room_id and report_id match, so stale room ids
// reused across reports cannot leak photos.
func BuildSharedReport(report *models.Report, property *models.Property, rooms []models.Room, photos []models.Photo, baseURL string) *dto.SharedReport {
	views := make([]dto.PhotoView, 0, len(photos))
	for _, p := range photos {
		if p.ReportID != report.ID {
			continue
		}
		views = append(views, dto.NewPhotoView(p, baseURL))
	}

	roomViews := make([]dto.RoomView, 0, len(rooms))
	for _, room := range rooms {
		var inRoom []dto.PhotoView
		for _, v := range views {
			if v.ReportID == report.ID && v.RoomID != nil && *v.RoomID == string(room.ID) {
				inRoom = append(inRoom, v)
			}
		}
		roomViews = append(roomViews, dto.NewRoomView(room, inRoom))
	}

	return &dto.SharedReport{
		Report:   dto.NewReportDetail(report, property),
		Property: dto.NewPropertySummary(property),
		Rooms:    roomViews,
		Photos:   views,
	}
}
