package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"path/filepath"
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

	"github.com/gabriel-vasile/mimetype"
	"gorm.io/gorm"
)

var errPhotoForbidden = apperrors.NewForbiddenError("You do not have access to this photo")

// extensionTypes maps accepted file extensions to the MIME type their
// content must sniff as.
var extensionTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
}

type UploadConfig struct {
	MaxFileSize  int64
	AllowedTypes []string
}

type PhotoService interface {
	UploadPhoto(ctx context.Context, db *gorm.DB, userID, reportID uint, file *dto.UploadedFile, req *dto.UploadPhotoRequest, baseURL string) (*dto.PhotoView, error)
	ListPhotos(db *gorm.DB, userID, reportID uint, baseURL string) ([]dto.PhotoView, error)
	GetPhoto(db *gorm.DB, userID, photoID uint, baseURL string) (*dto.PhotoView, error)
	UpdateNote(db *gorm.DB, userID, photoID uint, note string, baseURL string) (*dto.PhotoView, error)
	AddTag(db *gorm.DB, userID, photoID uint, tag string, baseURL string) (*dto.PhotoView, error)
	RemoveTag(db *gorm.DB, userID, photoID uint, tag string, baseURL string) (*dto.PhotoView, error)
	DeletePhoto(ctx context.Context, db *gorm.DB, userID, photoID uint) error
}

type PhotoServiceImpl struct {
	photoRepo    repositories.PhotoRepository
	reportRepo   repositories.ReportRepository
	propertyRepo repositories.PropertyRepository
	storage      storage.Storage
	config       UploadConfig
}

func NewPhotoService(
	photoRepo repositories.PhotoRepository,
	reportRepo repositories.ReportRepository,
	propertyRepo repositories.PropertyRepository,
	storage storage.Storage,
	config UploadConfig,
) PhotoService {
	if len(config.AllowedTypes) == 0 {
		config.AllowedTypes = []string{"image/jpeg", "image/png"}
	}
	return &PhotoServiceImpl{
		photoRepo:    photoRepo,
		reportRepo:   reportRepo,
		propertyRepo: propertyRepo,
		storage:      storage,
		config:       config,
	}
}

// UploadPhoto checks the report and the file before anything is written.
// A failed insert removes the stored file so no blob outlives its row.
func (s *PhotoServiceImpl) UploadPhoto(ctx context.Context, db *gorm.DB, userID, reportID uint, file *dto.UploadedFile, req *dto.UploadPhotoRequest, baseURL string) (*dto.PhotoView, error) {
	report, property, err := reportWithProperty(db, s.reportRepo, s.propertyRepo, reportID)
	if err != nil {
		return nil, err
	}
	if !auth.CanAccessReport(report, property, userID) {
		return nil, errReportForbidden
	}

	if file == nil || file.Content == nil {
		return nil, apperrors.ErrFileRequired
	}
	contentType, ext, err := s.validateFile(file)
	if err != nil {
		return nil, err
	}

	key := storageKey(time.Now(), ext)
	if err := s.storage.Save(ctx, key, file.Content, contentType); err != nil {
		return nil, apperrors.StorageError(err)
	}

	photo := &models.Photo{
		ReportID:   report.ID,
		RoomID:     normalizeRoomID(req.RoomID),
		PropertyID: &report.PropertyID,
		FilePath:   key,
		Note:       req.Note,
		Timestamp:  time.Now(),
		Tags:       req.Tags,
	}
	if err := s.photoRepo.Create(db, photo); err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			logger.CtxError(ctx, "failed to remove orphaned upload", "file", key, "error", delErr)
		}
		return nil, apperrors.DatabaseError(err, "photo")
	}

	logger.CtxInfo(ctx, "photo uploaded", "photo_id", photo.ID, "report_id", report.ID, "file", key)
	view := dto.NewPhotoView(*photo, baseURL)
	return &view, nil
}

func (s *PhotoServiceImpl) ListPhotos(db *gorm.DB, userID, reportID uint, baseURL string) ([]dto.PhotoView, error) {
	report, property, err := reportWithProperty(db, s.reportRepo, s.propertyRepo, reportID)
	if err != nil {
		return nil, err
	}
	if !auth.CanAccessReport(report, property, userID) {
		return nil, errReportForbidden
	}

	photos, err := s.photoRepo.FindByReport(db, reportID, repositories.PhotoOrderRoom)
	if err != nil {
		return nil, apperrors.DatabaseError(err, "photo")
	}

	views := make([]dto.PhotoView, 0, len(photos))
	for _, p := range photos {
		views = append(views, dto.NewPhotoView(p, baseURL))
	}
	return views, nil
}

func (s *PhotoServiceImpl) GetPhoto(db *gorm.DB, userID, photoID uint, baseURL string) (*dto.PhotoView, error) {
	photo, err := s.accessiblePhoto(db, userID, photoID)
	if err != nil {
		return nil, err
	}
	view := dto.NewPhotoView(*photo, baseURL)
	return &view, nil
}

func (s *PhotoServiceImpl) UpdateNote(db *gorm.DB, userID, photoID uint, note string, baseURL string) (*dto.PhotoView, error) {
	if _, err := s.accessiblePhoto(db, userID, photoID); err != nil {
		return nil, err
	}
	if err := s.photoRepo.UpdateNote(db, photoID, note); err != nil {
		return nil, notFoundOr(err, repositories.ErrPhotoNotFound, errPhotoNotFound, "photo")
	}
	return s.GetPhoto(db, userID, photoID, baseURL)
}

func (s *PhotoServiceImpl) AddTag(db *gorm.DB, userID, photoID uint, tag string, baseURL string) (*dto.PhotoView, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil, fieldError("tag", "This field is required")
	}
	if _, err := s.accessiblePhoto(db, userID, photoID); err != nil {
		return nil, err
	}
	if err := s.photoRepo.AddTag(db, photoID, tag); err != nil {
		return nil, apperrors.DatabaseError(err, "photo")
	}
	return s.GetPhoto(db, userID, photoID, baseURL)
}

func (s *PhotoServiceImpl) RemoveTag(db *gorm.DB, userID, photoID uint, tag string, baseURL string) (*dto.PhotoView, error) {
	if _, err := s.accessiblePhoto(db, userID, photoID); err != nil {
		return nil, err
	}
	if err := s.photoRepo.RemoveTag(db, photoID, tag); err != nil {
		return nil, apperrors.DatabaseError(err, "photo")
	}
	return s.GetPhoto(db, userID, photoID, baseURL)
}

// DeletePhoto removes the row and tags first; the file goes afterwards.
func (s *PhotoServiceImpl) DeletePhoto(ctx context.Context, db *gorm.DB, userID, photoID uint) error {
	photo, err := s.accessiblePhoto(db, userID, photoID)
	if err != nil {
		return err
	}
	if err := s.photoRepo.Delete(db, photoID); err != nil {
		return notFoundOr(err, repositories.ErrPhotoNotFound, errPhotoNotFound, "photo")
	}
	removeFiles(ctx, s.storage, []string{photo.FilePath})
	return nil
}

func (s *PhotoServiceImpl) accessiblePhoto(db *gorm.DB, userID, photoID uint) (*models.Photo, error) {
	photo, err := s.photoRepo.FindByID(db, photoID)
	if err != nil {
		return nil, notFoundOr(err, repositories.ErrPhotoNotFound, errPhotoNotFound, "photo")
	}
	report, property, err := reportWithProperty(db, s.reportRepo, s.propertyRepo, photo.ReportID)
	if err != nil {
		return nil, err
	}
	if !auth.CanAccessPhoto(photo, report, property, userID) {
		return nil, errPhotoForbidden
	}
	return photo, nil
}

// validateFile checks size, extension and sniffed content. The reader is
// rewound so the caller stores the file from the start.
func (s *PhotoServiceImpl) validateFile(file *dto.UploadedFile) (contentType, ext string, err error) {
	if file.Size > s.config.MaxFileSize {
		return "", "", apperrors.ErrFileTooLarge
	}

	ext = strings.ToLower(strings.TrimPrefix(filepath.Ext(file.Filename), "."))
	expected, ok := extensionTypes[ext]
	if !ok {
		return "", "", apperrors.ErrInvalidFileType
	}

	detected, err := mimetype.DetectReader(file.Content)
	if err != nil {
		return "", "", apperrors.InternalError(err)
	}
	if _, err := file.Content.Seek(0, io.SeekStart); err != nil {
		return "", "", apperrors.InternalError(err)
	}

	if !detected.Is(expected) || !slices.Contains(s.config.AllowedTypes, expected) {
		return "", "", apperrors.ErrInvalidFileType
	}
	return expected, ext, nil
}

func storageKey(now time.Time, ext string) string {
	return fmt.Sprintf("%d-%s.%s", now.UnixMilli(), randomHex(8), ext)
}

func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

func normalizeRoomID(id *string) *string {
	if id == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*id)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
