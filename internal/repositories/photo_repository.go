package repositories

import (
	"errors"
	"slices"

	"depositshield_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrPhotoNotFound = errors.New("photo not found")

// PhotoOrder selects the ordering of multi-photo reads.
type PhotoOrder int

const (
	PhotoOrderTimestamp PhotoOrder = iota
	PhotoOrderRoom
)

type PhotoRepository interface {
	// Create inserts the photo and its tags in one transaction.
	Create(db *gorm.DB, photo *models.Photo) error
	FindByID(db *gorm.DB, id uint) (*models.Photo, error)
	FindByReport(db *gorm.DB, reportID uint, order PhotoOrder) ([]models.Photo, error)
	UpdateNote(db *gorm.DB, id uint, note string) error
	AddTag(db *gorm.DB, photoID uint, tag string) error
	RemoveTag(db *gorm.DB, photoID uint, tag string) error
	Delete(db *gorm.DB, id uint) error
}

type PhotoRepositoryImpl struct{}

func NewPhotoRepository() PhotoRepository {
	return &PhotoRepositoryImpl{}
}

func (r *PhotoRepositoryImpl) Create(db *gorm.DB, photo *models.Photo) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(photo).Error; err != nil {
			return err
		}
		tags := DedupTags(photo.Tags)
		for _, tag := range tags {
			if err := insertTag(tx, photo.ID, tag); err != nil {
				return err
			}
		}
		photo.Tags = tags
		return nil
	})
}

func (r *PhotoRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Photo, error) {
	var photo models.Photo
	if err := db.First(&photo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPhotoNotFound
		}
		return nil, err
	}

	photos := []models.Photo{photo}
	if err := attachTags(db, photos); err != nil {
		return nil, err
	}
	return &photos[0], nil
}

func (r *PhotoRepositoryImpl) FindByReport(db *gorm.DB, reportID uint, order PhotoOrder) ([]models.Photo, error) {
	photos := []models.Photo{}

	query := db.Where("report_id = ?", reportID)
	if order == PhotoOrderRoom {
		query = query.Order("room_id ASC")
	}
	query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: "timestamp"}}).Order("id ASC")
	if err := query.Find(&photos).Error; err != nil {
		return nil, err
	}

	if err := attachTags(db, photos); err != nil {
		return nil, err
	}
	return photos, nil
}

func (r *PhotoRepositoryImpl) UpdateNote(db *gorm.DB, id uint, note string) error {
	result := db.Model(&models.Photo{}).Where("id = ?", id).Update("note", note)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPhotoNotFound
	}
	return nil
}

// AddTag is idempotent: adding an existing tag is a no-op.
func (r *PhotoRepositoryImpl) AddTag(db *gorm.DB, photoID uint, tag string) error {
	return insertTag(db, photoID, tag)
}

// RemoveTag is idempotent: removing an absent tag is a no-op.
func (r *PhotoRepositoryImpl) RemoveTag(db *gorm.DB, photoID uint, tag string) error {
	return db.Where("photo_id = ? AND tag = ?", photoID, tag).Delete(&models.PhotoTag{}).Error
}

// Delete removes the photo's tags before the photo row.
func (r *PhotoRepositoryImpl) Delete(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("photo_id = ?", id).Delete(&models.PhotoTag{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Photo{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPhotoNotFound
		}
		return nil
	})
}

func insertTag(db *gorm.DB, photoID uint, tag string) error {
	return db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.PhotoTag{PhotoID: photoID, Tag: tag}).Error
}

// attachTags fills Tags on every photo, sorted by name; photos without tags
// get an empty slice.
func attachTags(db *gorm.DB, photos []models.Photo) error {
	if len(photos) == 0 {
		return nil
	}

	ids := make([]uint, len(photos))
	for i := range photos {
		ids[i] = photos[i].ID
		photos[i].Tags = []string{}
	}

	var rows []models.PhotoTag
	if err := db.Where("photo_id IN ?", ids).Find(&rows).Error; err != nil {
		return err
	}

	byPhoto := make(map[uint][]string, len(photos))
	for _, row := range rows {
		byPhoto[row.PhotoID] = append(byPhoto[row.PhotoID], row.Tag)
	}
	for i := range photos {
		if tags, ok := byPhoto[photos[i].ID]; ok {
			slices.Sort(tags)
			photos[i].Tags = DedupTags(tags)
		}
	}
	return nil
}
