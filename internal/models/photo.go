package models

import "time"

type Photo struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ReportID   uint      `gorm:"not null;index" json:"report_id"`
	RoomID     *string   `gorm:"index" json:"room_id"`
	PropertyID *uint     `json:"property_id"`
	FilePath   string    `gorm:"not null" json:"file_path"`
	Note       string    `json:"note"`
	Timestamp  time.Time `gorm:"not null;index" json:"timestamp"`

	// Tags is filled by the repository from photo_tags.
	Tags []string `gorm:"-" json:"tags"`
}

// PhotoTag is unique per (photo_id, tag).
type PhotoTag struct {
	PhotoID uint   `gorm:"primaryKey;autoIncrement:false"`
	Tag     string `gorm:"primaryKey;type:varchar(100)"`
}
