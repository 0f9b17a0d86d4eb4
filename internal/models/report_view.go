package models

import "time"

// ReportView is an append-only audit row written whenever a shared report is opened.
type ReportView struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	ReportID uint      `gorm:"not null;index" json:"report_id"`
	ViewerID *uint     `json:"viewer_id"`
	ViewedAt time.Time `gorm:"not null" json:"viewed_at"`
}
