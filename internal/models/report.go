package models

import (
	"time"

	"gorm.io/datatypes"
)

type Report struct {
	BaseModel
	PropertyID       uint            `gorm:"not null;index" json:"property_id"`
	CreatedBy        uint            `gorm:"not null;index" json:"created_by"`
	Type             ReportType      `gorm:"type:varchar(20);not null" json:"type"`
	UUID             string          `gorm:"column:uuid;type:varchar(36);uniqueIndex;not null" json:"uuid"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	RoomsJSON        datatypes.JSON  `gorm:"column:rooms_json" json:"rooms_json"`
	ApprovalStatus   *ApprovalStatus `gorm:"type:varchar(20)" json:"approval_status"`
	ApprovedAt       *time.Time      `json:"approved_at"`
	ApprovedMessage  *string         `json:"approved_message"`
	RejectedAt       *time.Time      `json:"rejected_at"`
	RejectionMessage *string         `json:"rejection_message"`
	IsArchived       bool            `gorm:"default:false" json:"is_archived"`
	ArchivedAt       *time.Time      `json:"archived_at"`
	ArchivedBy       *uint           `json:"archived_by"`
	TenantEmail      *string         `json:"tenant_email"`
	TenantName       *string         `json:"tenant_name"`
}

func (r *Report) IsApproved() bool {
	return r.ApprovalStatus != nil && *r.ApprovalStatus == ApprovalStatusApproved
}

func (r *Report) IsRejected() bool {
	return r.ApprovalStatus != nil && *r.ApprovalStatus == ApprovalStatusRejected
}

// IsDecided reports whether the approval workflow has reached a terminal state.
func (r *Report) IsDecided() bool {
	return r.ApprovalStatus != nil
}
