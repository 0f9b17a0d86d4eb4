package dto

import "depositshield_backend/internal/models"

type RoomInput struct {
	ID         models.RoomID `json:"id" validate:"required"`
	Name       string        `json:"name" validate:"required,max=200"`
	Notes      string        `json:"notes" validate:"max=5000"`
	PhotoCount int           `json:"photo_count"`
}

// ToRooms converts validated input into stored room descriptors.
func ToRooms(in []RoomInput) []models.Room {
	rooms := make([]models.Room, 0, len(in))
	for _, r := range in {
		rooms = append(rooms, models.Room{ID: r.ID, Name: r.Name, Notes: r.Notes, PhotoCount: r.PhotoCount})
	}
	return rooms
}

type CreateReportRequest struct {
	PropertyID  uint        `json:"property_id" validate:"required"`
	Type        string      `json:"type" validate:"required,is-report-type"`
	Title       string      `json:"title" validate:"max=255"`
	Description string      `json:"description" validate:"max=10000"`
	Rooms       []RoomInput `json:"rooms" validate:"omitempty,dive"`
	UUID        string      `json:"uuid" validate:"omitempty,uuid"`
	TenantEmail *string     `json:"tenant_email" validate:"omitempty,email"`
	TenantName  *string     `json:"tenant_name" validate:"omitempty,max=100"`
}

// UpdateReportRequest: nil fields are left unchanged. Rooms is replaced when present.
type UpdateReportRequest struct {
	Title           *string     `json:"title" validate:"omitempty,max=255"`
	Description     *string     `json:"description" validate:"omitempty,max=10000"`
	Type            *string     `json:"type" validate:"omitempty,is-report-type"`
	Rooms           []RoomInput `json:"rooms" validate:"omitempty,dive"`
	TenantEmail     *string     `json:"tenant_email" validate:"omitempty,email"`
	TenantName      *string     `json:"tenant_name" validate:"omitempty,max=100"`
	GenerateNewUUID bool        `json:"generate_new_uuid"`
}

type ListReportsQuery struct {
	IncludeArchived bool `form:"include_archived"`
}

type ApproveReportRequest struct {
	Message string `json:"message" validate:"max=2000"`
	UUID    string `json:"uuid"`
	Email   string `json:"email" validate:"omitempty,email"`
	Name    string `json:"name" validate:"max=100"`
}

// RejectReportRequest requires Reason unless Quick is set.
type RejectReportRequest struct {
	Reason string `json:"reason" validate:"max=2000"`
	UUID   string `json:"uuid"`
	Email  string `json:"email" validate:"omitempty,email"`
	Name   string `json:"name" validate:"max=100"`
	Quick  bool   `json:"quick"`
}

type NotifyReportRequest struct {
	Subject string `json:"subject" validate:"max=200"`
	Message string `json:"message" validate:"required,max=5000"`
	Email   string `json:"email" validate:"omitempty,email"`
	Name    string `json:"name" validate:"max=100"`
}

type ReportResponse struct {
	Message string         `json:"message"`
	Report  *models.Report `json:"report"`
}

type ReportListResponse struct {
	Message string          `json:"message"`
	Reports []models.Report `json:"reports"`
}

// DecisionResponse is returned by approve and reject. EmailStatus is advisory.
type DecisionResponse struct {
	Message     string              `json:"message"`
	Report      *models.Report      `json:"report"`
	EmailStatus string              `json:"emailStatus"`
	EmailResult *NotificationResult `json:"emailResult,omitempty"`
}

type NotifyResponse struct {
	Message     string              `json:"message"`
	EmailStatus string              `json:"emailStatus"`
	EmailResult *NotificationResult `json:"emailResult"`
}
