package dto

import (
	"strings"
	"time"

	"depositshield_backend/internal/models"

	"gorm.io/datatypes"
)

// UploadsPath is the public route prefix photo files are served under.
const UploadsPath = "/uploads/"

type PhotoView struct {
	ID          uint      `json:"id"`
	ReportID    uint      `json:"report_id"`
	RoomID      *string   `json:"room_id"`
	PropertyID  *uint     `json:"property_id"`
	FilePath    string    `json:"file_path"`
	Note        string    `json:"note"`
	Timestamp   time.Time `json:"timestamp"`
	Tags        []string  `json:"tags"`
	URL         string    `json:"url"`
	AbsoluteURL string    `json:"absolute_url"`
}

func NewPhotoView(p models.Photo, baseURL string) PhotoView {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	url := UploadsPath + p.FilePath
	return PhotoView{
		ID:          p.ID,
		ReportID:    p.ReportID,
		RoomID:      p.RoomID,
		PropertyID:  p.PropertyID,
		FilePath:    p.FilePath,
		Note:        p.Note,
		Timestamp:   p.Timestamp,
		Tags:        tags,
		URL:         url,
		AbsoluteURL: strings.TrimRight(baseURL, "/") + url,
	}
}

type RoomView struct {
	ID         models.RoomID `json:"id"`
	Name       string        `json:"name"`
	Notes      string        `json:"notes"`
	PhotoCount int           `json:"photo_count"`
	Photos     []PhotoView   `json:"photos"`
}

// NewRoomView sets PhotoCount from photos; the stored count is ignored.
func NewRoomView(room models.Room, photos []PhotoView) RoomView {
	if photos == nil {
		photos = []PhotoView{}
	}
	return RoomView{
		ID:         room.ID,
		Name:       room.Name,
		Notes:      room.Notes,
		PhotoCount: len(photos),
		Photos:     photos,
	}
}

type PropertySummary struct {
	ID                 uint                `json:"id"`
	Address            string              `json:"address"`
	Description        string              `json:"description"`
	RoleAtThisProperty models.PropertyRole `json:"role_at_this_property"`
	DepositAmount      *float64            `json:"deposit_amount"`
	ContractStartDate  *string             `json:"contract_start_date"`
	ContractEndDate    *string             `json:"contract_end_date"`
	MoveOutDate        *string             `json:"move_out_date"`
	LeaseDuration      *int                `json:"lease_duration"`
	LeaseDurationType  *string             `json:"lease_duration_type"`
	KitchenCount       *int                `json:"kitchen_count"`
	AdditionalSpaces   datatypes.JSON      `json:"additional_spaces"`
}

func NewPropertySummary(p *models.Property) *PropertySummary {
	if p == nil {
		return nil
	}
	return &PropertySummary{
		ID:                 p.ID,
		Address:            p.Address,
		Description:        p.Description,
		RoleAtThisProperty: p.RoleAtThisProperty,
		DepositAmount:      p.DepositAmount,
		ContractStartDate:  p.ContractStartDate,
		ContractEndDate:    p.ContractEndDate,
		MoveOutDate:        p.MoveOutDate,
		LeaseDuration:      p.LeaseDuration,
		LeaseDurationType:  p.LeaseDurationType,
		KitchenCount:       p.KitchenCount,
		AdditionalSpaces:   p.AdditionalSpaces,
	}
}

// ReportDetail is the report row with the property's lease fields overlaid,
// kept alongside the separate property summary for older clients.
type ReportDetail struct {
	models.Report
	Address             *string  `json:"address"`
	PropertyDescription *string  `json:"property_description"`
	DepositAmount       *float64 `json:"deposit_amount"`
	ContractStartDate   *string  `json:"contract_start_date"`
	ContractEndDate     *string  `json:"contract_end_date"`
	MoveOutDate         *string  `json:"move_out_date"`
	LeaseDuration       *int     `json:"lease_duration"`
	LeaseDurationType   *string  `json:"lease_duration_type"`
}

func NewReportDetail(r *models.Report, p *models.Property) ReportDetail {
	d := ReportDetail{Report: *r}
	if p != nil {
		address, description := p.Address, p.Description
		d.Address = &address
		d.PropertyDescription = &description
		d.DepositAmount = p.DepositAmount
		d.ContractStartDate = p.ContractStartDate
		d.ContractEndDate = p.ContractEndDate
		d.MoveOutDate = p.MoveOutDate
		d.LeaseDuration = p.LeaseDuration
		d.LeaseDurationType = p.LeaseDurationType
	}
	return d
}

// SharedReport is the aggregated report payload.
type SharedReport struct {
	Report    ReportDetail     `json:"report"`
	Property  *PropertySummary `json:"property"`
	Rooms     []RoomView       `json:"rooms"`
	Photos    []PhotoView      `json:"photos"`
	ViewCount *int64           `json:"view_count,omitempty"`
}

// SharedReportResponse flattens the view next to the message.
type SharedReportResponse struct {
	Message string `json:"message"`
	*SharedReport
}
