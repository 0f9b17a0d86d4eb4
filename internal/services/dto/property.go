package dto

import (
	"encoding/json"

	"depositshield_backend/internal/models"
)

// CreatePropertyRequest accepts the role as either "role_at_this_property" or "role".
type CreatePropertyRequest struct {
	Address            string          `json:"address" validate:"required,max=500"`
	Description        string          `json:"description" validate:"max=5000"`
	RoleAtThisProperty string          `json:"role_at_this_property" validate:"is-property-role"`
	Role               string          `json:"role" validate:"is-property-role"`
	DepositAmount      *float64        `json:"deposit_amount" validate:"omitempty,gte=0"`
	ContractStartDate  *string         `json:"contract_start_date" validate:"omitempty,datetime=2006-01-02"`
	ContractEndDate    *string         `json:"contract_end_date" validate:"omitempty,datetime=2006-01-02"`
	MoveOutDate        *string         `json:"move_out_date" validate:"omitempty,datetime=2006-01-02"`
	LeaseDuration      *int            `json:"lease_duration" validate:"omitempty,gte=0"`
	LeaseDurationType  *string         `json:"lease_duration_type" validate:"omitempty,oneof=weeks months years"`
	KitchenCount       *int            `json:"kitchen_count" validate:"omitempty,gte=0"`
	AdditionalSpaces   json.RawMessage `json:"additional_spaces"`
}

// PropertyRole resolves the role field, defaulting to "other".
func (r *CreatePropertyRequest) PropertyRole() models.PropertyRole {
	switch {
	case r.RoleAtThisProperty != "":
		return models.PropertyRole(r.RoleAtThisProperty)
	case r.Role != "":
		return models.PropertyRole(r.Role)
	default:
		return models.PropertyRoleOther
	}
}

// UpdatePropertyRequest applies only the fields that are present.
type UpdatePropertyRequest struct {
	Address            *string         `json:"address" validate:"omitempty,min=1,max=500"`
	Description        *string         `json:"description" validate:"omitempty,max=5000"`
	RoleAtThisProperty *string         `json:"role_at_this_property" validate:"omitempty,is-property-role"`
	Role               *string         `json:"role" validate:"omitempty,is-property-role"`
	DepositAmount      *float64        `json:"deposit_amount" validate:"omitempty,gte=0"`
	ContractStartDate  *string         `json:"contract_start_date" validate:"omitempty,datetime=2006-01-02"`
	ContractEndDate    *string         `json:"contract_end_date" validate:"omitempty,datetime=2006-01-02"`
	MoveOutDate        *string         `json:"move_out_date" validate:"omitempty,datetime=2006-01-02"`
	LeaseDuration      *int            `json:"lease_duration" validate:"omitempty,gte=0"`
	LeaseDurationType  *string         `json:"lease_duration_type" validate:"omitempty,oneof=weeks months years"`
	KitchenCount       *int            `json:"kitchen_count" validate:"omitempty,gte=0"`
	AdditionalSpaces   json.RawMessage `json:"additional_spaces"`
}

type PropertyResponse struct {
	Message  string           `json:"message"`
	Property *models.Property `json:"property"`
}

type PropertyListResponse struct {
	Message    string            `json:"message"`
	Properties []models.Property `json:"properties"`
}
