package models

import "gorm.io/datatypes"

type Property struct {
	BaseModel
	UserID             uint           `gorm:"not null;index" json:"user_id"`
	Address            string         `gorm:"not null" json:"address"`
	Description        string         `json:"description"`
	RoleAtThisProperty PropertyRole   `gorm:"type:varchar(20);not null;default:'other'" json:"role_at_this_property"`
	DepositAmount      *float64       `json:"deposit_amount"`
	ContractStartDate  *string        `gorm:"type:varchar(10)" json:"contract_start_date"`
	ContractEndDate    *string        `gorm:"type:varchar(10)" json:"contract_end_date"`
	MoveOutDate        *string        `gorm:"type:varchar(10)" json:"move_out_date"`
	LeaseDuration      *int           `json:"lease_duration"`
	LeaseDurationType  *string        `gorm:"type:varchar(20)" json:"lease_duration_type"`
	KitchenCount       *int           `json:"kitchen_count"`
	AdditionalSpaces   datatypes.JSON `json:"additional_spaces"`
}
