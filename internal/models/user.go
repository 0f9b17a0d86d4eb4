package models

import "time"

type User struct {
	BaseModel
	Name                string     `gorm:"not null" json:"name"`
	Email               string     `gorm:"uniqueIndex;not null" json:"email"`
	Password            string     `gorm:"not null" json:"-"`
	IsVerified          bool       `gorm:"default:false" json:"is_verified"`
	VerificationCode    *string    `json:"-"`
	VerificationExpires *time.Time `json:"-"`
}
