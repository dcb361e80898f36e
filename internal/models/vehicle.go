package models

import "time"

type Vehicle struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index;not null" json:"user_id"`

	Make         string `gorm:"size:50" json:"make"`
	Model        string `gorm:"size:50" json:"model"`
	Year         int    `json:"year"`
	LicensePlate string `gorm:"size:20" json:"license_plate"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
