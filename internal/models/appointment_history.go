package models

import "time"

// AppointmentHistory rows are append-only.
type AppointmentHistory struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint `gorm:"not null;index" json:"appointment_id"`
	UserID        uint `gorm:"not null" json:"user_id"`

	Action    string  `gorm:"size:20;not null" json:"action"`
	OldStatus *string `gorm:"size:20" json:"old_status"`
	NewStatus string  `gorm:"size:20;not null" json:"new_status"`
	Comment   string  `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
}

func (AppointmentHistory) TableName() string {
	return "appointment_history"
}
