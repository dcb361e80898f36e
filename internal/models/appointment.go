package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint  `gorm:"not null;index;uniqueIndex:idx_user_active_booking,where:status <> 'cancelled' AND status <> 'rejected'" json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"user,omitempty"`

	VehicleID *uint    `json:"vehicle_id"`
	Vehicle   *Vehicle `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"vehicle,omitempty"`

	// Date is YYYY-MM-DD, Time is HH:MM:SS in the shop timezone.
	Date string `gorm:"column:appointment_date;size:10;not null;index:idx_appointment_slot;uniqueIndex:idx_user_active_booking" json:"date"`
	Time string `gorm:"column:appointment_time;size:8;not null;index:idx_appointment_slot;uniqueIndex:idx_user_active_booking" json:"time"`

	Status string `gorm:"size:20;not null;default:'pending';index" json:"status"`

	Description     string              `gorm:"type:text;not null" json:"description"`
	AdminResponse   *string             `gorm:"type:text" json:"admin_response"`
	RejectionReason *string             `gorm:"type:text" json:"rejection_reason"`
	RetryDays       *int                `json:"retry_days"`
	EstimatedPrice  decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"estimated_price"`
	WarrantyInfo    *string             `gorm:"size:255" json:"warranty_info"`

	EstimatedCompletionTime *time.Time `json:"estimated_completion_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
