package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AppointmentPart is the stock reserved for an approved appointment.
// UnitPrice is a snapshot taken at allocation time.
type AppointmentPart struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint `gorm:"not null;index" json:"appointment_id"`
	PartID        uint `gorm:"not null;index" json:"part_id"`
	Part          *Part `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"part,omitempty"`

	Quantity  int             `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`

	CreatedAt time.Time `json:"created_at"`
}

func (AppointmentPart) TableName() string {
	return "appointment_parts"
}
