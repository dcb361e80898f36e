package models

import "time"

// CalendarSlot is one bookable hour block of a working day.
type CalendarSlot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Date      string `gorm:"column:slot_date;size:10;not null;uniqueIndex:idx_slot_day_start" json:"date"`
	StartTime string `gorm:"size:8;not null;uniqueIndex:idx_slot_day_start" json:"start_time"`
	EndTime   string `gorm:"size:8;not null" json:"end_time"`

	MaxAppointments     int  `gorm:"not null;default:2" json:"max_appointments"`
	CurrentAppointments int  `gorm:"not null;default:0;check:current_appointments >= 0" json:"current_appointments"`
	IsAvailable         bool `gorm:"not null;default:true" json:"is_available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *CalendarSlot) AvailableSpots() int {
	if n := s.MaxAppointments - s.CurrentAppointments; n > 0 {
		return n
	}
	return 0
}
